package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/tokenforge/image-pool-go/internal/types"
)

// FileStorage is a plain-file WAL backend. Every file starts with the
// binary WALHeader; the header is finalized (status closed, payload length
// recorded) on Close and Rotate.
type FileStorage struct {
	file      *os.File
	path      string
	seqNo     uint64
	offset    int64
	sizeLimit int64
}

var _ types.Storage = (*FileStorage)(nil)

type FileStorageOpt struct {
	// SizeFileInBytes caps the payload size; 0 means unlimited.
	SizeFileInBytes int
}

func NewFileStorage(path string, seqNo uint64, opts ...FileStorageOpt) (*FileStorage, error) {
	var sizeLimit int64
	for _, opt := range opts {
		if opt.SizeFileInBytes > 0 {
			sizeLimit = int64(opt.SizeFileInBytes)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	s := &FileStorage{
		file:      f,
		path:      path,
		seqNo:     seqNo,
		sizeLimit: sizeLimit,
	}

	if info.Size() == 0 {
		if err := s.writeHeader(types.WALStatusOpen, 0); err != nil {
			f.Close()
			return nil, err
		}
		s.offset = types.WALHeaderSize
	} else {
		hdr, err := readHeader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		s.seqNo = hdr.SeqNo
		if hdr.Status == types.WALStatusClosed {
			// Reopening a finalized file for appending. The recorded
			// payload length is authoritative, and the header must go back
			// to open: a closed header with a stale DataLength would make
			// readers drop everything appended after this point.
			s.offset = types.WALHeaderSize + int64(hdr.DataLength)
			if err := s.writeHeader(types.WALStatusOpen, 0); err != nil {
				f.Close()
				return nil, err
			}
		} else {
			// Open status means the last writer never finalized; the file
			// size is the true payload end.
			s.offset = info.Size()
		}
	}

	return s, nil
}

func (s *FileStorage) Write(data []byte) error {
	if _, err := s.file.WriteAt(data, s.offset); err != nil {
		return err
	}
	s.offset += int64(len(data))
	return nil
}

func (s *FileStorage) CanWrite(size int) bool {
	if s.sizeLimit <= 0 {
		return true
	}
	return s.offset-types.WALHeaderSize+int64(size) <= s.sizeLimit
}

// Size returns the payload size, excluding the header.
func (s *FileStorage) Size() (int64, error) {
	return s.offset - types.WALHeaderSize, nil
}

// SeqNo returns the sequence number of the active file. For a reopened file
// it is the value recovered from the header, not the one passed in.
func (s *FileStorage) SeqNo() uint64 {
	return s.seqNo
}

func (s *FileStorage) Flush() error {
	return s.file.Sync()
}

func (s *FileStorage) Close() error {
	if err := s.finalize(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// Rotate finalizes the current file and continues in a fresh one at newPath
// with the next sequence number.
func (s *FileStorage) Rotate(newPath string) error {
	if err := s.Close(); err != nil {
		return err
	}

	f, err := os.OpenFile(newPath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	s.file = f
	s.path = newPath
	s.seqNo++
	if err := s.writeHeader(types.WALStatusOpen, 0); err != nil {
		f.Close()
		return err
	}
	s.offset = types.WALHeaderSize
	return nil
}

func (s *FileStorage) finalize() error {
	if err := s.writeHeader(types.WALStatusClosed, uint64(s.offset-types.WALHeaderSize)); err != nil {
		return err
	}
	return s.file.Sync()
}

func (s *FileStorage) writeHeader(status uint16, dataLength uint64) error {
	hdr := types.WALHeader{
		Magic:      types.WALMagic,
		Version:    types.WALVersion1,
		Status:     status,
		SeqNo:      s.seqNo,
		DataLength: dataLength,
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &hdr); err != nil {
		return err
	}
	_, err := s.file.WriteAt(buf.Bytes(), 0)
	return err
}

func readHeader(f *os.File) (*types.WALHeader, error) {
	raw := make([]byte, types.WALHeaderSize)
	if _, err := f.ReadAt(raw, 0); err != nil {
		return nil, fmt.Errorf("failed to read WAL header: %w", err)
	}
	var hdr types.WALHeader
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Magic != types.WALMagic {
		return nil, fmt.Errorf("bad WAL magic: %x", hdr.Magic)
	}
	return &hdr, nil
}
