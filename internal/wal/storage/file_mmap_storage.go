package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/tokenforge/image-pool-go/internal/types"
)

const ( // Constants for mmap file operations
	defaultMmapFileSize int64 = 1024 * 1024 * 10 // 10 MB
)

// FileMMapStorage is a memory-mapped WAL backend with a fixed preallocated
// file size. Writes are copies into the map; Flush syncs the map.
type FileMMapStorage struct {
	file   *os.File
	mmap   mmap.MMap
	path   string
	seqNo  uint64
	offset int64

	sizeMapInBytes int64
}

var _ types.Storage = (*FileMMapStorage)(nil)

type FileMMapStorageOps struct {
	MMapFileSizeInBytes int64
}

func NewFileMMapStorage(path string, seqNo uint64, opts ...FileMMapStorageOps) (*FileMMapStorage, error) {
	sizeMapInBytes := defaultMmapFileSize
	for _, val := range opts {
		if val.MMapFileSizeInBytes > 0 {
			sizeMapInBytes = val.MMapFileSizeInBytes
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

	currentSize := info.Size()
	isNewFile := currentSize == 0

	if isNewFile {
		if err := f.Truncate(sizeMapInBytes); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to truncate file: %w", err)
		}
	} else {
		// If the file exists, use its size for the mapping
		sizeMapInBytes = currentSize
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file: %w", err)
	}

	s := &FileMMapStorage{
		file:           f,
		mmap:           m,
		path:           path,
		seqNo:          seqNo,
		sizeMapInBytes: sizeMapInBytes,
	}

	if isNewFile {
		if err := s.writeHeader(types.WALStatusOpen, 0); err != nil {
			s.Close()
			return nil, err
		}
		s.offset = types.WALHeaderSize
	} else {
		// Existing file, read header to restore offset
		var hdr types.WALHeader
		if err := binary.Read(bytes.NewReader(m[:types.WALHeaderSize]), binary.LittleEndian, &hdr); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to read WAL header from existing file: %w", err)
		}
		s.seqNo = hdr.SeqNo
		if hdr.Status == types.WALStatusClosed {
			// Finalized file reopened for appending: trust the recorded
			// length and flip the header back to open so readers stop
			// truncating at it.
			s.offset = int64(types.WALHeaderSize + hdr.DataLength)
			if err := s.writeHeader(types.WALStatusOpen, 0); err != nil {
				s.Close()
				return nil, err
			}
		} else {
			// The last writer never finalized, so DataLength is zero. The
			// map is zero-filled past the payload; the trimmed length is
			// the true payload end.
			end := int64(len(bytes.TrimRight(m, "\x00")))
			if end < types.WALHeaderSize {
				end = types.WALHeaderSize
			}
			s.offset = end
		}
	}

	return s, nil
}

func (s *FileMMapStorage) Write(data []byte) error {
	copy(s.mmap[s.offset:], data)
	s.offset += int64(len(data))
	return nil
}

func (s *FileMMapStorage) CanWrite(size int) bool {
	// For mmap, the capacity is the total length of the map.
	return s.offset+int64(size) <= int64(len(s.mmap))
}

// Size returns the payload size, excluding the header.
func (s *FileMMapStorage) Size() (int64, error) {
	return s.offset - types.WALHeaderSize, nil
}

// SeqNo returns the sequence number of the active file. For a reopened file
// it is the value recovered from the header, not the one passed in.
func (s *FileMMapStorage) SeqNo() uint64 {
	return s.seqNo
}

func (s *FileMMapStorage) Flush() error {
	return s.mmap.Flush()
}

func (s *FileMMapStorage) FinalizeAndClose() error {
	if s.mmap == nil {
		return nil
	}

	if err := s.mmap.Flush(); err != nil {
		return err
	}

	if err := s.writeHeader(types.WALStatusClosed, uint64(s.offset-types.WALHeaderSize)); err != nil {
		return err
	}

	if err := s.mmap.Flush(); err != nil {
		return err
	}

	if err := s.mmap.Unmap(); err != nil {
		s.file.Close()
		return err
	}
	s.mmap = nil

	return s.file.Close()
}

func (s *FileMMapStorage) Close() error {
	return s.FinalizeAndClose()
}

// Rotate finalizes the current map and continues in a fresh file at newPath
// with the next sequence number.
func (s *FileMMapStorage) Rotate(newPath string) error {
	if err := s.FinalizeAndClose(); err != nil {
		return err
	}

	next, err := NewFileMMapStorage(newPath, s.seqNo+1, FileMMapStorageOps{MMapFileSizeInBytes: s.sizeMapInBytes})
	if err != nil {
		return err
	}
	*s = *next
	return nil
}

func (s *FileMMapStorage) writeHeader(status uint16, dataLength uint64) error {
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
	copy(s.mmap, buf.Bytes())
	return nil
}
