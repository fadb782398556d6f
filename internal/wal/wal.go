package wal

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tokenforge/image-pool-go/internal/types"
	"github.com/tokenforge/image-pool-go/internal/utils"
	"github.com/tokenforge/image-pool-go/internal/wal/formatter"
	"github.com/tokenforge/image-pool-go/internal/wal/storage"
)

type WAL struct {
	path      string
	seqNo     uint64
	formatter types.LogFormatter
	storage   types.Storage
	buffer    []types.WalLogEntry
}

var _ types.WAL = (*WAL)(nil)

func NewWAL(path string, seqNo uint64, format types.LogFormatter, store types.Storage) (*WAL, error) {
	if format == nil {
		format = formatter.NewJSONFormatter()
	}
	if store == nil {
		var err error
		store, err = storage.NewFileStorage(path, seqNo)
		if err != nil {
			return nil, err
		}
	}

	// Preallocate buffer for performance (e.g., 4096 entries)
	return &WAL{
		path:      path,
		seqNo:     seqNo,
		formatter: format,
		storage:   store,
		buffer:    make([]types.WalLogEntry, 0, 4096),
	}, nil
}

// LogPick appends a pick entry to the buffer. Nothing hits disk until Flush.
func (w *WAL) LogPick(item types.WalLogPickItem) error {
	w.buffer = append(w.buffer, &item)
	return nil
}

func (w *WAL) LogRescan(item types.WalLogRescanItem) error {
	w.buffer = append(w.buffer, &item)
	return nil
}

func (w *WAL) LogSnapshot(item types.WalLogSnapshotItem) error {
	w.buffer = append(w.buffer, &item)
	return nil
}

func (w *WAL) Flush() error {
	if len(w.buffer) == 0 {
		return nil
	}

	data, err := w.formatter.Encode(w.buffer)
	if err != nil {
		return err
	}

	if !w.storage.CanWrite(len(data)) {
		return types.ErrWALFull
	}

	if err := w.storage.Write(data); err != nil {
		return err
	}

	w.buffer = w.buffer[:0]
	return w.storage.Flush()
}

// Reset discards any buffered, unflushed entries.
func (w *WAL) Reset() {
	w.buffer = w.buffer[:0]
}

func (w *WAL) Size() (int64, error) {
	return w.storage.Size()
}

func (w *WAL) Close() error {
	return w.storage.Close()
}

func (w *WAL) Rotate(path string) error {
	if len(w.buffer) != 0 {
		return types.ErrWalBufferNotEmpty
	}
	if err := w.storage.Rotate(path); err != nil {
		return err
	}
	w.path = path
	w.seqNo++
	return nil
}

// ParseWAL reads a WAL file and returns its log entries and header.
func ParseWAL(path string, format types.LogFormatter) ([]types.WalLogEntry, *types.WALHeader, error) {
	data, err := utils.ReadFileContent(path)
	if err != nil {
		return nil, nil, err
	}
	if len(data) < types.WALHeaderSize {
		return nil, nil, fmt.Errorf("wal file %s too short for header", path)
	}

	var hdr types.WALHeader
	if err := binary.Read(bytes.NewReader(data[:types.WALHeaderSize]), binary.LittleEndian, &hdr); err != nil {
		return nil, nil, err
	}
	if hdr.Magic != types.WALMagic {
		return nil, nil, fmt.Errorf("bad WAL magic in %s: %x", path, hdr.Magic)
	}

	payload := data[types.WALHeaderSize:]
	if hdr.Status == types.WALStatusClosed && int64(hdr.DataLength) <= int64(len(payload)) {
		payload = payload[:hdr.DataLength]
	}

	entries, err := format.Decode(payload)
	if err != nil {
		return nil, nil, err
	}
	return entries, &hdr, nil
}
