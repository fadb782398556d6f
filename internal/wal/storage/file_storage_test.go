package storage_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenforge/image-pool-go/internal/types"
	"github.com/tokenforge/image-pool-go/internal/wal/storage"
)

func TestFileStorage(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.log")

	fs, err := storage.NewFileStorage(path, 0)
	require.NoError(t, err)
	require.NotNil(t, fs)

	data := []byte("hello world")
	err = fs.Write(data)
	require.NoError(t, err)

	size, err := fs.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)

	err = fs.Flush()
	require.NoError(t, err)

	err = fs.Close()
	require.NoError(t, err)

	// Payload starts right after the header
	file, err := os.Open(path)
	require.NoError(t, err)
	_, err = file.Seek(types.WALHeaderSize, io.SeekStart)
	require.NoError(t, err)
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	file.Close()
	assert.Equal(t, data, content)
}

func TestFileStorage_SizeLimit(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.log")

	fs, err := storage.NewFileStorage(path, 0, storage.FileStorageOpt{SizeFileInBytes: 10})
	require.NoError(t, err)
	defer fs.Close()

	assert.True(t, fs.CanWrite(10))
	assert.False(t, fs.CanWrite(11))

	require.NoError(t, fs.Write([]byte("12345")))
	assert.True(t, fs.CanWrite(5))
	assert.False(t, fs.CanWrite(6))
}

func TestFileStorage_ReopenExisting(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.log")

	fs, err := storage.NewFileStorage(path, 3)
	require.NoError(t, err)
	require.NoError(t, fs.Write([]byte("abc")))
	require.NoError(t, fs.Flush())
	// Leave the file open-status, simulating a crash
	require.NoError(t, fs.Flush())

	fs2, err := storage.NewFileStorage(path, 0)
	require.NoError(t, err)
	size, err := fs2.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)

	// Appends continue after the existing payload
	require.NoError(t, fs2.Write([]byte("def")))
	require.NoError(t, fs2.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	_, err = file.Seek(types.WALHeaderSize, io.SeekStart)
	require.NoError(t, err)
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	file.Close()
	assert.Equal(t, []byte("abcdef"), content)
}

func TestFileStorage_ReopenFinalized(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.log")

	fs, err := storage.NewFileStorage(path, 3)
	require.NoError(t, err)
	require.NoError(t, fs.Write([]byte("abc")))
	require.NoError(t, fs.Close())

	// Reopen after a clean shutdown: the header's seqNo wins over the
	// argument, the offset continues from the recorded payload length, and
	// the status flips back to open.
	fs2, err := storage.NewFileStorage(path, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), fs2.SeqNo())
	size, err := fs2.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)

	require.NoError(t, fs2.Write([]byte("def")))
	require.NoError(t, fs2.Flush())
	// No Close: simulate a crash before the second session finalizes.

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var hdr types.WALHeader
	require.NoError(t, binary.Read(bytes.NewReader(raw[:types.WALHeaderSize]), binary.LittleEndian, &hdr))
	assert.Equal(t, types.WALStatusOpen, hdr.Status)
	assert.Equal(t, uint64(3), hdr.SeqNo)
	assert.Equal(t, []byte("abcdef"), raw[types.WALHeaderSize:])
}

func TestFileStorage_Rotate(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.log")
	nextPath := filepath.Join(tempDir, "test.log.1")

	fs, err := storage.NewFileStorage(path, 0)
	require.NoError(t, err)
	require.NoError(t, fs.Write([]byte("old")))

	err = fs.Rotate(nextPath)
	require.NoError(t, err)

	require.NoError(t, fs.Write([]byte("new")))
	require.NoError(t, fs.Close())

	for _, tc := range []struct {
		path    string
		payload string
	}{
		{path, "old"},
		{nextPath, "new"},
	} {
		file, err := os.Open(tc.path)
		require.NoError(t, err)
		_, err = file.Seek(types.WALHeaderSize, io.SeekStart)
		require.NoError(t, err)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		file.Close()
		assert.Equal(t, tc.payload, string(content))
	}
}
