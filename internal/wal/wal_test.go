package wal_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenforge/image-pool-go/internal/types"
	"github.com/tokenforge/image-pool-go/internal/wal"
	"github.com/tokenforge/image-pool-go/internal/wal/formatter"
	"github.com/tokenforge/image-pool-go/internal/wal/storage"
)

func TestWAL_JSON(t *testing.T) {
	tempDir := t.TempDir()
	walPath := filepath.Join(tempDir, "test.wal")

	w, err := wal.NewWAL(walPath, 0, formatter.NewJSONFormatter(), nil)
	require.NoError(t, err)

	pickItem := types.WalLogPickItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypePick},
		RequestID:       1,
		FileID:          "cats/cat1.png",
		Success:         true,
	}
	rescanItem := types.WalLogRescanItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypeRescan},
		Added:           []string{"cats/cat2.png"},
		Removed:         []string{"cats/old.gif"},
	}
	w.LogPick(pickItem)
	w.LogRescan(rescanItem)

	err = w.Flush()
	require.NoError(t, err)
	err = w.Close()
	require.NoError(t, err)

	entries, hdr, err := wal.ParseWAL(walPath, formatter.NewJSONFormatter())
	require.NoError(t, err)
	require.NotNil(t, hdr)
	assert.Len(t, entries, 2)
	assert.Equal(t, types.WALStatusClosed, hdr.Status)

	parsedPick, ok := entries[0].(*types.WalLogPickItem)
	require.True(t, ok)
	assert.Equal(t, pickItem.RequestID, parsedPick.RequestID)
	assert.Equal(t, pickItem.FileID, parsedPick.FileID)
	assert.Equal(t, pickItem.Success, parsedPick.Success)

	parsedRescan, ok := entries[1].(*types.WalLogRescanItem)
	require.True(t, ok)
	assert.Equal(t, rescanItem.Added, parsedRescan.Added)
	assert.Equal(t, rescanItem.Removed, parsedRescan.Removed)
}

func TestWAL_StringLine(t *testing.T) {
	tempDir := t.TempDir()
	walPath := filepath.Join(tempDir, "test.wal")

	w, err := wal.NewWAL(walPath, 0, formatter.NewStringLineFormatter(), nil)
	require.NoError(t, err)

	pickItem := types.WalLogPickItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypePick},
		RequestID:       1,
		FileID:          "cats/cat1.png",
		Success:         true,
	}
	w.LogPick(pickItem)

	err = w.Flush()
	require.NoError(t, err)
	err = w.Close()
	require.NoError(t, err)

	entries, _, err := wal.ParseWAL(walPath, formatter.NewStringLineFormatter())
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	parsedPick, ok := entries[0].(*types.WalLogPickItem)
	require.True(t, ok)
	assert.Equal(t, pickItem.RequestID, parsedPick.RequestID)
	assert.Equal(t, pickItem.FileID, parsedPick.FileID)
}

func TestWAL_Rotate(t *testing.T) {
	tempDir := t.TempDir()
	walPath := filepath.Join(tempDir, "test.wal")
	nextPath := filepath.Join(tempDir, "test.wal.1")

	w, err := wal.NewWAL(walPath, 0, formatter.NewJSONFormatter(), nil)
	require.NoError(t, err)

	pickItem := types.WalLogPickItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypePick},
		RequestID:       1,
		FileID:          "cats/cat1.png",
		Success:         true,
	}
	w.LogPick(pickItem)
	err = w.Flush()
	require.NoError(t, err)

	err = w.Rotate(nextPath)
	require.NoError(t, err)

	// Old file is finalized
	_, hdr, err := wal.ParseWAL(walPath, formatter.NewJSONFormatter())
	require.NoError(t, err)
	require.NotNil(t, hdr)
	assert.Equal(t, types.WALStatusClosed, hdr.Status)

	// New file carries the next sequence number
	w.LogPick(types.WalLogPickItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypePick},
		RequestID:       2,
		FileID:          "cats/cat2.png",
		Success:         true,
	})
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	entries, hdr, err := wal.ParseWAL(nextPath, formatter.NewJSONFormatter())
	require.NoError(t, err)
	require.NotNil(t, hdr)
	assert.Len(t, entries, 1)
	assert.Equal(t, uint64(1), hdr.SeqNo)
	assert.Equal(t, types.WALStatusClosed, hdr.Status)
}

func TestWAL_RotateWithPendingBuffer(t *testing.T) {
	tempDir := t.TempDir()
	walPath := filepath.Join(tempDir, "test.wal")

	w, err := wal.NewWAL(walPath, 0, formatter.NewJSONFormatter(), nil)
	require.NoError(t, err)
	defer w.Close()

	w.LogPick(types.WalLogPickItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypePick},
		RequestID:       1,
		FileID:          "cats/cat1.png",
		Success:         true,
	})

	err = w.Rotate(filepath.Join(tempDir, "test.wal.1"))
	assert.Equal(t, types.ErrWalBufferNotEmpty, err)
}

func TestWAL_Full(t *testing.T) {
	tempDir := t.TempDir()
	walPath := filepath.Join(tempDir, "test.wal")

	store, err := storage.NewFileStorage(walPath, 0, storage.FileStorageOpt{SizeFileInBytes: 10})
	require.NoError(t, err)

	w, err := wal.NewWAL(walPath, 0, formatter.NewJSONFormatter(), store)
	require.NoError(t, err)

	w.LogPick(types.WalLogPickItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypePick},
		RequestID:       1,
		FileID:          "a-very-long-file-id-to-exceed-capacity.png",
		Success:         true,
	})

	err = w.Flush()
	assert.Equal(t, types.ErrWALFull, err)

	// Flush keeps the buffer on failure; Reset discards it
	w.Reset()
	assert.NoError(t, w.Flush())
}

func TestWAL_ReopenAfterClose(t *testing.T) {
	tempDir := t.TempDir()
	walPath := filepath.Join(tempDir, "test.wal")

	// Session 1: one pick, clean shutdown finalizes the header.
	w, err := wal.NewWAL(walPath, 0, formatter.NewJSONFormatter(), nil)
	require.NoError(t, err)
	w.LogPick(types.WalLogPickItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypePick},
		RequestID:       1,
		FileID:          "cats/cat1.png",
		Success:         true,
	})
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	// Session 2: reopen the same file and append, then crash before Close.
	store, err := storage.NewFileStorage(walPath, 0)
	require.NoError(t, err)
	w2, err := wal.NewWAL(walPath, store.SeqNo(), formatter.NewJSONFormatter(), store)
	require.NoError(t, err)
	w2.LogPick(types.WalLogPickItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypePick},
		RequestID:       2,
		FileID:          "cats/cat2.png",
		Success:         true,
	})
	require.NoError(t, w2.Flush())
	// No Close: the file must still yield both sessions' entries.

	entries, hdr, err := wal.ParseWAL(walPath, formatter.NewJSONFormatter())
	require.NoError(t, err)
	require.NotNil(t, hdr)
	assert.Equal(t, types.WALStatusOpen, hdr.Status)
	require.Len(t, entries, 2)

	first, ok := entries[0].(*types.WalLogPickItem)
	require.True(t, ok)
	assert.Equal(t, uint64(1), first.RequestID)
	second, ok := entries[1].(*types.WalLogPickItem)
	require.True(t, ok)
	assert.Equal(t, uint64(2), second.RequestID)
	assert.Equal(t, "cats/cat2.png", second.FileID)
}
