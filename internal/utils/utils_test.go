package utils_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenforge/image-pool-go/internal/types"
	"github.com/tokenforge/image-pool-go/internal/utils"
)

func TestGetWALFiles_SortedBySequence(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		types.WALBaseName + ".002",
		types.WALBaseName + ".000",
		types.WALBaseName + ".001",
		"unrelated.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	u := utils.NewDefaultUtils(dir, dir, slog.LevelInfo, nil)
	files, err := u.GetWALFiles()
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(dir, types.WALBaseName+".000"), files[0])
	assert.Equal(t, filepath.Join(dir, types.WALBaseName+".002"), files[2])
}

func TestGenNextWALPath(t *testing.T) {
	dir := t.TempDir()
	u := utils.NewDefaultUtils(dir, dir, slog.LevelInfo, nil)

	path, seq, err := u.GenNextWALPath()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), seq)
	assert.Equal(t, filepath.Join(dir, types.WALBaseName+".000"), path)

	require.NoError(t, os.WriteFile(path, nil, 0644))
	path, seq, err = u.GenNextWALPath()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
	assert.Equal(t, filepath.Join(dir, types.WALBaseName+".001"), path)
}

func TestGenSnapshotPath_DisabledWhenNoDir(t *testing.T) {
	u := utils.NewDefaultUtils("", "", slog.LevelInfo, nil)
	assert.Nil(t, u.GenSnapshotPath())
}
