package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenforge/image-pool-go/internal/scanner"
	"github.com/tokenforge/image-pool-go/internal/types"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func fileIDs(images []types.PoolImage) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, filepath.Base(img.FileID))
	}
	return ids
}

func TestScanDir_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "b.png", "c.webp", "notes.txt", "README.md", "d.gif", "e.bmp", "f.jpeg")

	images, err := scanner.ScanDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.png", "c.webp", "d.gif", "e.bmp", "f.jpeg"}, fileIDs(images))
}

func TestScanDir_CaseInsensitiveExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "IMAGE.PNG", "photo.Jpg")

	images, err := scanner.ScanDir(dir)
	require.NoError(t, err)
	assert.Len(t, images, 2)
}

func TestScanDir_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := scanner.ScanDir(dir)
	assert.ErrorIs(t, err, types.ErrEmptyImagePool)
}

func TestScanDir_OnlyNonQualifyingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "b.md", "c.json")

	_, err := scanner.ScanDir(dir)
	assert.ErrorIs(t, err, types.ErrEmptyImagePool)
}

func TestScanDir_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFiles(t, sub, "inner.png")
	writeFiles(t, dir, "outer.png")

	images, err := scanner.ScanDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer.png"}, fileIDs(images))
}

func TestScanDir_MissingDirectory(t *testing.T) {
	_, err := scanner.ScanDir(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrEmptyImagePool)
}

func TestDiff(t *testing.T) {
	old := []types.PoolImage{{FileID: "a.png"}, {FileID: "b.png"}}
	current := []types.PoolImage{{FileID: "b.png"}, {FileID: "c.png"}}

	added, removed := scanner.Diff(old, current)
	assert.Equal(t, []string{"c.png"}, added)
	assert.Equal(t, []string{"a.png"}, removed)

	added, removed = scanner.Diff(current, current)
	assert.Empty(t, added)
	assert.Empty(t, removed)
}
