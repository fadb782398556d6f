package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tokenforge/image-pool-go/internal/types"
)

// DefaultExtensions is the set of recognized image file extensions.
// Matching is case-insensitive.
var DefaultExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".webp": {},
}

// ScanDir lists the qualifying image files directly inside dir.
// The scan is non-recursive and the resulting catalog is name-sorted so that
// repeated scans of an unchanged directory produce the same order.
// Returns types.ErrEmptyImagePool when no file qualifies.
func ScanDir(dir string) ([]types.PoolImage, error) {
	return ScanDirWithExtensions(dir, DefaultExtensions)
}

// ScanDirWithExtensions is ScanDir with a caller-supplied extension set.
func ScanDirWithExtensions(dir string, extensions map[string]struct{}) ([]types.PoolImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read images directory %s: %w", dir, err)
	}

	var images []types.PoolImage
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := extensions[ext]; !ok {
			continue
		}
		images = append(images, types.PoolImage{FileID: filepath.Join(dir, entry.Name())})
	}

	if len(images) == 0 {
		return nil, types.ErrEmptyImagePool
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].FileID < images[j].FileID
	})
	return images, nil
}

// Diff compares two catalogs and returns the file IDs present only in
// current (added) and only in old (removed).
func Diff(old, current []types.PoolImage) (added, removed []string) {
	oldSet := make(map[string]struct{}, len(old))
	for _, img := range old {
		oldSet[img.FileID] = struct{}{}
	}
	currentSet := make(map[string]struct{}, len(current))
	for _, img := range current {
		currentSet[img.FileID] = struct{}{}
	}

	for _, img := range current {
		if _, ok := oldSet[img.FileID]; !ok {
			added = append(added, img.FileID)
		}
	}
	for _, img := range old {
		if _, ok := currentSet[img.FileID]; !ok {
			removed = append(removed, img.FileID)
		}
	}
	return added, removed
}
