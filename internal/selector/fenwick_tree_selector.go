package selector

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tokenforge/image-pool-go/internal/types"
	"github.com/tokenforge/image-pool-go/internal/utils"
)

// FenwickTreeSelector implements the UsedSetSelector interface using a
// Fenwick Tree. Every unused image carries a unit weight, so a uniform draw
// over the cumulative sum lands on each unused member with equal probability
// in O(log n).
type FenwickTreeSelector struct {
	// tree stores a unit weight per unused image.
	tree *utils.FenwickTree

	// fileIDs maps the index in the Fenwick tree back to the actual FileID.
	fileIDs []string

	// fileIndex maps FileID to its index in the Fenwick tree and fileIDs slice.
	fileIndex map[string]int

	// used marks which indexes have been dispensed since the last reset.
	used []bool

	// totalUnused is the number of images currently selectable.
	totalUnused int64

	// rand is the random number generator for selection.
	rand *rand.Rand
}

var _ types.UsedSetSelector = (*FenwickTreeSelector)(nil)

// NewFenwickTreeSelector creates a new FenwickTreeSelector.
func NewFenwickTreeSelector() *FenwickTreeSelector {
	return &FenwickTreeSelector{
		fileIndex: make(map[string]int),
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ResetAll initializes or re-initializes the selector with a new catalog.
// All catalog members start unused.
func (fts *FenwickTreeSelector) ResetAll(catalog []types.PoolImage) {
	fts.fileIDs = make([]string, len(catalog))
	fts.fileIndex = make(map[string]int)
	fts.used = make([]bool, len(catalog))
	fts.totalUnused = 0

	fts.tree = utils.NewFenwickTree(len(catalog))

	for i, img := range catalog {
		fts.fileIDs[i] = img.FileID
		fts.fileIndex[img.FileID] = i
		fts.tree.Add(i, 1)
		fts.totalUnused++
	}
}

// Select chooses one unused image uniformly at random.
func (fts *FenwickTreeSelector) Select(ctx *types.Context) (string, error) {
	if fts.totalUnused <= 0 {
		return "", types.ErrEmptyImagePool
	}

	// +1 because FenwickTree.Find expects a 1-based cumulative sum
	randVal := fts.rand.Int63n(fts.totalUnused) + 1

	idx := fts.tree.Find(randVal)

	// This should not happen if totalUnused is correct and Find works as expected
	if idx == -1 || idx >= len(fts.fileIDs) {
		return "", fmt.Errorf("internal error: failed to find image for random value %d (total unused: %d)", randVal, fts.totalUnused)
	}

	return fts.fileIDs[idx], nil
}

// MarkUsed removes the image's unit weight from the tree.
func (fts *FenwickTreeSelector) MarkUsed(fileID string) {
	idx, ok := fts.fileIndex[fileID]
	if !ok || fts.used[idx] {
		return
	}
	fts.tree.Add(idx, -1)
	fts.used[idx] = true
	fts.totalUnused--
}

// MarkUnused returns the image's unit weight to the tree.
func (fts *FenwickTreeSelector) MarkUnused(fileID string) {
	idx, ok := fts.fileIndex[fileID]
	if !ok || !fts.used[idx] {
		return
	}
	fts.tree.Add(idx, 1)
	fts.used[idx] = false
	fts.totalUnused++
}

// TotalUnused returns the count of images currently available for selection.
func (fts *FenwickTreeSelector) TotalUnused() int64 {
	return fts.totalUnused
}

// IsUsed reports whether the image has been dispensed since the last reset.
func (fts *FenwickTreeSelector) IsUsed(fileID string) bool {
	idx, ok := fts.fileIndex[fileID]
	if !ok {
		return false
	}
	return fts.used[idx]
}

// UsedIDs returns the dispensed file IDs in catalog order.
func (fts *FenwickTreeSelector) UsedIDs() []string {
	var ids []string
	for i, u := range fts.used {
		if u {
			ids = append(ids, fts.fileIDs[i])
		}
	}
	return ids
}
