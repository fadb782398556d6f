package selector

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tokenforge/image-pool-go/internal/types"
)

// BitmapSelector implements the UsedSetSelector interface with a plain
// used-bit slice and a linear scan for the k-th unused member. O(n) per
// pick, but allocation-free and simple. Baseline for the bench harness.
type BitmapSelector struct {
	// fileIDs maps the index in the used slice back to the actual FileID.
	fileIDs []string

	// fileIndex maps FileID to its index in the used and fileIDs slices.
	fileIndex map[string]int

	// used marks which indexes have been dispensed since the last reset.
	used []bool

	// totalUnused is the number of images currently selectable.
	totalUnused int64

	// rand is the random number generator for selection.
	rand *rand.Rand
}

var _ types.UsedSetSelector = (*BitmapSelector)(nil)

// NewBitmapSelector creates a new BitmapSelector.
func NewBitmapSelector() *BitmapSelector {
	return &BitmapSelector{
		fileIndex: make(map[string]int),
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ResetAll initializes or re-initializes the selector with a new catalog.
func (bs *BitmapSelector) ResetAll(catalog []types.PoolImage) {
	bs.fileIDs = make([]string, len(catalog))
	bs.fileIndex = make(map[string]int)
	bs.used = make([]bool, len(catalog))
	bs.totalUnused = int64(len(catalog))

	for i, img := range catalog {
		bs.fileIDs[i] = img.FileID
		bs.fileIndex[img.FileID] = i
	}
}

// Select chooses one unused image uniformly at random by walking to the
// k-th unused index.
func (bs *BitmapSelector) Select(ctx *types.Context) (string, error) {
	if bs.totalUnused <= 0 {
		return "", types.ErrEmptyImagePool
	}

	k := bs.rand.Int63n(bs.totalUnused)
	for i, u := range bs.used {
		if u {
			continue
		}
		if k == 0 {
			return bs.fileIDs[i], nil
		}
		k--
	}

	return "", fmt.Errorf("internal error: unused count %d disagrees with bitmap", bs.totalUnused)
}

// MarkUsed removes the image from the unused set.
func (bs *BitmapSelector) MarkUsed(fileID string) {
	idx, ok := bs.fileIndex[fileID]
	if !ok || bs.used[idx] {
		return
	}
	bs.used[idx] = true
	bs.totalUnused--
}

// MarkUnused returns the image to the unused set.
func (bs *BitmapSelector) MarkUnused(fileID string) {
	idx, ok := bs.fileIndex[fileID]
	if !ok || !bs.used[idx] {
		return
	}
	bs.used[idx] = false
	bs.totalUnused++
}

// TotalUnused returns the count of images currently available for selection.
func (bs *BitmapSelector) TotalUnused() int64 {
	return bs.totalUnused
}

// IsUsed reports whether the image has been dispensed since the last reset.
func (bs *BitmapSelector) IsUsed(fileID string) bool {
	idx, ok := bs.fileIndex[fileID]
	if !ok {
		return false
	}
	return bs.used[idx]
}

// UsedIDs returns the dispensed file IDs in catalog order.
func (bs *BitmapSelector) UsedIDs() []string {
	var ids []string
	for i, u := range bs.used {
		if u {
			ids = append(ids, bs.fileIDs[i])
		}
	}
	return ids
}
