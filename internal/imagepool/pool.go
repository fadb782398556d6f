package imagepool

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/tokenforge/image-pool-go/internal/scanner"
	"github.com/tokenforge/image-pool-go/internal/selector"
	"github.com/tokenforge/image-pool-go/internal/types"
)

// Pool dispenses images from a catalog such that no image repeats until the
// whole catalog has been dispensed once, then the cycle resets.
//
// Picks are transactional: SelectImage stages a pick, CommitPick confirms
// every pick staged since the last commit, RevertPick rolls the pool back to
// the last commit point. The commit boundary is where the WAL flush happens,
// so in-memory state never runs ahead of what can be recovered.
type Pool struct {
	catalog   []types.PoolImage
	index     map[string]int
	selector  types.UsedSetSelector
	used      map[string]struct{}
	committed map[string]struct{}
	pending   []string
}

var _ types.ImagePool = (*Pool)(nil)

// PoolOptional provides optional parameters for NewPool.
type PoolOptional struct {
	Selector types.UsedSetSelector
}

// NewPool creates a pool over the given catalog. All images start unused.
func NewPool(images []types.PoolImage, opts ...PoolOptional) *Pool {
	var sel types.UsedSetSelector
	for _, opt := range opts {
		if opt.Selector != nil {
			sel = opt.Selector
		}
	}
	if sel == nil {
		sel = selector.NewFenwickTreeSelector()
	}

	p := &Pool{
		catalog:   append([]types.PoolImage(nil), images...),
		selector:  sel,
		used:      make(map[string]struct{}),
		committed: make(map[string]struct{}),
	}
	p.rebuildIndex()
	p.rebuildSelector()
	return p
}

// CreatePoolFromDir scans dir and builds a pool over the qualifying files.
// Fails with types.ErrEmptyImagePool when the directory holds none.
func CreatePoolFromDir(dir string, opts ...PoolOptional) (*Pool, error) {
	images, err := scanner.ScanDir(dir)
	if err != nil {
		return nil, err
	}
	return NewPool(images, opts...), nil
}

// CreatePoolFromConfigPath builds a pool from a JSON image-list fixture.
func CreatePoolFromConfigPath(configPath string, opts ...PoolOptional) (*Pool, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var data types.ConfigPool
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, err
	}
	if len(data.Images) == 0 {
		return nil, types.ErrEmptyImagePool
	}
	return NewPool(data.Images, opts...), nil
}

// SelectImage picks one unused image uniformly at random, stages it, and
// resets the used set the moment it saturates the catalog so the next call
// may again return any member.
func (p *Pool) SelectImage(ctx *types.Context) (string, error) {
	if len(p.catalog) == 0 {
		return "", types.ErrEmptyImagePool
	}

	fileID, err := p.selector.Select(ctx)
	if err != nil {
		return "", err
	}

	p.used[fileID] = struct{}{}
	p.selector.MarkUsed(fileID)
	p.pending = append(p.pending, fileID)

	if len(p.used) == len(p.catalog) {
		p.resetUsed(ctx)
	}

	return fileID, nil
}

// CommitPick confirms every pick staged since the last commit point.
func (p *Pool) CommitPick() {
	p.committed = copySet(p.used)
	p.pending = p.pending[:0]
}

// RevertPick rolls the pool back to the last commit point.
func (p *Pool) RevertPick() {
	p.used = copySet(p.committed)
	p.pending = p.pending[:0]
	p.rebuildSelector()
}

// Rescan diffs the given directory listing against the catalog and applies
// it. New files join the pool unused; vanished files leave both the catalog
// and the used set.
func (p *Pool) Rescan(images []types.PoolImage) (added, removed []string) {
	added, removed = scanner.Diff(p.catalog, images)
	if len(added) == 0 && len(removed) == 0 {
		return added, removed
	}
	p.ApplyRescanLog(added, removed)
	return added, removed
}

// ApplyPickLog deterministically applies a recovered pick to the pool.
func (p *Pool) ApplyPickLog(fileID string) {
	if _, ok := p.index[fileID]; !ok {
		return
	}
	p.used[fileID] = struct{}{}
	p.selector.MarkUsed(fileID)
	if len(p.used) == len(p.catalog) {
		p.resetUsed(nil)
	}
	p.committed = copySet(p.used)
}

// ApplyRescanLog deterministically applies a recovered rescan diff.
func (p *Pool) ApplyRescanLog(added, removed []string) {
	removedSet := make(map[string]struct{}, len(removed))
	for _, id := range removed {
		removedSet[id] = struct{}{}
	}

	catalog := make([]types.PoolImage, 0, len(p.catalog)+len(added))
	for _, img := range p.catalog {
		if _, gone := removedSet[img.FileID]; gone {
			continue
		}
		catalog = append(catalog, img)
	}
	for _, id := range added {
		if _, exists := p.index[id]; exists {
			continue
		}
		catalog = append(catalog, types.PoolImage{FileID: id})
	}
	p.catalog = catalog
	p.rebuildIndex()

	for _, id := range removed {
		delete(p.used, id)
	}
	p.rebuildSelector()

	if len(p.catalog) > 0 && len(p.used) == len(p.catalog) {
		p.resetUsed(nil)
	}
	p.committed = copySet(p.used)
}

// State returns the catalog with per-image used flags.
func (p *Pool) State() []types.PoolImageState {
	state := make([]types.PoolImageState, 0, len(p.catalog))
	for _, img := range p.catalog {
		_, used := p.used[img.FileID]
		state = append(state, types.PoolImageState{FileID: img.FileID, Used: used})
	}
	return state
}

// UsedCount returns the size of the used set.
func (p *Pool) UsedCount() int {
	return len(p.used)
}

// IsUsed reports whether the image has been dispensed since the last reset.
func (p *Pool) IsUsed(fileID string) bool {
	_, ok := p.used[fileID]
	return ok
}

// CreateSnapshot captures the pool state. The used list is sorted so that
// snapshots of equal states are byte-identical.
func (p *Pool) CreateSnapshot() (*types.PoolSnapshot, error) {
	used := make([]string, 0, len(p.used))
	for id := range p.used {
		used = append(used, id)
	}
	sort.Strings(used)

	return &types.PoolSnapshot{
		Catalog: append([]types.PoolImage(nil), p.catalog...),
		Used:    used,
	}, nil
}

// LoadSnapshot replaces the pool state with the snapshot's.
func (p *Pool) LoadSnapshot(snap *types.PoolSnapshot) error {
	p.catalog = append([]types.PoolImage(nil), snap.Catalog...)
	p.rebuildIndex()

	p.used = make(map[string]struct{}, len(snap.Used))
	for _, id := range snap.Used {
		if _, ok := p.index[id]; ok {
			p.used[id] = struct{}{}
		}
	}
	p.committed = copySet(p.used)
	p.pending = nil
	p.rebuildSelector()
	return nil
}

// SaveSnapshot writes the pool state as JSON to path.
func (p *Pool) SaveSnapshot(path string) error {
	snap, err := p.CreateSnapshot()
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	return enc.Encode(snap)
}

func (p *Pool) resetUsed(ctx *types.Context) {
	p.used = make(map[string]struct{}, len(p.catalog))
	p.selector.ResetAll(p.catalog)
	if ctx != nil && ctx.Utils != nil {
		if logger := ctx.Utils.GetLogger(); logger != nil {
			logger.Info("all images used, resetting usage record", "pool_size", len(p.catalog))
		}
	}
}

func (p *Pool) rebuildIndex() {
	p.index = make(map[string]int, len(p.catalog))
	for i, img := range p.catalog {
		p.index[img.FileID] = i
	}
}

func (p *Pool) rebuildSelector() {
	p.selector.ResetAll(p.catalog)
	for id := range p.used {
		p.selector.MarkUsed(id)
	}
}

func copySet(src map[string]struct{}) map[string]struct{} {
	dst := make(map[string]struct{}, len(src))
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}
