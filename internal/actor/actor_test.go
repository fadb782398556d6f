package actor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenforge/image-pool-go/internal/actor"
	"github.com/tokenforge/image-pool-go/internal/imagepool"
	"github.com/tokenforge/image-pool-go/internal/types"
	"github.com/tokenforge/image-pool-go/internal/utils"
)

func TestSystem_TransactionalPick(t *testing.T) {
	pool := newMockPool("cats/a.png")

	// wal contains something -> no need to create snapshot
	wal := &mockWAL{size: 10}
	ctx := &types.Context{WAL: wal, Utils: &utils.MockUtils{}}
	sys, err := actor.NewSystem(ctx, pool, &actor.SystemOptional{FlushAfterNPick: 1})
	require.NoError(t, err)
	defer sys.Stop()

	// Success path
	gotResp := <-sys.Pick()
	if gotResp.FileID != "cats/a.png" {
		t.Fatalf("Expected cats/a.png, got %v", gotResp.FileID)
	}
	if len(wal.logged) == 0 || !wal.logged[0].(*types.WalLogPickItem).Success {
		t.Fatalf("Expected WAL log success, got %v", wal.logged)
	}
	if pool.committed != 1 {
		t.Fatalf("Expected committed=1, got %d", pool.committed)
	}

	// WAL failure path
	wal.fail = true
	gotResp2 := <-sys.Pick()
	if gotResp2.FileID != "" {
		t.Fatalf("Expected empty file ID on WAL failure, got %v", gotResp2.FileID)
	}
}

func TestSystem_FlushAfterNPick(t *testing.T) {
	pool := newMockPool("a.png", "b.png", "c.png", "d.png", "e.png")

	wal := &mockWAL{size: 10}
	ctx := &types.Context{WAL: wal, Utils: &utils.MockUtils{}}
	flushN := 3
	sys, err := actor.NewSystem(ctx, pool, &actor.SystemOptional{FlushAfterNPick: flushN})
	require.NoError(t, err)

	// Perform N-1 picks, flush should not be called
	for i := 0; i < flushN-1; i++ {
		<-sys.Pick()
	}
	if wal.flushCount != 0 {
		t.Fatalf("Expected flushCount=0 after %d picks, got %d", flushN-1, wal.flushCount)
	}
	if pool.committed != 0 {
		t.Fatalf("Expected committed=0 after %d picks, got %d", flushN-1, pool.committed)
	}

	// Perform the Nth pick, flush should be called
	<-sys.Pick()
	if wal.flushCount != 1 {
		t.Fatalf("Expected flushCount=1 after %d picks, got %d", flushN, wal.flushCount)
	}
	if pool.committed != flushN {
		t.Fatalf("Expected committed=%d after %d picks, got %d", flushN, flushN, pool.committed)
	}
	if pool.reverted != 0 {
		t.Fatalf("Expected reverted=0, got %d", pool.reverted)
	}
	sys.Stop()
}

func TestSystem_FlushOnStop(t *testing.T) {
	pool := newMockPool("a.png", "b.png")

	wal := &mockWAL{size: 10}
	ctx := &types.Context{WAL: wal, Utils: &utils.MockUtils{}}
	sys, err := actor.NewSystem(ctx, pool, &actor.SystemOptional{FlushAfterNPick: 100})
	require.NoError(t, err)

	<-sys.Pick()
	if wal.flushCount != 0 {
		t.Fatalf("Expected flushCount=0 before stop, got %d", wal.flushCount)
	}
	sys.Stop() // This should trigger a final flush
	if wal.flushCount != 1 {
		t.Fatalf("Expected flushCount=1 after Stop, got %d", wal.flushCount)
	}
	if pool.committed != 1 {
		t.Fatalf("Expected committed=1 after Stop, got %d", pool.committed)
	}
}

func TestSystem_Rescan(t *testing.T) {
	pool := imagepool.NewPool([]types.PoolImage{
		{FileID: "cats/a.png"},
		{FileID: "cats/b.png"},
	})

	wal := &mockWAL{size: 10}
	ctx := &types.Context{WAL: wal, Utils: &utils.MockUtils{}}
	sys, err := actor.NewSystem(ctx, pool, &actor.SystemOptional{FlushAfterNPick: 1})
	require.NoError(t, err)
	defer sys.Stop()

	resp := sys.Rescan([]types.PoolImage{
		{FileID: "cats/a.png"},
		{FileID: "cats/c.png"},
	})
	require.NoError(t, resp.Err)
	assert.Equal(t, []string{"cats/c.png"}, resp.Added)
	assert.Equal(t, []string{"cats/b.png"}, resp.Removed)

	// Rescan was logged to the WAL
	require.Len(t, wal.logged, 1)
	loggedRescan, ok := wal.logged[0].(*types.WalLogRescanItem)
	require.True(t, ok)
	assert.Equal(t, []string{"cats/c.png"}, loggedRescan.Added)

	// State reflects the new catalog
	state := sys.State()
	ids := make([]string, 0, len(state))
	for _, s := range state {
		ids = append(ids, s.FileID)
	}
	assert.ElementsMatch(t, []string{"cats/a.png", "cats/c.png"}, ids)

	// A no-op rescan produces no diff and no log
	resp = sys.Rescan([]types.PoolImage{
		{FileID: "cats/a.png"},
		{FileID: "cats/c.png"},
	})
	require.NoError(t, resp.Err)
	assert.Empty(t, resp.Added)
	assert.Empty(t, resp.Removed)
	assert.Len(t, wal.logged, 1)
}

func TestSystem_State(t *testing.T) {
	pool := imagepool.NewPool([]types.PoolImage{
		{FileID: "cats/a.png"},
		{FileID: "cats/b.png"},
		{FileID: "cats/c.png"},
	})

	wal := &mockWAL{size: 10}
	ctx := &types.Context{WAL: wal, Utils: &utils.MockUtils{}}
	sys, err := actor.NewSystem(ctx, pool, &actor.SystemOptional{FlushAfterNPick: 1})
	require.NoError(t, err)
	defer sys.Stop()

	resp := <-sys.Pick()
	require.NoError(t, resp.Err)

	state := sys.State()
	require.Len(t, state, 3)
	usedCount := 0
	for _, s := range state {
		if s.Used {
			usedCount++
			assert.Equal(t, resp.FileID, s.FileID)
		}
	}
	assert.Equal(t, 1, usedCount)
}

// Mocks
type mockPool struct {
	files     []string
	next      int
	pending   []string
	committed int
	reverted  int
}

func newMockPool(files ...string) *mockPool {
	return &mockPool{files: files}
}

func (m *mockPool) SelectImage(ctx *types.Context) (string, error) {
	if m.next >= len(m.files) {
		return "", types.ErrEmptyImagePool
	}
	id := m.files[m.next]
	m.next++
	m.pending = append(m.pending, id)
	return id, nil
}

func (m *mockPool) CommitPick() {
	m.committed += len(m.pending)
	m.pending = nil
}

func (m *mockPool) RevertPick() {
	m.reverted += len(m.pending)
	m.pending = nil
}

func (m *mockPool) Rescan(images []types.PoolImage) (added, removed []string) { return nil, nil }
func (m *mockPool) ApplyPickLog(fileID string)                                {}
func (m *mockPool) ApplyRescanLog(added, removed []string)                    {}
func (m *mockPool) State() []types.PoolImageState                             { return nil }
func (m *mockPool) UsedCount() int                                            { return 0 }
func (m *mockPool) IsUsed(fileID string) bool                                 { return false }
func (m *mockPool) CreateSnapshot() (*types.PoolSnapshot, error) {
	return &types.PoolSnapshot{}, nil
}
func (m *mockPool) LoadSnapshot(snap *types.PoolSnapshot) error { return nil }

type mockWAL struct {
	logged     []types.WalLogEntry
	fail       bool
	flushCount int
	flushFail  bool
	size       int64
}

func (m *mockWAL) LogPick(item types.WalLogPickItem) error {
	m.logged = append(m.logged, &item)
	if m.fail {
		return errors.New("simulated WAL error")
	}
	return nil
}

func (m *mockWAL) LogRescan(item types.WalLogRescanItem) error {
	m.logged = append(m.logged, &item)
	if m.fail {
		return errors.New("simulated WAL error")
	}
	return nil
}

func (m *mockWAL) LogSnapshot(item types.WalLogSnapshotItem) error {
	m.logged = append(m.logged, &item)
	return nil
}

func (m *mockWAL) Flush() error {
	m.flushCount++
	if m.flushFail {
		return errors.New("simulated WAL flush error")
	}
	return nil
}

func (m *mockWAL) Reset()               {}
func (m *mockWAL) Size() (int64, error) { return m.size, nil }
func (m *mockWAL) Close() error         { return nil }
func (m *mockWAL) Rotate(string) error  { return nil }
