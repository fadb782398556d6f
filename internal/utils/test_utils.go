package utils

import (
	"log/slog"
	"math/rand"

	"github.com/tokenforge/image-pool-go/internal/types"
)

// MockRandSource is a mock implementation of rand.Source for predictable testing.
type MockRandSource struct {
	Values []int64
	index  int
}

func (m *MockRandSource) Int63() int64 {
	if m.index >= len(m.Values) {
		panic("not enough mock random values")
	}
	val := m.Values[m.index]
	m.index++
	return val
}

func (m *MockRandSource) Seed(seed int64) {
	// No-op for mock
}

var _ rand.Source = (*MockRandSource)(nil)

// MockWAL is a no-op types.WAL for tests that records nothing.
type MockWAL struct{}

var _ types.WAL = (*MockWAL)(nil)

func (m *MockWAL) LogPick(item types.WalLogPickItem) error         { return nil }
func (m *MockWAL) LogRescan(item types.WalLogRescanItem) error     { return nil }
func (m *MockWAL) LogSnapshot(item types.WalLogSnapshotItem) error { return nil }
func (m *MockWAL) Flush() error                                    { return nil }
func (m *MockWAL) Reset()                                          {}
func (m *MockWAL) Size() (int64, error)                            { return 0, nil }
func (m *MockWAL) Close() error                                    { return nil }
func (m *MockWAL) Rotate(path string) error                        { return nil }

// MockUtils is a mock implementation of the types.Utils interface for testing.
type MockUtils struct{}

var _ types.Utils = (*MockUtils)(nil)

func (m *MockUtils) GetLogger() *slog.Logger {
	return nil // No logging in tests
}

func (m *MockUtils) GenSnapshotPath() *string {
	return nil // Snapshotting disabled
}

func (m *MockUtils) GenRotatedWALPath() *string {
	return nil // Rotation disabled
}

func (m *MockUtils) GetWALFiles() ([]string, error) {
	return []string{}, nil
}

func (m *MockUtils) GenNextWALPath() (string, uint64, error) {
	return "", 0, nil
}
