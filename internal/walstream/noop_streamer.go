package walstream

import "github.com/tokenforge/image-pool-go/internal/types"

// NoOpStreamer discards every entry. Used when streaming is disabled.
type NoOpStreamer struct{}

// NewNoOpStreamer creates a new NoOpStreamer.
func NewNoOpStreamer() *NoOpStreamer {
	return &NoOpStreamer{}
}

func (s *NoOpStreamer) Stream(entry types.WalLogEntry) {}
