package walstream

import (
	"encoding/json"
	"log/slog"

	"github.com/tokenforge/image-pool-go/internal/types"
)

// LogStreamer emits every committed WAL entry through the application
// logger as a JSON line. It stands in for a real replica transport during
// local runs with --stream-wal.
type LogStreamer struct {
	logger *slog.Logger
}

// NewLogStreamer creates a new LogStreamer.
func NewLogStreamer(logger *slog.Logger) *LogStreamer {
	return &LogStreamer{logger: logger}
}

// Stream writes one log line per entry. Entries are dropped silently when
// no logger is configured.
func (s *LogStreamer) Stream(entry types.WalLogEntry) {
	if s.logger == nil {
		return
	}
	b, err := json.Marshal(entry)
	if err != nil {
		s.logger.Error("failed to marshal wal entry for streaming", "error", err)
		return
	}
	s.logger.Info("streaming wal entry", "entry", string(b))
}
