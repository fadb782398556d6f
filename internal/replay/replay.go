package replay

import (
	"github.com/tokenforge/image-pool-go/internal/types"
)

// ApplyLog applies a single log entry to the pool's state.
func ApplyLog(pool types.ImagePool, log types.WalLogEntry) {
	switch v := log.(type) {
	case *types.WalLogPickItem:
		if v.Success {
			pool.ApplyPickLog(v.FileID)
		}
	case *types.WalLogRescanItem:
		pool.ApplyRescanLog(v.Added, v.Removed)
		// Other log types like Rotate or Snapshot are not applied to the pool state itself.
	}
}

// ReplayLogs applies a series of log entries to the pool's state.
func ReplayLogs(pool types.ImagePool, logs []types.WalLogEntry) {
	for _, item := range logs {
		ApplyLog(pool, item)
	}
}
