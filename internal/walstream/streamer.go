package walstream

import "github.com/tokenforge/image-pool-go/internal/types"

// WALStreamer receives committed WAL entries for delivery to a replica.
type WALStreamer interface {
	// Stream hands off one entry. Implementations must not block the
	// caller; the committing actor runs on the hot path.
	Stream(entry types.WalLogEntry)
}
