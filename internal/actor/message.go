package actor

import "github.com/tokenforge/image-pool-go/internal/types"

// PickMessage is sent to the actor to request an image pick.
type PickMessage struct {
	RequestID    uint64
	ResponseChan chan PickResponse
}

// PickResponse is the response sent back for a PickMessage.
type PickResponse struct {
	RequestID uint64
	FileID    string
	Err       error
}

// StopMessage is sent to the actor to request a graceful shutdown.
type StopMessage struct {
	ResponseChan chan struct{}
}

// FlushMessage is sent to the actor to manually trigger a WAL flush.
type FlushMessage struct {
	ResponseChan chan error
}

// SnapshotMessage is sent to the actor to manually trigger a snapshot.
type SnapshotMessage struct {
	ResponseChan chan error
}

// RescanMessage is sent to the actor to apply a fresh directory listing.
type RescanMessage struct {
	Images       []types.PoolImage
	ResponseChan chan RescanResponse
}

// RescanResponse carries the catalog diff a rescan produced.
type RescanResponse struct {
	Added   []string
	Removed []string
	Err     error
}

// StateMessage is sent to the actor to request the current pool state.
type StateMessage struct {
	ResponseChan chan []types.PoolImageState
}

// GetRequestIDMessage is sent to the actor to read the current request ID.
type GetRequestIDMessage struct {
	ResponseChan chan uint64
}

// SetRequestIDMessage is sent to the actor to restore the request ID after recovery.
type SetRequestIDMessage struct {
	ID           uint64
	ResponseChan chan struct{}
}
