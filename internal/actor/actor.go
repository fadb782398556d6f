package actor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/tokenforge/image-pool-go/internal/replay"
	"github.com/tokenforge/image-pool-go/internal/types"
)

// PickProcessorActor encapsulates the state and behavior of the image pick
// processing. It is designed to be run in a single goroutine, processing
// messages from its mailbox.
type PickProcessorActor struct {
	ctx             *types.Context
	pool            types.ImagePool
	mailbox         chan interface{}
	flushAfterNPick int
	pendingLogs     []types.WalLogEntry
	requestID       uint64
	streamChan      chan<- types.WalLogEntry
}

// NewPickProcessorActor creates a new actor instance.
func NewPickProcessorActor(ctx *types.Context, pool types.ImagePool, mailboxSize, flushAfterNPick int, requestID uint64) *PickProcessorActor {
	return &PickProcessorActor{
		ctx:             ctx,
		pool:            pool,
		mailbox:         make(chan interface{}, mailboxSize),
		flushAfterNPick: flushAfterNPick,
		pendingLogs:     make([]types.WalLogEntry, 0, flushAfterNPick*2),
		requestID:       requestID,
	}
}

// SetStreamChannel wires the actor to a streaming mailbox. Committed log
// entries are forwarded there after each successful flush.
func (a *PickProcessorActor) SetStreamChannel(ch chan<- types.WalLogEntry) {
	a.streamChan = ch
}

// Init performs the initial setup for the actor, like creating an initial
// snapshot if the WAL is empty. It's called once when the actor starts.
func (a *PickProcessorActor) Init() error {
	size, err := a.ctx.WAL.Size()
	if err != nil {
		return fmt.Errorf("could not determine WAL size: %w", err)
	}

	if size == 0 {
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Info("WAL is empty, creating initial snapshot.")
		}
		if err := a.snapshot(); err != nil {
			return fmt.Errorf("failed to create initial snapshot: %w", err)
		}
		// The snapshot log is staged in the WAL's buffer, flush it to disk.
		return a.ctx.WAL.Flush()
	}

	return nil
}

// Receive starts the actor's message processing loop.
// This method is expected to be called in its own goroutine.
func (a *PickProcessorActor) Receive(ctx context.Context) {
	for {
		select {
		case msg := <-a.mailbox:
			if m, ok := msg.(StopMessage); ok {
				a.shutdown()
				close(m.ResponseChan)
				return
			}
			a.handleMessage(msg)
		case <-ctx.Done():
			// Context was cancelled, perform graceful shutdown.
			a.shutdown()
			return
		}
	}
}

func (a *PickProcessorActor) handleMessage(msg interface{}) {
	switch m := msg.(type) {
	case PickMessage:
		a.handlePick(m)
	case FlushMessage:
		m.ResponseChan <- a.flush()
	case SnapshotMessage:
		m.ResponseChan <- a.snapshot()
	case RescanMessage:
		a.handleRescan(m)
	case StateMessage:
		// This is a read-only operation, so it's safe to do directly.
		m.ResponseChan <- a.pool.State()
	case GetRequestIDMessage:
		m.ResponseChan <- a.requestID
	case SetRequestIDMessage:
		a.requestID = m.ID
		close(m.ResponseChan)
	}
}

func (a *PickProcessorActor) handlePick(m PickMessage) {
	reqID := atomic.AddUint64(&a.requestID, 1)
	fileID, err := a.pool.SelectImage(a.ctx)
	var walErr error

	logItem := types.WalLogPickItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypePick},
		RequestID:       reqID,
		Success:         err == nil,
	}

	if logItem.Success {
		logItem.FileID = fileID
	} else if err == types.ErrEmptyImagePool {
		logItem.Error = types.ErrorPoolEmpty
	}

	walErr = a.ctx.WAL.LogPick(logItem)
	a.pendingLogs = append(a.pendingLogs, &logItem)

	if len(a.pendingLogs) >= a.flushAfterNPick {
		a.flush()
	}

	resp := PickResponse{RequestID: reqID, Err: err}
	if walErr == nil {
		resp.FileID = fileID
	} else {
		resp.Err = walErr
	}

	m.ResponseChan <- resp
}

func (a *PickProcessorActor) handleRescan(m RescanMessage) {
	added, removed := a.pool.Rescan(m.Images)
	if len(added) == 0 && len(removed) == 0 {
		// Catalog unchanged, nothing to log.
		m.ResponseChan <- RescanResponse{}
		return
	}

	logItem := types.WalLogRescanItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypeRescan},
		Added:           added,
		Removed:         removed,
	}

	walErr := a.ctx.WAL.LogRescan(logItem)
	if walErr == nil {
		a.pendingLogs = append(a.pendingLogs, &logItem)
	}
	m.ResponseChan <- RescanResponse{Added: added, Removed: removed, Err: walErr}
}

func (a *PickProcessorActor) flush() error {
	if len(a.pendingLogs) == 0 {
		return nil
	}

	flushErr := a.ctx.WAL.Flush()

	if flushErr != nil {
		if flushErr == types.ErrWALFull {
			return a.handleWALFull()
		}

		// Another flush error. Revert picks.
		a.pool.RevertPick()
		a.pendingLogs = a.pendingLogs[:0]
		a.ctx.WAL.Reset() // Clear the unflushed buffer
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Error("[Actor] WAL Flush failed, reverting picks.", "error", flushErr)
		}
		return flushErr
	}

	// Flush was successful. Commit picks.
	a.pool.CommitPick()
	a.streamPendingLogs()

	if logger := a.ctx.Utils.GetLogger(); logger != nil {
		logger.Debug(fmt.Sprintf("[Actor] WAL Flush and Commit - %d logs", len(a.pendingLogs)))
	}
	a.pendingLogs = a.pendingLogs[:0]
	return nil
}

// streamPendingLogs forwards the committed entries to the streaming actor.
// Sends never block; a saturated stream mailbox drops entries.
func (a *PickProcessorActor) streamPendingLogs() {
	if a.streamChan == nil {
		return
	}
	for _, logEntry := range a.pendingLogs {
		select {
		case a.streamChan <- logEntry:
		default:
			if logger := a.ctx.Utils.GetLogger(); logger != nil {
				logger.Warn("stream mailbox full, dropping log entry")
			}
		}
	}
}

func (a *PickProcessorActor) handleWALFull() error {
	if logger := a.ctx.Utils.GetLogger(); logger != nil {
		logger.Info("WAL is full. Reverting picks, rotating WAL, and re-applying logs.")
	}

	// 1. Preserve pending logs and revert in-memory state
	logsToReplay := make([]types.WalLogEntry, len(a.pendingLogs))
	copy(logsToReplay, a.pendingLogs)
	a.pool.RevertPick()
	a.pendingLogs = a.pendingLogs[:0]
	a.ctx.WAL.Reset() // Clear the unflushed buffer in the WAL

	// 2. Rotate WAL file
	rotatedPath := a.ctx.Utils.GenRotatedWALPath()
	if rotatedPath != nil {
		if err := a.ctx.WAL.Rotate(*rotatedPath); err != nil {
			if logger := a.ctx.Utils.GetLogger(); logger != nil {
				logger.Error("Failed to rotate WAL.", "error", err)
			}
			// This is a critical failure, can't proceed.
			return err
		}
	}

	// 3. Create and log a snapshot to the new WAL
	if err := a.snapshot(); err != nil {
		// Also a critical failure.
		return err
	}
	// Flush the snapshot log immediately to secure the new WAL's starting state.
	if err := a.ctx.WAL.Flush(); err != nil {
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Error("CRITICAL: Could not flush snapshot to new WAL. State may be inconsistent.", "error", err)
		}
		return err
	}

	// 4. Re-apply and re-log the preserved operations
	a.replayAndRelog(logsToReplay)

	// 5. Final flush attempt on the new WAL
	if err := a.ctx.WAL.Flush(); err != nil {
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Error("CRITICAL: Flush failed even after WAL rotation. Data may be lost.", "error", err)
		}
		// At this point, recovery is difficult. We've already rotated and
		// snapshotted. The best we can do is revert the re-staged picks and
		// report the error.
		a.pool.RevertPick()
		a.pendingLogs = a.pendingLogs[:0]
		return err
	}
	a.pool.CommitPick()
	a.streamPendingLogs()
	a.pendingLogs = a.pendingLogs[:0]

	return nil
}

func (a *PickProcessorActor) replayAndRelog(logsToReplay []types.WalLogEntry) {
	if logger := a.ctx.Utils.GetLogger(); logger != nil {
		logger.Info("Replaying pending logs to the new WAL.", "count", len(logsToReplay))
	}
	for _, logEntry := range logsToReplay {
		// Re-apply the operation to the in-memory pool
		replay.ApplyLog(a.pool, logEntry)

		// Re-log the operation to the new WAL's buffer and the actor's pending list
		switch v := logEntry.(type) {
		case *types.WalLogPickItem:
			a.ctx.WAL.LogPick(*v)
			a.pendingLogs = append(a.pendingLogs, v)
		case *types.WalLogRescanItem:
			a.ctx.WAL.LogRescan(*v)
			a.pendingLogs = append(a.pendingLogs, v)
		}
	}
}

func (a *PickProcessorActor) snapshot() error {
	snapshotPath := a.ctx.Utils.GenSnapshotPath()
	if snapshotPath == nil {
		return nil // Snapshotting is disabled
	}

	if logger := a.ctx.Utils.GetLogger(); logger != nil {
		logger.Info("Creating snapshot.", "path", *snapshotPath)
	}

	snap, err := a.pool.CreateSnapshot()
	if err != nil {
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Error("Failed to create snapshot data.", "error", err)
		}
		return err
	}

	// The actor is the owner of the request ID, so it sets it on the snapshot.
	snap.LastRequestID = a.requestID

	file, err := os.Create(*snapshotPath)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	if err := enc.Encode(snap); err != nil {
		return err
	}

	logItem := types.WalLogSnapshotItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypeSnapshot},
		Path:            *snapshotPath,
	}
	if err := a.ctx.WAL.LogSnapshot(logItem); err != nil {
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Error("Failed to log snapshot to WAL.", "error", err)
		}
		return err
	}

	return nil
}

func (a *PickProcessorActor) shutdown() {
	if a.ctx.Utils.GetLogger() != nil {
		a.ctx.Utils.GetLogger().Debug("[Actor] Shutdown")
	}

	// Drain mailbox and cancel pending requests
	close(a.mailbox)
	for msg := range a.mailbox {
		if m, ok := msg.(PickMessage); ok {
			m.ResponseChan <- PickResponse{Err: types.ErrShutingDown}
		}
	}

	a.flush()
	a.ctx.WAL.Close()
}
