package processing

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/tokenforge/image-pool-go/internal/replay"
	"github.com/tokenforge/image-pool-go/internal/types"
)

type PickRequest struct {
	RequestID    uint64
	ResponseChan chan PickResponse
}

type PickResponse struct {
	RequestID uint64
	FileID    string
	Err       error
}

// Processor serializes pick requests onto a single goroutine, batching WAL
// flushes every flushAfterNPick picks. The pool commit/revert boundary is
// tied to the WAL flush outcome.
type Processor struct {
	ctx             *types.Context
	pool            types.ImagePool
	requestID       uint64
	reqChan         chan PickRequest
	stopChan        chan struct{}
	wg              sync.WaitGroup
	flushAfterNPick int
	pendingLogs     []types.WalLogEntry
}

type ProcessorOptional struct {
	// Number of pick operations after which the processor should flush its state.
	FlushAfterNPick int

	// Size of the buffer for incoming requests.
	RequestBufferSize int
}

// NewProcessor creates a new Processor. Optional parameters are set via ProcessorOptional.
func NewProcessor(ctx *types.Context, pool types.ImagePool, opt *ProcessorOptional) *Processor {
	n := 10
	if opt != nil && opt.FlushAfterNPick > 0 {
		n = opt.FlushAfterNPick
	}
	bufSize := 100
	if opt != nil && opt.RequestBufferSize > 0 {
		bufSize = opt.RequestBufferSize
	}

	p := &Processor{
		ctx:             ctx,
		pool:            pool,
		reqChan:         make(chan PickRequest, bufSize),
		stopChan:        make(chan struct{}),
		flushAfterNPick: n,
		pendingLogs:     make([]types.WalLogEntry, 0, n*2),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

func (p *Processor) run() {
	defer p.wg.Done()
	for {
		select {
		case req := <-p.reqChan:
			p.handlePick(req)
		case <-p.stopChan:
			// Graceful shutdown: stop receiving requests, cancel pending, then flush
			if logger := p.logger(); logger != nil {
				logger.Debug("[Processor] Shutdown")
			}
			close(p.reqChan)
			for req := range p.reqChan {
				req.ResponseChan <- PickResponse{RequestID: req.RequestID, Err: types.ErrShutingDown}
			}
			p.flush()
			return
		}
	}
}

func (p *Processor) handlePick(req PickRequest) {
	fileID, err := p.pool.SelectImage(p.ctx)

	logItem := types.WalLogPickItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypePick},
		RequestID:       req.RequestID,
		Success:         err == nil,
	}
	if logItem.Success {
		logItem.FileID = fileID
	} else if err == types.ErrEmptyImagePool {
		logItem.Error = types.ErrorPoolEmpty
	}

	walErr := p.ctx.WAL.LogPick(logItem)
	p.pendingLogs = append(p.pendingLogs, &logItem)

	// Batch flush/commit after N picks
	if len(p.pendingLogs) >= p.flushAfterNPick {
		p.flush()
	}

	resp := PickResponse{RequestID: req.RequestID, Err: err}
	if walErr == nil {
		resp.FileID = fileID
	} else {
		resp.Err = walErr
	}
	req.ResponseChan <- resp
}

func (p *Processor) flush() error {
	if len(p.pendingLogs) == 0 {
		return nil
	}

	flushErr := p.ctx.WAL.Flush()
	if flushErr != nil {
		if flushErr == types.ErrWALFull {
			return p.handleWALFull()
		}

		p.pool.RevertPick()
		p.pendingLogs = p.pendingLogs[:0]
		p.ctx.WAL.Reset()
		if logger := p.logger(); logger != nil {
			logger.Error("[Processor] WAL Flush failed, reverting picks.", "error", flushErr)
		}
		return flushErr
	}

	p.pool.CommitPick()
	if logger := p.logger(); logger != nil {
		logger.Debug(fmt.Sprintf("[Processor] WAL Flush and Commit - %d logs", len(p.pendingLogs)))
	}
	p.pendingLogs = p.pendingLogs[:0]
	return nil
}

// handleWALFull rotates into a fresh WAL file, snapshots the reverted state,
// then re-applies and re-logs the preserved picks.
func (p *Processor) handleWALFull() error {
	if logger := p.logger(); logger != nil {
		logger.Info("WAL is full. Reverting picks, rotating WAL, and re-applying logs.")
	}

	logsToReplay := make([]types.WalLogEntry, len(p.pendingLogs))
	copy(logsToReplay, p.pendingLogs)
	p.pool.RevertPick()
	p.pendingLogs = p.pendingLogs[:0]
	p.ctx.WAL.Reset()

	rotatedPath := p.ctx.Utils.GenRotatedWALPath()
	if rotatedPath != nil {
		if err := p.ctx.WAL.Rotate(*rotatedPath); err != nil {
			if logger := p.logger(); logger != nil {
				logger.Error("Failed to rotate WAL.", "error", err)
			}
			return err
		}
	}

	if err := p.snapshot(); err != nil {
		return err
	}
	if err := p.ctx.WAL.Flush(); err != nil {
		return err
	}

	for _, logEntry := range logsToReplay {
		replay.ApplyLog(p.pool, logEntry)
		if v, ok := logEntry.(*types.WalLogPickItem); ok {
			p.ctx.WAL.LogPick(*v)
			p.pendingLogs = append(p.pendingLogs, v)
		}
	}

	if err := p.ctx.WAL.Flush(); err != nil {
		if logger := p.logger(); logger != nil {
			logger.Error("CRITICAL: Flush failed even after WAL rotation. Data may be lost.", "error", err)
		}
		p.pool.RevertPick()
		p.pendingLogs = p.pendingLogs[:0]
		return err
	}
	p.pool.CommitPick()
	p.pendingLogs = p.pendingLogs[:0]
	return nil
}

func (p *Processor) snapshot() error {
	snapshotPath := p.ctx.Utils.GenSnapshotPath()
	if snapshotPath == nil {
		return nil // Snapshotting is disabled
	}

	snap, err := p.pool.CreateSnapshot()
	if err != nil {
		return err
	}
	snap.LastRequestID = atomic.LoadUint64(&p.requestID)

	if err := savePoolSnapshot(*snapshotPath, snap); err != nil {
		return err
	}

	return p.ctx.WAL.LogSnapshot(types.WalLogSnapshotItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypeSnapshot},
		Path:            *snapshotPath,
	})
}

// Pick enqueues a pick request and returns the channel the response will
// arrive on.
func (p *Processor) Pick() <-chan PickResponse {
	respChan := make(chan PickResponse, 1)
	reqID := atomic.AddUint64(&p.requestID, 1)
	p.reqChan <- PickRequest{RequestID: reqID, ResponseChan: respChan}
	return respChan
}

func (p *Processor) Stop() {
	close(p.stopChan)
	p.wg.Wait()
}

func (p *Processor) logger() *slog.Logger {
	if p.ctx.Utils == nil {
		return nil
	}
	return p.ctx.Utils.GetLogger()
}

func savePoolSnapshot(path string, snap *types.PoolSnapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return json.NewEncoder(file).Encode(snap)
}
