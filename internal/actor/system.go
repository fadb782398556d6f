package actor

import (
	"context"
	"fmt"
	"sync"

	"github.com/tokenforge/image-pool-go/internal/types"
	"github.com/tokenforge/image-pool-go/internal/walstream"
)

// System manages the lifecycle of an actor and provides a client-facing API.
type System struct {
	processorActor *PickProcessorActor
	streamingActor *StreamingActor
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	stopOnce       sync.Once
}

// SystemOptional provides optional parameters for creating a new System.
type SystemOptional struct {
	FlushAfterNPick   int
	RequestBufferSize int
	LastRequestID     uint64
	WALStreamer       walstream.WALStreamer
}

// NewSystem creates, starts, and returns a new actor system.
func NewSystem(ctx *types.Context, pool types.ImagePool, opt *SystemOptional) (*System, error) {
	flushN := 10
	if opt != nil && opt.FlushAfterNPick > 0 {
		flushN = opt.FlushAfterNPick
	}
	bufSize := 100
	if opt != nil && opt.RequestBufferSize > 0 {
		bufSize = opt.RequestBufferSize
	}
	lastRequestID := uint64(0)
	if opt != nil && opt.LastRequestID > 0 {
		lastRequestID = opt.LastRequestID
	}

	processorActor := NewPickProcessorActor(ctx, pool, bufSize, flushN, lastRequestID)
	if err := processorActor.Init(); err != nil {
		// If init fails, we must ensure the WAL is closed if it was opened.
		processorActor.ctx.WAL.Close()
		return nil, fmt.Errorf("actor initialization failed: %w", err)
	}

	var streamingActor *StreamingActor
	if opt != nil && opt.WALStreamer != nil {
		streamingActor = NewStreamingActor(opt.WALStreamer, bufSize)
		processorActor.SetStreamChannel(streamingActor.mailbox)
	}

	actorCtx, cancel := context.WithCancel(context.Background())

	sys := &System{
		processorActor: processorActor,
		streamingActor: streamingActor,
		cancel:         cancel,
	}

	sys.wg.Add(1)
	go func() {
		defer sys.wg.Done()
		sys.processorActor.Receive(actorCtx)
	}()
	if sys.streamingActor != nil {
		sys.wg.Add(1)
		go func() {
			defer sys.wg.Done()
			sys.streamingActor.Receive(actorCtx)
		}()
	}

	return sys, nil
}

// Pick sends a pick request to the actor and returns the response channel.
func (s *System) Pick() <-chan PickResponse {
	respChan := make(chan PickResponse, 1)
	s.processorActor.mailbox <- PickMessage{ResponseChan: respChan}
	return respChan
}

// Stop gracefully shuts down the actor system.
func (s *System) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()  // Signal the actors to stop
		s.wg.Wait() // Wait for the actor goroutines to finish
	})
}

// Flush manually triggers a WAL flush.
func (s *System) Flush() error {
	respChan := make(chan error, 1)
	s.processorActor.mailbox <- FlushMessage{ResponseChan: respChan}
	return <-respChan
}

// Snapshot manually triggers a snapshot.
func (s *System) Snapshot() error {
	respChan := make(chan error, 1)
	s.processorActor.mailbox <- SnapshotMessage{ResponseChan: respChan}
	return <-respChan
}

// Rescan applies a fresh directory listing to the pool and waits for the diff.
func (s *System) Rescan(images []types.PoolImage) RescanResponse {
	respChan := make(chan RescanResponse, 1)
	s.processorActor.mailbox <- RescanMessage{Images: images, ResponseChan: respChan}
	return <-respChan
}

// State returns the current state of the image pool.
func (s *System) State() []types.PoolImageState {
	respChan := make(chan []types.PoolImageState, 1)
	s.processorActor.mailbox <- StateMessage{ResponseChan: respChan}
	return <-respChan
}

// GetRequestID returns the current request ID from the actor.
func (s *System) GetRequestID() uint64 {
	respChan := make(chan uint64, 1)
	s.processorActor.mailbox <- GetRequestIDMessage{ResponseChan: respChan}
	return <-respChan
}

// SetRequestID sets the request ID on the actor.
func (s *System) SetRequestID(id uint64) {
	respChan := make(chan struct{}, 1)
	s.processorActor.mailbox <- SetRequestIDMessage{ID: id, ResponseChan: respChan}
	<-respChan
}
