package raft_service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/lni/dragonboat/v4"
	"github.com/lni/dragonboat/v4/config"
	"github.com/lni/dragonboat/v4/statemachine"
	"github.com/tokenforge/image-pool-go/internal/imagepool"
	"github.com/tokenforge/image-pool-go/internal/replay"
	"github.com/tokenforge/image-pool-go/internal/types"
)

// ImagePoolStateMachine is the replicated state machine for the image pool.
type ImagePoolStateMachine struct {
	ShardID   uint64
	ReplicaID uint64
	pool      *imagepool.Pool
}

// NewImagePoolStateMachine creates a new ImagePoolStateMachine.
func NewImagePoolStateMachine(shardID uint64, replicaID uint64) statemachine.IStateMachine {
	return &ImagePoolStateMachine{
		ShardID:   shardID,
		ReplicaID: replicaID,
		pool:      imagepool.NewPool(nil),
	}
}

// Update applies the committed log entries to the state machine.
func (s *ImagePoolStateMachine) Update(entry statemachine.Entry) (statemachine.Result, error) {
	var base types.WalLogEntryBase
	if err := json.Unmarshal(entry.Cmd, &base); err != nil {
		return statemachine.Result{}, err
	}

	var logEntry types.WalLogEntry
	switch base.Type {
	case types.LogTypePick:
		var pickLog types.WalLogPickItem
		if err := json.Unmarshal(entry.Cmd, &pickLog); err != nil {
			return statemachine.Result{}, err
		}
		logEntry = &pickLog
	case types.LogTypeRescan:
		var rescanLog types.WalLogRescanItem
		if err := json.Unmarshal(entry.Cmd, &rescanLog); err != nil {
			return statemachine.Result{}, err
		}
		logEntry = &rescanLog
	default:
		return statemachine.Result{Value: 0}, nil
	}

	replay.ApplyLog(s.pool, logEntry)
	return statemachine.Result{Value: uint64(len(entry.Cmd))}, nil
}

// Lookup performs a read-only query on the state machine.
func (s *ImagePoolStateMachine) Lookup(query interface{}) (interface{}, error) {
	state := s.pool.State()
	data, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SaveSnapshot creates a snapshot of the state machine.
func (s *ImagePoolStateMachine) SaveSnapshot(w io.Writer, fc statemachine.ISnapshotFileCollection, done <-chan struct{}) error {
	snap, err := s.pool.CreateSnapshot()
	if err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// RecoverFromSnapshot restores the state machine from a snapshot.
func (s *ImagePoolStateMachine) RecoverFromSnapshot(r io.Reader, files []statemachine.SnapshotFile, done <-chan struct{}) error {
	var snap types.PoolSnapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return err
	}

	return s.pool.LoadSnapshot(&snap)
}

// Close closes the state machine.
func (s *ImagePoolStateMachine) Close() error {
	return nil
}

// Node is a wrapper around the dragonboat NodeHost.
type Node struct {
	nh      *dragonboat.NodeHost
	shardID uint64
}

// NewNode creates and starts a new dragonboat node.
func NewNode(replicaID uint64, raftAddress string, initialMembers map[uint64]string) (*Node, error) {
	shardID := uint64(1)
	rc := config.Config{
		ReplicaID:          replicaID,
		ShardID:            shardID,
		ElectionRTT:        10,
		HeartbeatRTT:       1,
		CheckQuorum:        true,
		SnapshotEntries:    10000,
		CompactionOverhead: 5000,
	}

	nhc := config.NodeHostConfig{
		WALDir:         "wal",
		NodeHostDir:    "dragonboat",
		RaftAddress:    raftAddress,
		RTTMillisecond: 200,
	}

	nh, err := dragonboat.NewNodeHost(nhc)
	if err != nil {
		return nil, err
	}

	if err := nh.StartReplica(initialMembers, false, NewImagePoolStateMachine, rc); err != nil {
		nh.Close()
		return nil, err
	}

	return &Node{nh: nh, shardID: shardID}, nil
}

// GetLeaderID returns the current leader of the shard.
func (n *Node) GetLeaderID() (leaderID uint64, term uint64, valid bool, err error) {
	return n.nh.GetLeaderID(n.shardID)
}

// ProposePick proposes a successful pick of fileID through the raft log.
func (n *Node) ProposePick(ctx context.Context, requestID uint64, fileID string) error {
	item := types.WalLogPickItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypePick},
		RequestID:       requestID,
		FileID:          fileID,
		Success:         true,
	}
	data, err := json.Marshal(&item)
	if err != nil {
		return err
	}

	session := n.nh.GetNoOPSession(n.shardID)
	_, err = n.nh.SyncPropose(ctx, session, data)
	return err
}

// ProposeRescan proposes a catalog diff through the raft log.
func (n *Node) ProposeRescan(ctx context.Context, added, removed []string) error {
	item := types.WalLogRescanItem{
		WalLogEntryBase: types.WalLogEntryBase{Type: types.LogTypeRescan},
		Added:           added,
		Removed:         removed,
	}
	data, err := json.Marshal(&item)
	if err != nil {
		return err
	}

	session := n.nh.GetNoOPSession(n.shardID)
	_, err = n.nh.SyncPropose(ctx, session, data)
	return err
}

// GetState performs a linearizable read of the replicated pool state.
func (n *Node) GetState(ctx context.Context) ([]types.PoolImageState, error) {
	result, err := n.nh.SyncRead(ctx, n.shardID, nil)
	if err != nil {
		return nil, err
	}

	data, ok := result.([]byte)
	if !ok {
		return nil, types.ErrInvalidLookupResult
	}

	var state []types.PoolImageState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return state, nil
}

// Close shuts down the node host.
func (n *Node) Close() {
	n.nh.Close()
}
