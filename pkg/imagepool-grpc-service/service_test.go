package imagepool_grpc_service_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenforge/image-pool-go/internal/actor"
	"github.com/tokenforge/image-pool-go/internal/types"
	grpc_service "github.com/tokenforge/image-pool-go/pkg/imagepool-grpc-service"
	generated "github.com/tokenforge/image-pool-go/pkg/imagepool-grpc-service/generated"
	"google.golang.org/grpc"
)

type mockActorSystem struct {
	picks   uint64
	pickErr error
}

func (m *mockActorSystem) State() []types.PoolImageState {
	return []types.PoolImageState{
		{FileID: "cats/cat1.png", Used: true},
		{FileID: "cats/cat2.jpg", Used: false},
	}
}

func (m *mockActorSystem) Pick() <-chan actor.PickResponse {
	m.picks++
	respChan := make(chan actor.PickResponse, 1)
	if m.pickErr != nil {
		respChan <- actor.PickResponse{RequestID: m.picks, Err: m.pickErr}
	} else {
		respChan <- actor.PickResponse{RequestID: m.picks, FileID: "cats/cat1.png"}
	}
	return respChan
}

func (m *mockActorSystem) Rescan(images []types.PoolImage) actor.RescanResponse {
	return actor.RescanResponse{}
}

func (m *mockActorSystem) Stop() {}

func (m *mockActorSystem) GetRequestID() uint64 { return 0 }

func (m *mockActorSystem) SetRequestID(id uint64) {}

func TestImagePoolService_GetState(t *testing.T) {
	// 1. Setup
	mockSystem := &mockActorSystem{}
	service := grpc_service.NewImagePoolService(mockSystem)

	// 2. Execution
	resp, err := service.GetState(context.Background(), &generated.GetStateRequest{})

	// 3. Assertions
	require.NoError(t, err)
	require.NotNil(t, resp)
	expectedState := mockSystem.State()
	require.Len(t, resp.Images, len(expectedState))

	for i, expectedItem := range expectedState {
		actualItem := resp.Images[i]
		assert.Equal(t, expectedItem.FileID, actualItem.FileId)
		assert.Equal(t, expectedItem.Used, actualItem.Used)
	}
}

// mockPickStream feeds canned requests into the bidirectional Pick handler
// and records everything it sends back.
type mockPickStream struct {
	grpc.ServerStream
	reqs []*generated.PickRequest
	sent []*generated.PickResponse
}

func (m *mockPickStream) Recv() (*generated.PickRequest, error) {
	if len(m.reqs) == 0 {
		return nil, io.EOF
	}
	req := m.reqs[0]
	m.reqs = m.reqs[1:]
	return req, nil
}

func (m *mockPickStream) Send(resp *generated.PickResponse) error {
	m.sent = append(m.sent, resp)
	return nil
}

func TestImagePoolService_Pick(t *testing.T) {
	mockSystem := &mockActorSystem{}
	service := grpc_service.NewImagePoolService(mockSystem)

	stream := &mockPickStream{
		reqs: []*generated.PickRequest{
			{Count: 2},
			{}, // zero count means one pick
		},
	}

	err := service.Pick(stream)
	require.NoError(t, err)
	require.Len(t, stream.sent, 3)

	for i, resp := range stream.sent {
		assert.Equal(t, uint64(i+1), resp.RequestId)
		assert.Equal(t, "cats/cat1.png", resp.FileId)
		assert.Empty(t, resp.Error)
	}
}

func TestImagePoolService_PickError(t *testing.T) {
	mockSystem := &mockActorSystem{pickErr: types.ErrEmptyImagePool}
	service := grpc_service.NewImagePoolService(mockSystem)

	stream := &mockPickStream{
		reqs: []*generated.PickRequest{{Count: 1}},
	}

	err := service.Pick(stream)
	require.NoError(t, err)
	require.Len(t, stream.sent, 1)
	assert.Empty(t, stream.sent[0].FileId)
	assert.Equal(t, types.ErrEmptyImagePool.Error(), stream.sent[0].Error)
}
