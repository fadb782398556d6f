package imagepool_grpc_service

import (
	"context"
	"io"
	"net"

	"github.com/tokenforge/image-pool-go/internal/actor"
	"github.com/tokenforge/image-pool-go/internal/types"
	generated "github.com/tokenforge/image-pool-go/pkg/imagepool-grpc-service/generated"
	"google.golang.org/grpc"
)

// ActorSystem is an interface that actor.System implements.
type ActorSystem interface {
	State() []types.PoolImageState
	Pick() <-chan actor.PickResponse
	Rescan(images []types.PoolImage) actor.RescanResponse
	Stop()
	GetRequestID() uint64
	SetRequestID(id uint64)
}

// ImagePoolService is a gRPC service that exposes the image pool functionality.
type ImagePoolService struct {
	generated.UnimplementedImagePoolServiceServer
	system ActorSystem
}

// NewImagePoolService creates a new ImagePoolService.
func NewImagePoolService(system ActorSystem) *ImagePoolService {
	return &ImagePoolService{
		system: system,
	}
}

// ListenAndServe starts the gRPC server.
func ListenAndServe(ctx context.Context, system ActorSystem, listenAddress string) error {
	lis, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return err
	}
	s := grpc.NewServer()
	grpcService := NewImagePoolService(system)
	generated.RegisterImagePoolServiceServer(s, grpcService)

	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	return s.Serve(lis)
}

// GetState returns the current state of the image pool.
func (s *ImagePoolService) GetState(ctx context.Context, req *generated.GetStateRequest) (*generated.GetStateResponse, error) {
	state := s.system.State()
	images := make([]*generated.ImageState, 0, len(state))
	for _, item := range state {
		images = append(images, &generated.ImageState{
			FileId: item.FileID,
			Used:   item.Used,
		})
	}
	return &generated.GetStateResponse{
		Images: images,
	}, nil
}

// Pick dispenses images from the pool, one streamed response per pick.
func (s *ImagePoolService) Pick(stream generated.ImagePoolService_PickServer) error {
	for {
		req, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		count := req.GetCount()
		if count <= 0 {
			count = 1
		}

		for i := 0; i < int(count); i++ {
			resp := <-s.system.Pick()
			var errMsg string
			if resp.Err != nil {
				errMsg = resp.Err.Error()
			}
			if err := stream.Send(&generated.PickResponse{
				RequestId: resp.RequestID,
				FileId:    resp.FileID,
				Error:     errMsg,
			}); err != nil {
				return err
			}
		}
	}
}
