// internal/common/camunda/camundatest/jobclient.go
package camundatest

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc"
)

// MockGateway records job commands sent through the real zeebe command
// builders. Only the job completion RPCs are implemented.
type MockGateway struct {
	pb.GatewayClient
	mock.Mock
}

func (m *MockGateway) CompleteJob(ctx context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	args := m.Called(ctx, in)
	return &pb.CompleteJobResponse{}, args.Error(0)
}

func (m *MockGateway) FailJob(ctx context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	args := m.Called(ctx, in)
	return &pb.FailJobResponse{}, args.Error(0)
}

func (m *MockGateway) ThrowError(ctx context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	args := m.Called(ctx, in)
	return &pb.ThrowErrorResponse{}, args.Error(0)
}

// JobClient satisfies worker.JobClient on top of a MockGateway.
type JobClient struct {
	Gateway *MockGateway
}

func NewJobClient() *JobClient {
	return &JobClient{Gateway: &MockGateway{}}
}

func noRetry(context.Context, error) bool { return false }

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.Gateway, noRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.Gateway, noRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.Gateway, noRetry)
}

// Completed returns every CompleteJob request the gateway received.
func (c *JobClient) Completed() []*pb.CompleteJobRequest {
	var out []*pb.CompleteJobRequest
	for _, call := range c.Gateway.Calls {
		if req, ok := call.Arguments.Get(1).(*pb.CompleteJobRequest); ok {
			out = append(out, req)
		}
	}
	return out
}

func (c *JobClient) Failed() []*pb.FailJobRequest {
	var out []*pb.FailJobRequest
	for _, call := range c.Gateway.Calls {
		if req, ok := call.Arguments.Get(1).(*pb.FailJobRequest); ok {
			out = append(out, req)
		}
	}
	return out
}

func (c *JobClient) Thrown() []*pb.ThrowErrorRequest {
	var out []*pb.ThrowErrorRequest
	for _, call := range c.Gateway.Calls {
		if req, ok := call.Arguments.Get(1).(*pb.ThrowErrorRequest); ok {
			out = append(out, req)
		}
	}
	return out
}
