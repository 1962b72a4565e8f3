package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
)

// GenerationServiceClient calls GenerationService
type GenerationServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewGenerationServiceClient wraps a connection
func NewGenerationServiceClient(cc grpc.ClientConnInterface) *GenerationServiceClient {
	return &GenerationServiceClient{cc: cc}
}

// Generate runs a generation on the server
func (c *GenerationServiceClient) Generate(ctx context.Context, req *GenerateRequest, opts ...grpc.CallOption) (*GenerateResponse, error) {
	out := new(GenerateResponse)
	if err := invoke(ctx, c.cc, GenerationServiceName, "Generate", req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// GetResult loads a stored player result
func (c *GenerationServiceClient) GetResult(ctx context.Context, req *GetResultRequest, opts ...grpc.CallOption) (*GetResultResponse, error) {
	out := new(GetResultResponse)
	if err := invoke(ctx, c.cc, GenerationServiceName, "GetResult", req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// DeliveryServiceClient calls DeliveryService
type DeliveryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDeliveryServiceClient wraps a connection
func NewDeliveryServiceClient(cc grpc.ClientConnInterface) *DeliveryServiceClient {
	return &DeliveryServiceClient{cc: cc}
}

// Send reports a checked location
func (c *DeliveryServiceClient) Send(ctx context.Context, req *SendRequest, opts ...grpc.CallOption) (*SendResponse, error) {
	out := new(SendResponse)
	if err := invoke(ctx, c.cc, DeliveryServiceName, "Send", req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Join marks a player online
func (c *DeliveryServiceClient) Join(ctx context.Context, req *PlayerRequest, opts ...grpc.CallOption) (*JoinResponse, error) {
	out := new(JoinResponse)
	if err := invoke(ctx, c.cc, DeliveryServiceName, "Join", req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Leave marks a player offline
func (c *DeliveryServiceClient) Leave(ctx context.Context, req *PlayerRequest, opts ...grpc.CallOption) (*LeaveResponse, error) {
	out := new(LeaveResponse)
	if err := invoke(ctx, c.cc, DeliveryServiceName, "Leave", req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Pending lists a player's outstanding deliveries
func (c *DeliveryServiceClient) Pending(ctx context.Context, req *PlayerRequest, opts ...grpc.CallOption) (*PendingResponse, error) {
	out := new(PendingResponse)
	if err := invoke(ctx, c.cc, DeliveryServiceName, "Pending", req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Confirm acknowledges a received item
func (c *DeliveryServiceClient) Confirm(ctx context.Context, req *ConfirmRequest, opts ...grpc.CallOption) (*ConfirmResponse, error) {
	out := new(ConfirmResponse)
	if err := invoke(ctx, c.cc, DeliveryServiceName, "Confirm", req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func invoke(ctx context.Context, cc grpc.ClientConnInterface, service, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return cc.Invoke(ctx, "/"+service+"/"+method, in, out, opts...)
}
