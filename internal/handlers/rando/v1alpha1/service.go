package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
)

// Fully qualified service names
const (
	GenerationServiceName = "rando.v1alpha1.GenerationService"
	DeliveryServiceName   = "rando.v1alpha1.DeliveryService"
)

// GenerationServiceServer is the server API for GenerationService
type GenerationServiceServer interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	GetResult(ctx context.Context, req *GetResultRequest) (*GetResultResponse, error)
}

// DeliveryServiceServer is the server API for DeliveryService
type DeliveryServiceServer interface {
	Send(ctx context.Context, req *SendRequest) (*SendResponse, error)
	Join(ctx context.Context, req *PlayerRequest) (*JoinResponse, error)
	Leave(ctx context.Context, req *PlayerRequest) (*LeaveResponse, error)
	Pending(ctx context.Context, req *PlayerRequest) (*PendingResponse, error)
	Confirm(ctx context.Context, req *ConfirmRequest) (*ConfirmResponse, error)
}

// GenerationServiceDesc describes GenerationService for grpc.Server
var GenerationServiceDesc = grpc.ServiceDesc{
	ServiceName: GenerationServiceName,
	HandlerType: (*GenerationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(GenerationServiceName, "Generate", func(srv any, ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
			return srv.(GenerationServiceServer).Generate(ctx, req)
		}),
		unary(GenerationServiceName, "GetResult", func(srv any, ctx context.Context, req *GetResultRequest) (*GetResultResponse, error) {
			return srv.(GenerationServiceServer).GetResult(ctx, req)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rando/v1alpha1/generation.json",
}

// DeliveryServiceDesc describes DeliveryService for grpc.Server
var DeliveryServiceDesc = grpc.ServiceDesc{
	ServiceName: DeliveryServiceName,
	HandlerType: (*DeliveryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(DeliveryServiceName, "Send", func(srv any, ctx context.Context, req *SendRequest) (*SendResponse, error) {
			return srv.(DeliveryServiceServer).Send(ctx, req)
		}),
		unary(DeliveryServiceName, "Join", func(srv any, ctx context.Context, req *PlayerRequest) (*JoinResponse, error) {
			return srv.(DeliveryServiceServer).Join(ctx, req)
		}),
		unary(DeliveryServiceName, "Leave", func(srv any, ctx context.Context, req *PlayerRequest) (*LeaveResponse, error) {
			return srv.(DeliveryServiceServer).Leave(ctx, req)
		}),
		unary(DeliveryServiceName, "Pending", func(srv any, ctx context.Context, req *PlayerRequest) (*PendingResponse, error) {
			return srv.(DeliveryServiceServer).Pending(ctx, req)
		}),
		unary(DeliveryServiceName, "Confirm", func(srv any, ctx context.Context, req *ConfirmRequest) (*ConfirmResponse, error) {
			return srv.(DeliveryServiceServer).Confirm(ctx, req)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rando/v1alpha1/delivery.json",
}

// RegisterGenerationServiceServer registers the generation handler
func RegisterGenerationServiceServer(s grpc.ServiceRegistrar, srv GenerationServiceServer) {
	s.RegisterService(&GenerationServiceDesc, srv)
}

// RegisterDeliveryServiceServer registers the delivery handler
func RegisterDeliveryServiceServer(s grpc.ServiceRegistrar, srv DeliveryServiceServer) {
	s.RegisterService(&DeliveryServiceDesc, srv)
}

// unary adapts a typed method to a grpc.MethodDesc, running the server's
// interceptor chain when there is one
func unary[Req, Resp any](
	service, method string,
	call func(srv any, ctx context.Context, req *Req) (*Resp, error),
) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
