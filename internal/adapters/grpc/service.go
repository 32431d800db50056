package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the risk code service.
const ServiceName = "prr.v1.RiskCodeService"

// RiskCodeServer is the server API of prr.v1.RiskCodeService. Requests and
// responses are google.protobuf.Struct documents.
type RiskCodeServer interface {
	Score(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Encode(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Decode(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RiskCodeServiceDesc describes prr.v1.RiskCodeService for grpc.ServiceRegistrar.
var RiskCodeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RiskCodeServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Score", Handler: unaryHandler("Score", RiskCodeServer.Score)},
		{MethodName: "Encode", Handler: unaryHandler("Encode", RiskCodeServer.Encode)},
		{MethodName: "Decode", Handler: unaryHandler("Decode", RiskCodeServer.Decode)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "prr/v1/risk_code.proto",
}

// RegisterRiskCodeServer registers srv on s.
func RegisterRiskCodeServer(s grpc.ServiceRegistrar, srv RiskCodeServer) {
	s.RegisterService(&RiskCodeServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type unaryCall func(RiskCodeServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RiskCodeServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(RiskCodeServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RiskCodeClient calls prr.v1.RiskCodeService.
type RiskCodeClient struct {
	cc grpc.ClientConnInterface
}

// NewRiskCodeClient creates a client over an established connection.
func NewRiskCodeClient(cc grpc.ClientConnInterface) *RiskCodeClient {
	return &RiskCodeClient{cc: cc}
}

func (c *RiskCodeClient) Score(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Score", in, opts...)
}

func (c *RiskCodeClient) Encode(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Encode", in, opts...)
}

func (c *RiskCodeClient) Decode(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Decode", in, opts...)
}

func (c *RiskCodeClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
