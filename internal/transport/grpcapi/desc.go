package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "gacha.v1.GachaService"

const (
	pullMethod    = "/" + ServiceName + "/Pull"
	profileMethod = "/" + ServiceName + "/Profile"
)

// GachaServer is the server API of gacha.v1.GachaService. Requests and
// responses are google.protobuf.Struct messages.
type GachaServer interface {
	Pull(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Profile(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes gacha.v1.GachaService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GachaServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Pull", Handler: unaryHandler(pullMethod, GachaServer.Pull)},
		{MethodName: "Profile", Handler: unaryHandler(profileMethod, GachaServer.Profile)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gacha/v1/gacha.proto",
}

// RegisterGachaServer registers srv on s.
func RegisterGachaServer(s grpc.ServiceRegistrar, srv GachaServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type structMethod func(GachaServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call structMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GachaServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GachaServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client calls gacha.v1.GachaService.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Pull draws count times for userID.
func (c *Client) Pull(ctx context.Context, userID string, count int, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]any{"user_id": userID, "count": count})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, pullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile fetches the profile of userID.
func (c *Client) Profile(ctx context.Context, userID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]any{"user_id": userID})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, profileMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
