package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region service-desc

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "coach.PolicyService"

const (
	methodOpenSession    = "/" + ServiceName + "/OpenSession"
	methodGetBehaviour   = "/" + ServiceName + "/GetBehaviour"
	methodGetObservation = "/" + ServiceName + "/GetObservation"
)

// PolicyServiceServer is the server API. Requests and responses are
// google.protobuf.Struct messages; the field names are documented on Server.
type PolicyServiceServer interface {
	OpenSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBehaviour(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetObservation(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterPolicyServiceServer attaches srv to a gRPC server.
func RegisterPolicyServiceServer(s grpc.ServiceRegistrar, srv PolicyServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PolicyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OpenSession", Handler: unaryHandler(methodOpenSession, PolicyServiceServer.OpenSession)},
		{MethodName: "GetBehaviour", Handler: unaryHandler(methodGetBehaviour, PolicyServiceServer.GetBehaviour)},
		{MethodName: "GetObservation", Handler: unaryHandler(methodGetObservation, PolicyServiceServer.GetObservation)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coach/policy.proto",
}

type unaryMethod func(PolicyServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a method expression to grpc.MethodHandler, running any
// configured interceptor.
func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PolicyServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PolicyServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// #endregion service-desc
