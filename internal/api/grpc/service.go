package grpc

import (
	"context"

	grpclib "google.golang.org/grpc"

	"connector-service/internal/api/grpc/pb"
)

// serviceDesc is the hand-built equivalent of a protoc-gen-go-grpc
// _grpc.pb.go ServiceDesc for connector.v1.ConnectorGateway
// (proto/connector.proto). It is written by hand rather than generated
// because the server uses the JSON codec (codec.go) instead of
// protoc-generated bindings; the method set and names match the .proto
// file exactly so the two stay interchangeable if real codegen is
// introduced later.
var serviceDesc = grpclib.ServiceDesc{
	ServiceName: "connector.v1.ConnectorGateway",
	HandlerType: (*edgeServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Authorize", Handler: authorizeHandler},
		{MethodName: "Capture", Handler: captureHandler},
		{MethodName: "Void", Handler: voidHandler},
		{MethodName: "PSync", Handler: psyncHandler},
		{MethodName: "Refund", Handler: refundHandler},
		{MethodName: "RSync", Handler: rsyncHandler},
		{MethodName: "SetupMandate", Handler: setupMandateHandler},
		{MethodName: "CreateOrder", Handler: createOrderHandler},
		{MethodName: "AcceptDispute", Handler: acceptDisputeHandler},
		{MethodName: "SubmitEvidence", Handler: submitEvidenceHandler},
		{MethodName: "DefendDispute", Handler: defendDisputeHandler},
	},
	Metadata: "connector.proto",
}

// edgeServer is the interface RegisterConnectorGatewayServer requires;
// *Edge satisfies it.
type edgeServer interface {
	Authorize(context.Context, *pb.AuthorizeRequest) (*pb.PaymentsResponse, error)
	Capture(context.Context, *pb.CaptureRequest) (*pb.PaymentsResponse, error)
	Void(context.Context, *pb.VoidRequest) (*pb.PaymentsResponse, error)
	PSync(context.Context, *pb.PSyncRequest) (*pb.PaymentsResponse, error)
	Refund(context.Context, *pb.RefundRequest) (*pb.RefundsResponse, error)
	RSync(context.Context, *pb.RSyncRequest) (*pb.RefundsResponse, error)
	SetupMandate(context.Context, *pb.SetupMandateRequest) (*pb.PaymentsResponse, error)
	CreateOrder(context.Context, *pb.CreateOrderRequest) (*pb.CreateOrderResponse, error)
	AcceptDispute(context.Context, *pb.AcceptDisputeRequest) (*pb.DisputeResponse, error)
	SubmitEvidence(context.Context, *pb.SubmitEvidenceRequest) (*pb.DisputeResponse, error)
	DefendDispute(context.Context, *pb.DefendDisputeRequest) (*pb.DisputeResponse, error)
}

// RegisterConnectorGatewayServer registers srv against s under the
// ConnectorGateway service description.
func RegisterConnectorGatewayServer(s grpclib.ServiceRegistrar, srv edgeServer) {
	s.RegisterService(&serviceDesc, srv)
}

func decodeAndRun[Req any, Resp any](ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor, info *grpclib.UnaryServerInfo, run func(context.Context, *Req) (*Resp, error)) (any, error) {
	req := new(Req)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return run(ctx, req)
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return run(ctx, req.(*Req))
	}
	return interceptor(ctx, req, info, handler)
}

func authorizeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/connector.v1.ConnectorGateway/Authorize"}
	return decodeAndRun(ctx, dec, interceptor, info, srv.(edgeServer).Authorize)
}

func captureHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/connector.v1.ConnectorGateway/Capture"}
	return decodeAndRun(ctx, dec, interceptor, info, srv.(edgeServer).Capture)
}

func voidHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/connector.v1.ConnectorGateway/Void"}
	return decodeAndRun(ctx, dec, interceptor, info, srv.(edgeServer).Void)
}

func psyncHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/connector.v1.ConnectorGateway/PSync"}
	return decodeAndRun(ctx, dec, interceptor, info, srv.(edgeServer).PSync)
}

func refundHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/connector.v1.ConnectorGateway/Refund"}
	return decodeAndRun(ctx, dec, interceptor, info, srv.(edgeServer).Refund)
}

func rsyncHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/connector.v1.ConnectorGateway/RSync"}
	return decodeAndRun(ctx, dec, interceptor, info, srv.(edgeServer).RSync)
}

func setupMandateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/connector.v1.ConnectorGateway/SetupMandate"}
	return decodeAndRun(ctx, dec, interceptor, info, srv.(edgeServer).SetupMandate)
}

func createOrderHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/connector.v1.ConnectorGateway/CreateOrder"}
	return decodeAndRun(ctx, dec, interceptor, info, srv.(edgeServer).CreateOrder)
}

func acceptDisputeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/connector.v1.ConnectorGateway/AcceptDispute"}
	return decodeAndRun(ctx, dec, interceptor, info, srv.(edgeServer).AcceptDispute)
}

func submitEvidenceHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/connector.v1.ConnectorGateway/SubmitEvidence"}
	return decodeAndRun(ctx, dec, interceptor, info, srv.(edgeServer).SubmitEvidence)
}

func defendDisputeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/connector.v1.ConnectorGateway/DefendDispute"}
	return decodeAndRun(ctx, dec, interceptor, info, srv.(edgeServer).DefendDispute)
}
