package grpc

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"connector-service/internal/connectorerr"
	"connector-service/internal/logging"
)

// recoveryInterceptor converts a panic inside a handler into
// ResponseHandlingFailed instead of crashing the process, per spec §7
// ("the engine never panics; a bug that would cause a panic is
// escalated to ResponseHandlingFailed").
func recoveryInterceptor(ctx context.Context, req any, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error("panic in unary handler",
				zap.String("method", info.FullMethod),
				zap.Any("panic", r),
			)
			cerr := connectorerr.ResponseHandlingFailed(fmt.Errorf("%v", r))
			err = status.Error(cerr.GRPCCode(), cerr.Error())
		}
	}()
	return handler(ctx, req)
}

// loggingInterceptor emits one structured log line per unary call.
func loggingInterceptor(ctx context.Context, req any, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (any, error) {
	logger := logging.FromContext(ctx)
	resp, err := handler(ctx, req)
	if err != nil {
		st, _ := status.FromError(err)
		logger.Warn("rpc failed",
			zap.String("method", info.FullMethod),
			zap.String("code", st.Code().String()),
			zap.String("message", st.Message()),
		)
	} else {
		logger.Info("rpc completed", zap.String("method", info.FullMethod))
	}
	return resp, err
}

// errorMappingInterceptor converts a *connectorerr.Error returned by a
// handler into a gRPC status using the fixed Kind -> codes.Code table.
// The Edge handlers already convert their own errors through
// toConnectorErr (same table, via Error.GRPCCode), so this catches any
// *connectorerr.Error a handler returns unconverted.
func errorMappingInterceptor(ctx context.Context, req any, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err == nil {
		return resp, nil
	}
	var cerr *connectorerr.Error
	if asConnectorError(err, &cerr) {
		return resp, status.Error(cerr.GRPCCode(), cerr.Error())
	}
	return resp, status.Error(codes.Internal, err.Error())
}

func asConnectorError(err error, target **connectorerr.Error) bool {
	if ce, ok := err.(*connectorerr.Error); ok {
		*target = ce
		return true
	}
	return false
}
