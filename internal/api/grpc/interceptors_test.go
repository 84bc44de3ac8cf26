package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"connector-service/internal/connectorerr"
)

func unaryInfo(method string) *grpclib.UnaryServerInfo {
	return &grpclib.UnaryServerInfo{FullMethod: method}
}

func TestRecoveryInterceptor_PassesThroughNormalCall(t *testing.T) {
	handler := func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	}
	resp, err := recoveryInterceptor(context.Background(), nil, unaryInfo("/Edge/Authorize"), handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestRecoveryInterceptor_ConvertsPanicToResponseHandlingFailed(t *testing.T) {
	handler := func(ctx context.Context, req any) (any, error) {
		panic("nil pointer somewhere")
	}
	_, err := recoveryInterceptor(context.Background(), nil, unaryInfo("/Edge/Authorize"), handler)
	require.Error(t, err)
	assert.Equal(t, connectorerr.ResponseHandlingFailed(nil).GRPCCode(), status.Code(err))
}

func TestLoggingInterceptor_PassesThroughResultAndError(t *testing.T) {
	wantErr := errors.New("boom")
	handler := func(ctx context.Context, req any) (any, error) {
		return nil, wantErr
	}
	_, err := loggingInterceptor(context.Background(), nil, unaryInfo("/Edge/Authorize"), handler)
	assert.Equal(t, wantErr, err)
}

func TestErrorMappingInterceptor_NilErrorPassesThrough(t *testing.T) {
	handler := func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	}
	resp, err := errorMappingInterceptor(context.Background(), nil, unaryInfo("/Edge/Authorize"), handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestErrorMappingInterceptor_ConnectorErrorMapsToItsGRPCCode(t *testing.T) {
	cerr := connectorerr.InvalidConnectorName("bogus")
	handler := func(ctx context.Context, req any) (any, error) {
		return nil, cerr
	}
	_, err := errorMappingInterceptor(context.Background(), nil, unaryInfo("/Edge/Authorize"), handler)
	require.Error(t, err)
	assert.Equal(t, cerr.GRPCCode(), status.Code(err))
}

func TestErrorMappingInterceptor_PlainErrorMapsToInternal(t *testing.T) {
	handler := func(ctx context.Context, req any) (any, error) {
		return nil, errors.New("boom")
	}
	_, err := errorMappingInterceptor(context.Background(), nil, unaryInfo("/Edge/Authorize"), handler)
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}
