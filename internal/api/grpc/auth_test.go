package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"connector-service/internal/connector"
)

func mdContext(pairs ...string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(pairs...))
}

func TestIdentityFromContext_MissingMetadataFails(t *testing.T) {
	_, err := identityFromContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestIdentityFromContext_MissingConnectorHeaderFails(t *testing.T) {
	ctx := mdContext("x-auth", "header-key")
	_, err := identityFromContext(ctx)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestIdentityFromContext_UnrecognizedSchemeFails(t *testing.T) {
	ctx := mdContext("x-connector", "razorpay", "x-auth", "bogus-scheme")
	_, err := identityFromContext(ctx)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestIdentityFromContext_HeaderKeyScheme(t *testing.T) {
	ctx := mdContext("x-connector", "razorpay", "x-auth", "header-key", "x-api-key", "key123")
	id, err := identityFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "razorpay", id.ConnectorID)

	auth, ok := id.Auth.(connector.HeaderKeyAuth)
	require.True(t, ok)
	assert.Equal(t, "key123", auth.APIKey.Expose())
}

func TestIdentityFromContext_SignatureKeyScheme(t *testing.T) {
	ctx := mdContext(
		"x-connector", "razorpay",
		"x-auth", "signature-key",
		"x-api-key", "key1",
		"x-key1", "key2",
		"x-api-secret", "secret1",
	)
	id, err := identityFromContext(ctx)
	require.NoError(t, err)

	auth, ok := id.Auth.(connector.SignatureKeyAuth)
	require.True(t, ok)
	assert.Equal(t, "key1", auth.APIKey.Expose())
	assert.Equal(t, "key2", auth.Key1.Expose())
	assert.Equal(t, "secret1", auth.APISecret.Expose())
}

func TestIdentityFromContext_NoKeyScheme(t *testing.T) {
	ctx := mdContext("x-connector", "sandbox", "x-auth", "no-key")
	id, err := identityFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, connector.NoKeyAuth{}, id.Auth)
}

func TestIdentityFromContext_MultiAuthScheme(t *testing.T) {
	ctx := mdContext(
		"x-connector", "paypal",
		"x-auth", "multi-auth",
		"x-api-key", "k",
		"x-key1", "k1",
		"x-api-secret", "s",
	)
	id, err := identityFromContext(ctx)
	require.NoError(t, err)

	auth, ok := id.Auth.(connector.MultiAuth)
	require.True(t, ok)
	assert.Equal(t, "k", auth.Fields["api_key"].Expose())
}
