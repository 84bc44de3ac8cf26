package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"connector-service/internal/connector"
	"connector-service/internal/secret"
)

// callIdentity is what every edge handler needs before it can touch the
// registry: which connector to dispatch to, and the credential the
// caller presented for it.
type callIdentity struct {
	ConnectorID string
	Auth        connector.ConnectorAuth
}

// identityFromContext extracts the x-connector/x-auth/x-api-key/x-key1/
// x-api-secret metadata headers (spec §8.5: "the only way a caller
// chooses the gateway — the wire payload itself is gateway-agnostic")
// and builds the matching ConnectorAuth variant for the scheme named by
// x-auth.
func identityFromContext(ctx context.Context) (callIdentity, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return callIdentity{}, status.Error(codes.InvalidArgument, "missing call metadata")
	}

	connectorID := firstValue(md, "x-connector")
	if connectorID == "" {
		return callIdentity{}, status.Error(codes.InvalidArgument, "x-connector metadata header is required")
	}

	scheme := connector.Scheme(firstValue(md, "x-auth"))
	apiKey := secret.New(firstValue(md, "x-api-key"))
	key1 := secret.New(firstValue(md, "x-key1"))
	apiSecret := secret.New(firstValue(md, "x-api-secret"))

	var auth connector.ConnectorAuth
	switch scheme {
	case connector.SchemeHeaderKey:
		auth = connector.HeaderKeyAuth{APIKey: apiKey}
	case connector.SchemeBodyKey:
		auth = connector.BodyKeyAuth{APIKey: apiKey, Key1: key1}
	case connector.SchemeSignatureKey:
		auth = connector.SignatureKeyAuth{APIKey: apiKey, Key1: key1, APISecret: apiSecret}
	case connector.SchemeMultiAuth:
		auth = connector.MultiAuth{Fields: map[string]secret.Value[string]{
			"api_key":    apiKey,
			"key1":       key1,
			"api_secret": apiSecret,
		}}
	case connector.SchemeNoKey:
		auth = connector.NoKeyAuth{}
	default:
		return callIdentity{}, status.Errorf(codes.InvalidArgument, "unrecognized x-auth scheme %q", scheme)
	}

	return callIdentity{ConnectorID: connectorID, Auth: auth}, nil
}

func firstValue(md metadata.MD, key string) string {
	vs := md.Get(key)
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}
