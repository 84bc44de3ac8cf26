package razorpay

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"connector-service/internal/connector"
	"connector-service/internal/connectorerr"
	"connector-service/internal/engine"
	"connector-service/internal/flow"
	"connector-service/internal/secret"
)

func testAuth() connector.SignatureKeyAuth {
	return connector.SignatureKeyAuth{
		APIKey:    secret.New("key_test"),
		APISecret: secret.New("secret_test"),
	}
}

func TestBasicAuthHeaders_EncodesKeyAndSecret(t *testing.T) {
	headers, cerr := basicAuthHeaders(testAuth())
	require.Nil(t, cerr)

	var authHeader string
	for _, h := range headers {
		if h.Name == "Authorization" {
			authHeader = h.Value
		}
	}
	require.NotEmpty(t, authHeader)

	decoded, err := base64.StdEncoding.DecodeString(authHeader[len("Basic "):])
	require.NoError(t, err)
	assert.Equal(t, "key_test:secret_test", string(decoded))
}

func TestBasicAuthHeaders_RejectsWrongAuthType(t *testing.T) {
	_, cerr := basicAuthHeaders(connector.HeaderKeyAuth{APIKey: secret.New("k")})
	require.NotNil(t, cerr)
}

func TestMapAttemptStatus(t *testing.T) {
	tests := map[string]connector.AttemptStatus{
		"captured":   connector.Charged,
		"authorized": connector.Authorized,
		"failed":     connector.Failure,
		"refunded":   connector.AutoRefunded,
		"created":    connector.Pending,
		"bogus":      connector.Unresolved,
	}
	for native, want := range tests {
		assert.Equal(t, want, mapAttemptStatus(native), "native status %q", native)
	}
}

func TestMapRefundStatus(t *testing.T) {
	assert.Equal(t, connector.RefundSuccess, mapRefundStatus("processed"))
	assert.Equal(t, connector.RefundFailure, mapRefundStatus("failed"))
	assert.Equal(t, connector.RefundPending, mapRefundStatus("pending"))
}

func TestParseRazorpayError_ExtractsFields(t *testing.T) {
	raw := []byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"card declined","reason":"insufficient_funds"}}`)
	er := parseRazorpayError(raw, http.StatusBadRequest)
	assert.Equal(t, "BAD_REQUEST_ERROR", er.Code)
	assert.Equal(t, "card declined", er.Message)
	assert.Equal(t, "insufficient_funds", er.Reason)
}

func TestParseRazorpayError_MalformedBodyFallsBackToUnknown(t *testing.T) {
	er := parseRazorpayError([]byte(`not json`), http.StatusInternalServerError)
	assert.Equal(t, "unknown", er.Code)
}

func newTestEngine() *engine.Engine {
	return engine.New(engine.ProxyConfig{}, 5*time.Second, zap.NewNop())
}

func TestAuthorize_SuccessUpdatesStatusAndResourceID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"pay_abc","status":"captured"}`))
	}))
	defer srv.Close()

	svc := New(connector.GatewayConfig{BaseURL: srv.URL})
	rd := &connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]{
		ConnectorAuth: testAuth(),
		Request: connector.PaymentsAuthorizeData{
			AmountMinorUnits: 500,
			Currency:         "INR",
			PaymentMethod: connector.PaymentMethodData{
				Kind: connector.PaymentMethodCard,
				Card: &connector.Card{Number: secret.New("4242424242424242"), CVV: secret.New("123")},
			},
		},
	}

	cerr := engine.Execute[flow.Authorize](context.Background(), newTestEngine(), svc.Authorize, rd, engine.CallContext{GatewayID: "razorpay", FlowName: "authorize"})
	require.Nil(t, cerr)

	resp, ok := rd.Response.Unwrap()
	require.True(t, ok)
	assert.Equal(t, "pay_abc", resp.ResourceID)
	assert.Equal(t, connector.Charged, rd.ResourceCommon.Status)
}

func TestAuthorize_NonCardPaymentMethodUnsupported(t *testing.T) {
	svc := New(connector.GatewayConfig{BaseURL: "http://example.invalid"})
	rd := &connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]{
		ConnectorAuth: testAuth(),
		Request: connector.PaymentsAuthorizeData{
			PaymentMethod: connector.PaymentMethodData{Kind: connector.PaymentMethodUPI},
		},
	}

	_, cerr := svc.Authorize.Body(rd)
	require.NotNil(t, cerr)
	assert.Equal(t, connectorerr.KindNotImplemented, cerr.Kind)
}

func TestPSync_MissingTransactionIDFailsBeforeCall(t *testing.T) {
	svc := New(connector.GatewayConfig{BaseURL: "http://example.invalid"})
	rd := &connector.RouterData[flow.PSync, connector.PaymentFlowData, connector.PaymentsSyncData, connector.PaymentsResponseData]{
		ConnectorAuth: testAuth(),
	}

	_, cerr := svc.PSync.URL(rd)
	require.NotNil(t, cerr)
}

func TestRefund_SuccessWithoutStatusDefaultsToSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"rfnd_1"}`))
	}))
	defer srv.Close()

	svc := New(connector.GatewayConfig{BaseURL: srv.URL})
	rd := &connector.RouterData[flow.Refund, connector.RefundFlowData, connector.RefundsData, connector.RefundsResponseData]{
		ConnectorAuth: testAuth(),
		Request:       connector.RefundsData{ConnectorTransactionID: "pay_abc", AmountMinorUnits: 500},
	}

	cerr := engine.Execute[flow.Refund](context.Background(), newTestEngine(), svc.Refund, rd, engine.CallContext{GatewayID: "razorpay", FlowName: "refund"})
	require.Nil(t, cerr)

	resp, ok := rd.Response.Unwrap()
	require.True(t, ok)
	assert.Equal(t, "rfnd_1", resp.ConnectorRefundID)
	assert.Equal(t, connector.RefundSuccess, resp.Status)
}

func TestRSync_ErrorResponseNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","description":"no such refund"}}`))
	}))
	defer srv.Close()

	svc := New(connector.GatewayConfig{BaseURL: srv.URL})
	rd := &connector.RouterData[flow.RSync, connector.RefundFlowData, connector.RefundSyncData, connector.RefundsResponseData]{
		ConnectorAuth: testAuth(),
		Request:       connector.RefundSyncData{ConnectorRefundID: "rfnd_1"},
	}

	cerr := engine.Execute[flow.RSync](context.Background(), newTestEngine(), svc.RSync, rd, engine.CallContext{GatewayID: "razorpay", FlowName: "rsync"})
	require.NotNil(t, cerr)

	er, ok := rd.Response.UnwrapErr()
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", er.Code)
}
