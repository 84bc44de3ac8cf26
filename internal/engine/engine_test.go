package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"connector-service/internal/connector"
	"connector-service/internal/connectorerr"
	"connector-service/internal/flow"
)

// stubIntegration implements connector.AuthorizeConnector against a
// configurable target URL, letting Execute's full step order run
// against an httptest.Server without a real gateway.
type stubIntegration struct {
	baseURL string

	handleSuccessErr *connectorerr.Error
	preprocessErr    *connectorerr.Error
}

func (s stubIntegration) BuildHeaders(rd *connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]) ([]connector.Header, *connectorerr.Error) {
	return []connector.Header{{Name: "X-Test", Value: "1"}}, nil
}

func (s stubIntegration) ContentType() string { return "application/json" }

func (s stubIntegration) HTTPMethod() string { return http.MethodPost }

func (s stubIntegration) URL(rd *connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]) (string, *connectorerr.Error) {
	return s.baseURL + "/payments", nil
}

func (s stubIntegration) Body(rd *connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]) (*connector.Body, *connectorerr.Error) {
	return &connector.Body{Kind: connector.BodyJSON, JSON: map[string]any{"amount": 500}}, nil
}

func (s stubIntegration) PreprocessResponse(raw []byte, rd *connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]) ([]byte, *connectorerr.Error) {
	if s.preprocessErr != nil {
		return nil, s.preprocessErr
	}
	return raw, nil
}

func (s stubIntegration) HandleSuccess(rd *connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData], parsed []byte, httpStatus int) *connectorerr.Error {
	if s.handleSuccessErr != nil {
		return s.handleSuccessErr
	}
	var body struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(parsed, &body); err != nil {
		return connectorerr.ResponseHandlingFailed(err)
	}
	rd.ResourceCommon.Status = connector.Charged
	rd.Response = connector.Ok(connector.PaymentsResponseData{ResourceID: body.ID})
	return nil
}

func (s stubIntegration) HandleError(raw []byte, httpStatus int) *connector.ErrorResponse {
	return &connector.ErrorResponse{StatusCode: httpStatus, Code: "gateway_declined", Message: string(raw)}
}

func (s stubIntegration) Handle5xx(raw []byte, httpStatus int) *connector.ErrorResponse {
	return &connector.ErrorResponse{StatusCode: httpStatus, Code: "gateway_unavailable", Message: string(raw)}
}

func newTestEngine() *Engine {
	return New(ProxyConfig{}, 5*time.Second, zap.NewNop())
}

func TestExecute_SuccessPopulatesResponseAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.Header.Get("X-Test"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"pay_123"}`))
	}))
	defer srv.Close()

	eng := newTestEngine()
	integ := stubIntegration{baseURL: srv.URL}
	var rd connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]

	cerr := Execute[flow.Authorize](context.Background(), eng, integ, &rd, CallContext{GatewayID: "stub", FlowName: "authorize"})
	require.Nil(t, cerr)

	resp, ok := rd.Response.Unwrap()
	require.True(t, ok)
	assert.Equal(t, "pay_123", resp.ResourceID)
	assert.Equal(t, connector.Charged, rd.ResourceCommon.Status)
}

func TestExecute_4xxResponseNormalizedAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":"insufficient_funds"}`))
	}))
	defer srv.Close()

	eng := newTestEngine()
	integ := stubIntegration{baseURL: srv.URL}
	var rd connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]

	cerr := Execute[flow.Authorize](context.Background(), eng, integ, &rd, CallContext{GatewayID: "stub", FlowName: "authorize"})
	require.NotNil(t, cerr)
	assert.Equal(t, connectorerr.KindProcessingStepFailed, cerr.Kind)

	er, ok := rd.Response.UnwrapErr()
	require.True(t, ok)
	assert.Equal(t, "gateway_declined", er.Code)
	assert.Equal(t, http.StatusPaymentRequired, er.StatusCode)
}

func TestExecute_5xxResponseNormalizedAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream down`))
	}))
	defer srv.Close()

	eng := newTestEngine()
	integ := stubIntegration{baseURL: srv.URL}
	var rd connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]

	cerr := Execute[flow.Authorize](context.Background(), eng, integ, &rd, CallContext{GatewayID: "stub", FlowName: "authorize"})
	require.NotNil(t, cerr)

	er, ok := rd.Response.UnwrapErr()
	require.True(t, ok)
	assert.Equal(t, "gateway_unavailable", er.Code)
}

func TestExecute_PreprocessFailureShortCircuitsSuccessHandling(t *testing.T) {
	eng := newTestEngine()
	integ := stubIntegration{baseURL: ""}
	var rd connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	// An empty base URL still produces a syntactically valid (relative)
	// URL, so force the failure through PreprocessResponse instead: set up a
	// real server and check preprocessErr short-circuits before the
	// server ever needs to be asked for a body.
	integ.baseURL = srv.URL
	integ.preprocessErr = connectorerr.ResponseHandlingFailed(nil)

	cerr := Execute[flow.Authorize](context.Background(), eng, integ, &rd, CallContext{GatewayID: "stub", FlowName: "authorize"})
	require.NotNil(t, cerr)
	assert.True(t, called, "the HTTP call itself still happens; only success handling short-circuits")

	_, ok := rd.Response.UnwrapErr()
	assert.True(t, ok)
}

func TestExecute_TransportErrorClassifiedAsConnectionClosed(t *testing.T) {
	eng := newTestEngine()
	integ := stubIntegration{baseURL: "http://127.0.0.1:1"} // nothing listens here
	var rd connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]

	cerr := Execute[flow.Authorize](context.Background(), eng, integ, &rd, CallContext{GatewayID: "stub", FlowName: "authorize"})
	require.NotNil(t, cerr)
	assert.Equal(t, connectorerr.KindConnectionClosed, cerr.Kind)

	_, ok := rd.Response.UnwrapErr()
	assert.True(t, ok)
}

func TestExecute_HandleSuccessErrorIsPropagated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"pay_123"}`))
	}))
	defer srv.Close()

	eng := newTestEngine()
	integ := stubIntegration{baseURL: srv.URL, handleSuccessErr: connectorerr.ResponseHandlingFailed(nil)}
	var rd connector.RouterData[flow.Authorize, connector.PaymentFlowData, connector.PaymentsAuthorizeData, connector.PaymentsResponseData]

	cerr := Execute[flow.Authorize](context.Background(), eng, integ, &rd, CallContext{GatewayID: "stub", FlowName: "authorize"})
	require.NotNil(t, cerr)

	_, ok := rd.Response.UnwrapErr()
	assert.True(t, ok)
}
