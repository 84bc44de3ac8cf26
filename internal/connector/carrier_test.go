package connector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"connector-service/internal/connectorerr"
	"connector-service/internal/flow"
)

func TestResult_ZeroValueIsUnfilled(t *testing.T) {
	var r Result[int]
	assert.False(t, r.Filled())
	assert.False(t, r.IsOk())
	assert.False(t, r.IsErr())
}

func TestResult_Ok(t *testing.T) {
	r := Ok(42)
	assert.True(t, r.Filled())
	assert.True(t, r.IsOk())
	assert.False(t, r.IsErr())

	v, ok := r.Unwrap()
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = r.UnwrapErr()
	assert.False(t, ok)
}

func TestResult_Err(t *testing.T) {
	er := &ErrorResponse{Code: "card_declined"}
	r := ErrResult[int](er)
	assert.True(t, r.Filled())
	assert.True(t, r.IsErr())
	assert.False(t, r.IsOk())

	got, ok := r.UnwrapErr()
	assert.True(t, ok)
	assert.Same(t, er, got)
}

func TestAccessToken_Expired(t *testing.T) {
	now := time.Now()

	assert.True(t, AccessToken{}.Expired(now), "zero-value token is always expired")
	assert.True(t, AccessToken{Token: "tok", ExpiresAt: now.Add(-time.Minute)}.Expired(now))
	assert.False(t, AccessToken{Token: "tok", ExpiresAt: now.Add(time.Minute)}.Expired(now))
}

func TestSetError_FillsResponseFromConnectorError(t *testing.T) {
	var rd RouterData[flow.Authorize, PaymentFlowData, PaymentsAuthorizeData, PaymentsResponseData]

	err := connectorerr.ProcessingStepFailed(402, "card_declined", "insufficient funds", "do_not_honor")
	SetError(&rd, err)

	assert.True(t, rd.Response.IsErr())
	er, ok := rd.Response.UnwrapErr()
	assert.True(t, ok)
	assert.Equal(t, 402, er.StatusCode)
	assert.Equal(t, "card_declined", er.Code)
	assert.Equal(t, "card_declined: insufficient funds", er.Message)
	assert.Equal(t, "do_not_honor", er.Reason)
	assert.Equal(t, Failure, er.AttemptStatus)
}
