package connector

import (
	"time"

	"connector-service/internal/connectorerr"
	"connector-service/internal/flow"
)

// Result holds exactly one of a success value or an ErrorResponse. The
// zero Result is invalid; always construct via Ok or ErrResult so the
// carrier well-formedness invariant (spec §3, §8.1) holds by
// construction rather than by convention.
type Result[T any] struct {
	ok     T
	err    *ErrorResponse
	isErr  bool
	filled bool
}

// Ok wraps a successful response payload.
func Ok[T any](v T) Result[T] {
	return Result[T]{ok: v, filled: true}
}

// ErrResult wraps a normalized error response.
func ErrResult[T any](e *ErrorResponse) Result[T] {
	return Result[T]{err: e, isErr: true, filled: true}
}

// IsErr reports whether this Result holds an ErrorResponse.
func (r Result[T]) IsErr() bool { return r.filled && r.isErr }

// IsOk reports whether this Result holds a success value. A Result
// that was never assigned (the zero value) is neither Ok nor Err; only
// a carrier whose response has been set by the engine is well-formed.
func (r Result[T]) IsOk() bool { return r.filled && !r.isErr }

// Filled reports whether the Result has been assigned at all, i.e.
// whether the carrier's well-formedness invariant currently holds.
func (r Result[T]) Filled() bool { return r.filled }

// Unwrap returns the success value and true, or the zero value and
// false if this Result holds an error.
func (r Result[T]) Unwrap() (T, bool) {
	return r.ok, r.IsOk()
}

// UnwrapErr returns the ErrorResponse and true, or nil and false if
// this Result holds a success value.
func (r Result[T]) UnwrapErr() (*ErrorResponse, bool) {
	return r.err, r.IsErr()
}

// AccessToken is an optional OAuth-style bearer token carried on the
// carrier for gateways whose build_headers step needs a previously
// fetched token rather than re-deriving credentials per call.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the token is already past its expiry, with no
// buffer applied; callers needing a safety margin should compare
// against time.Now().Add(buffer) instead.
func (t AccessToken) Expired(now time.Time) bool {
	return t.Token == "" || !now.Before(t.ExpiresAt)
}

// RouterData is the generic carrier record threaded through the engine
// for one call. F is the phantom flow tag; it is never stored, only
// used to distinguish RouterData[flow.Authorize, ...] from
// RouterData[flow.Capture, ...] at the type level. RC is the
// resource-common shape for the flow's family (PaymentFlowData,
// RefundFlowData, or DisputeFlowData); Req and Resp are the flow's
// payload pair.
//
// A RouterData is exclusively owned by the call that created it: it is
// never shared across goroutines, and the engine is the only component
// permitted to mutate Response and ResourceCommon.Status once the
// carrier has been built by the edge handler.
type RouterData[F flow.Flow, RC any, Req any, Resp any] struct {
	ResourceCommon RC
	ConnectorAuth  ConnectorAuth
	Request        Req
	Response       Result[Resp]
	AccessToken    *AccessToken
}

// SetError fills Response with a normalized ErrorResponse built from a
// *connectorerr.Error. The engine uses it for build, transport and
// response-handling failures, so the returned ConnectorError and the
// carrier's error branch agree; on a 4xx/5xx the carrier instead holds
// the integration's HandleError/Handle5xx result.
func SetError[F flow.Flow, RC any, Req any, Resp any](rd *RouterData[F, RC, Req, Resp], err *connectorerr.Error) {
	er := &ErrorResponse{
		StatusCode:    err.HTTPStatus,
		Code:          string(err.Kind),
		Message:       err.Message,
		AttemptStatus: Failure,
	}
	if reason, ok := err.Details["reason"]; ok {
		if s, ok := reason.(string); ok {
			er.Reason = s
		}
	}
	if code, ok := err.Details["connector_code"]; ok {
		if s, ok := code.(string); ok {
			er.Code = s
		}
	}
	rd.Response = ErrResult[Resp](er)
}
