// Package connectorerr implements the closed ConnectorError taxonomy:
// input errors, transport errors, deserialization errors, and gateway
// errors, each carrying enough context for the edge to build both a
// gRPC status and a normalized error envelope without re-deriving
// anything from the originating step.
package connectorerr

import (
	"fmt"

	"google.golang.org/grpc/codes"
)

// Kind is one member of the closed ConnectorError taxonomy.
type Kind string

const (
	KindInvalidConnectorName           Kind = "invalid_connector_name"
	KindInvalidConnectorAuthentication Kind = "invalid_connector_authentication"
	KindMissingRequiredField           Kind = "missing_required_field"
	KindInvalidDataFormat              Kind = "invalid_data_format"
	KindMissingConnectorTransactionID  Kind = "missing_connector_transaction_id"
	KindNotImplemented                 Kind = "not_implemented"

	KindRequestTimeoutReceived Kind = "request_timeout_received"
	KindConnectionClosed      Kind = "connection_closed"
	KindRequestEncodingFailed Kind = "request_encoding_failed"

	KindResponseDeserializationFailed  Kind = "response_deserialization_failed"
	KindResponseHandlingFailed         Kind = "response_handling_failed"
	KindWebhookBodyDecodingFailed      Kind = "webhook_body_decoding_failed"
	KindWebhookSignatureNotFound       Kind = "webhook_signature_not_found"
	KindWebhookSourceVerificationFailed Kind = "webhook_source_verification_failed"

	KindProcessingStepFailed Kind = "processing_step_failed"
)

// grpcCodeByKind implements the fixed ConnectorError -> gRPC status
// table, read only through Error.GRPCCode, which the gRPC edge handlers
// (toConnectorErr) and the edge's error-mapping interceptor both call.
var grpcCodeByKind = map[Kind]codes.Code{
	KindInvalidConnectorName:           codes.InvalidArgument,
	KindInvalidConnectorAuthentication: codes.InvalidArgument,
	KindMissingRequiredField:           codes.InvalidArgument,
	KindInvalidDataFormat:              codes.InvalidArgument,
	KindMissingConnectorTransactionID:  codes.InvalidArgument,
	KindNotImplemented:                 codes.Unimplemented,

	KindRequestTimeoutReceived: codes.DeadlineExceeded,
	KindConnectionClosed:       codes.Unavailable,
	KindRequestEncodingFailed:  codes.Internal,

	KindResponseDeserializationFailed:  codes.Internal,
	KindResponseHandlingFailed:         codes.Internal,
	KindWebhookBodyDecodingFailed:      codes.Unauthenticated,
	KindWebhookSignatureNotFound:       codes.Unauthenticated,
	KindWebhookSourceVerificationFailed: codes.Unauthenticated,

	KindProcessingStepFailed: codes.Internal,
}

// Error is the single concrete error type behind every ConnectorError
// kind. Comparison with errors.Is is by Kind, not by pointer identity or
// message text, so callers can write errors.Is(err, connectorerr.NotImplemented("")).
type Error struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	Cause      error
	Details    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is compares by Kind so that errors.Is(err, connectorerr.InvalidConnectorAuthentication())
// matches any instance of that kind regardless of message or details.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithDetails attaches structured context (e.g. the gateway's own HTTP
// status for ProcessingStepFailed) and returns the same error for
// chaining at the construction site.
func (e *Error) WithDetails(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// GRPCCode returns the fixed gRPC status code for this error's kind.
func (e *Error) GRPCCode() codes.Code {
	if c, ok := grpcCodeByKind[e.Kind]; ok {
		return c
	}
	return codes.Internal
}

func newErr(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Input errors.

func InvalidConnectorName(name string) *Error {
	return newErr(KindInvalidConnectorName, "unknown connector %q", name)
}

func InvalidConnectorAuthentication(connector string) *Error {
	return newErr(KindInvalidConnectorAuthentication, "authentication scheme does not match connector %q", connector)
}

func MissingRequiredField(name string) *Error {
	return newErr(KindMissingRequiredField, "missing required field %q", name)
}

func InvalidDataFormat(name string) *Error {
	return newErr(KindInvalidDataFormat, "invalid data format for field %q", name)
}

func MissingConnectorTransactionID() *Error {
	return newErr(KindMissingConnectorTransactionID, "connector transaction id is required for this flow")
}

func NotImplemented(feature string) *Error {
	return newErr(KindNotImplemented, "%s is not implemented by this connector", feature)
}

// Transport errors.

func RequestTimeoutReceived(cause error) *Error {
	e := newErr(KindRequestTimeoutReceived, "request timed out")
	e.Cause = cause
	return e
}

func ConnectionClosed(cause error) *Error {
	e := newErr(KindConnectionClosed, "connection closed before a response was received")
	e.Cause = cause
	return e
}

func RequestEncodingFailed(cause error) *Error {
	e := newErr(KindRequestEncodingFailed, "failed to encode outgoing request")
	e.Cause = cause
	return e
}

// Deserialization errors.

func ResponseDeserializationFailed(cause error) *Error {
	e := newErr(KindResponseDeserializationFailed, "failed to deserialize connector response")
	e.Cause = cause
	return e
}

func ResponseHandlingFailed(cause error) *Error {
	e := newErr(KindResponseHandlingFailed, "unexpected failure while handling connector response")
	e.Cause = cause
	return e
}

func WebhookBodyDecodingFailed(cause error) *Error {
	e := newErr(KindWebhookBodyDecodingFailed, "failed to decode webhook body")
	e.Cause = cause
	return e
}

func WebhookSignatureNotFound() *Error {
	return newErr(KindWebhookSignatureNotFound, "webhook request carried no signature header")
}

func WebhookSourceVerificationFailed() *Error {
	return newErr(KindWebhookSourceVerificationFailed, "webhook signature verification failed")
}

// Gateway errors.

func ProcessingStepFailed(httpStatus int, code, message, reason string) *Error {
	e := newErr(KindProcessingStepFailed, "%s: %s", code, message)
	e.HTTPStatus = httpStatus
	e.WithDetails("connector_code", code)
	e.WithDetails("connector_message", message)
	if reason != "" {
		e.WithDetails("reason", reason)
	}
	return e
}
