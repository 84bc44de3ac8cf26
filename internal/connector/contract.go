package connector

import (
	"net/http"

	"connector-service/internal/connectorerr"
	"connector-service/internal/flow"
	"connector-service/internal/secret"
)

// Header is a single outgoing HTTP header. Value is sent as-is, so a
// credential header carries the real secret; the engine masks such
// headers (MaskHeaders) before logging them. build_headers
// implementations obtain raw secret material only through
// secret.Value.Expose.
type Header struct {
	Name  string
	Value string
}

// BodyKind is the closed set of wire encodings a connector may produce
// for a request body.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyJSON
	BodyXML
	BodyFormURLEncoded
	BodyRaw
)

// Body is the encoded request body plus the encoding that produced it,
// so the engine can set Content-Type consistently with what was
// actually sent (spec §8.7, content-type fidelity).
type Body struct {
	Kind BodyKind
	JSON any
	XML  any
	Form map[string][]string
	Raw  []byte
}

// ConnectorIntegration is the flow-parameterized polymorphic contract
// every gateway implements once per flow it supports. F is the phantom
// flow tag, RC the resource-common shape for F's family, and Req/Resp
// the flow's payload pair. The engine (internal/engine) is the only
// caller of these methods; gateway packages only ever implement them.
type ConnectorIntegration[F flow.Flow, RC any, Req any, Resp any] interface {
	// BuildHeaders derives content-type plus authentication headers
	// from ConnectorAuth and, if present, AccessToken. May perform a
	// token-fetch sub-call (the one suspension point inside this step,
	// spec §5).
	BuildHeaders(rd *RouterData[F, RC, Req, Resp]) ([]Header, *connectorerr.Error)

	// ContentType is the media type the engine sends as Content-Type
	// for a BodyRaw body; JSON, XML and form bodies get the
	// Content-Type of their BodyKind instead.
	ContentType() string

	// HTTPMethod is the verb used for this flow.
	HTTPMethod() string

	// URL composes the absolute request URL from the gateway's base URL
	// and this flow's path, incorporating a prior connector transaction
	// id where the flow requires one.
	URL(rd *RouterData[F, RC, Req, Resp]) (string, *connectorerr.Error)

	// Body encodes the outgoing payload, or returns a nil *Body for
	// flows that legitimately send no body (e.g. GET syncs).
	Body(rd *RouterData[F, RC, Req, Resp]) (*Body, *connectorerr.Error)

	// PreprocessResponse canonicalizes the raw wire payload (e.g. XML
	// to JSON) before deserialization. Identity by default.
	PreprocessResponse(raw []byte, rd *RouterData[F, RC, Req, Resp]) ([]byte, *connectorerr.Error)

	// HandleSuccess maps a parsed, connector-native success response
	// into rd.Response and updates rd.ResourceCommon's status.
	HandleSuccess(rd *RouterData[F, RC, Req, Resp], parsed []byte, httpStatus int) *connectorerr.Error

	// HandleError normalizes a 4xx response.
	HandleError(raw []byte, httpStatus int) *ErrorResponse

	// Handle5xx normalizes a 5xx response. Implementations that have no
	// gateway-specific 5xx shape should delegate to HandleError.
	Handle5xx(raw []byte, httpStatus int) *ErrorResponse
}

// Per-flow named capabilities. Each embeds ConnectorIntegration
// instantiated at the concrete resource-common/request/response types
// for its flow, so gateway packages and the registry can depend on a
// narrow, self-documenting interface instead of the raw generic one.

type AuthorizeConnector interface {
	ConnectorIntegration[flow.Authorize, PaymentFlowData, PaymentsAuthorizeData, PaymentsResponseData]
}

type CaptureConnector interface {
	ConnectorIntegration[flow.Capture, PaymentFlowData, PaymentsCaptureData, PaymentsResponseData]
}

type VoidConnector interface {
	ConnectorIntegration[flow.Void, PaymentFlowData, PaymentsVoidData, PaymentsResponseData]
}

type PSyncConnector interface {
	ConnectorIntegration[flow.PSync, PaymentFlowData, PaymentsSyncData, PaymentsResponseData]
}

type RefundConnector interface {
	ConnectorIntegration[flow.Refund, RefundFlowData, RefundsData, RefundsResponseData]
}

type RSyncConnector interface {
	ConnectorIntegration[flow.RSync, RefundFlowData, RefundSyncData, RefundsResponseData]
}

type SetupMandateConnector interface {
	ConnectorIntegration[flow.SetupMandate, PaymentFlowData, SetupMandateData, PaymentsResponseData]
}

type CreateOrderConnector interface {
	ConnectorIntegration[flow.CreateOrder, PaymentFlowData, CreateOrderData, CreateOrderResponseData]
}

type AcceptDisputeConnector interface {
	ConnectorIntegration[flow.AcceptDispute, DisputeFlowData, AcceptDisputeData, DisputeResponseData]
}

type SubmitEvidenceConnector interface {
	ConnectorIntegration[flow.SubmitEvidence, DisputeFlowData, SubmitEvidenceData, DisputeResponseData]
}

type DefendDisputeConnector interface {
	ConnectorIntegration[flow.DefendDispute, DisputeFlowData, DefendDisputeData, DisputeResponseData]
}

// IncomingWebhook is kept as a separate interface because event-kind
// discrimination must happen before any deserialization step could
// touch untrusted bytes; VerifySource therefore operates on the raw
// body, never on a parsed structure.
type IncomingWebhook interface {
	// VerifySource validates the webhook's signature/MAC against the
	// configured per-merchant secret. Must run, and must return true,
	// before any other method on this interface is called.
	VerifySource(body []byte, headers http.Header, sharedSecret secret.Value[string]) bool

	// EventKind discriminates the event class from headers/body without
	// fully deserializing the payload.
	EventKind(body []byte, headers http.Header) EventKind

	NormalizePaymentEvent(body []byte, headers http.Header) (WebhookDetails, *connectorerr.Error)
	NormalizeRefundEvent(body []byte, headers http.Header) (RefundWebhookDetails, *connectorerr.Error)
	NormalizeDisputeEvent(body []byte, headers http.Header) (DisputeWebhookDetails, *connectorerr.Error)
}

// ConnectorService is the aggregated "supports every flow" capability a
// registry entry provides (spec §4.1's "intersection of all per-flow
// instantiations"). It is a struct of per-flow facets rather than a
// single embedding interface: every per-flow interface declares methods
// under the same names (BuildHeaders, URL, Body, ...), so a single Go
// type cannot implement more than one instantiation at once — Go has no
// method overloading. Bundling one facet value per field sidesteps that
// while keeping exactly the same capability: a registry entry is one
// handle carrying every flow, heterogeneous across gateways, selected in
// O(1). A gateway that does not support a given flow sets that field to
// the matching Unsupported* value (notimplemented.go), so the registry
// stays closed and typed while unsupported flows fail at call time, not
// at compile time (spec §9).
type ConnectorService struct {
	Authorize      AuthorizeConnector
	Capture        CaptureConnector
	Void           VoidConnector
	PSync          PSyncConnector
	Refund         RefundConnector
	RSync          RSyncConnector
	SetupMandate   SetupMandateConnector
	CreateOrder    CreateOrderConnector
	AcceptDispute  AcceptDisputeConnector
	SubmitEvidence SubmitEvidenceConnector
	DefendDispute  DefendDisputeConnector
	Webhook        IncomingWebhook
}
