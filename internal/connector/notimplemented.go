package connector

import (
	"net/http"

	"connector-service/internal/connectorerr"
	"connector-service/internal/flow"
	"connector-service/internal/secret"
)

// The Unsupported* types below let a gateway package implement only the
// flows it actually supports. Assigning the matching Unsupported value
// to every other ConnectorService field satisfies the struct at compile
// time; on an unsupported flow, URL, BuildHeaders and HandleSuccess
// return a NotImplemented error at call time (ContentType, HTTPMethod
// and PreprocessResponse return fixed defaults), per spec §9 ("implementations that do not support a
// flow yield a contract whose methods return NotImplemented(flow) at
// call time — never at compile time").

// UnsupportedAuthorize implements AuthorizeConnector by returning
// NotImplemented from URL, BuildHeaders and HandleSuccess.
type UnsupportedAuthorize struct{}

func (UnsupportedAuthorize) BuildHeaders(*RouterData[flow.Authorize, PaymentFlowData, PaymentsAuthorizeData, PaymentsResponseData]) ([]Header, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("authorize")
}
func (UnsupportedAuthorize) ContentType() string { return "application/json" }
func (UnsupportedAuthorize) HTTPMethod() string  { return http.MethodPost }
func (UnsupportedAuthorize) URL(*RouterData[flow.Authorize, PaymentFlowData, PaymentsAuthorizeData, PaymentsResponseData]) (string, *connectorerr.Error) {
	return "", connectorerr.NotImplemented("authorize")
}
func (UnsupportedAuthorize) Body(*RouterData[flow.Authorize, PaymentFlowData, PaymentsAuthorizeData, PaymentsResponseData]) (*Body, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("authorize")
}
func (UnsupportedAuthorize) PreprocessResponse(raw []byte, _ *RouterData[flow.Authorize, PaymentFlowData, PaymentsAuthorizeData, PaymentsResponseData]) ([]byte, *connectorerr.Error) {
	return raw, nil
}
func (UnsupportedAuthorize) HandleSuccess(*RouterData[flow.Authorize, PaymentFlowData, PaymentsAuthorizeData, PaymentsResponseData], []byte, int) *connectorerr.Error {
	return connectorerr.NotImplemented("authorize")
}
func (UnsupportedAuthorize) HandleError([]byte, int) *ErrorResponse {
	return &ErrorResponse{Code: string(connectorerr.KindNotImplemented), Message: "authorize not implemented"}
}
func (UnsupportedAuthorize) Handle5xx(raw []byte, status int) *ErrorResponse {
	return UnsupportedAuthorize{}.HandleError(raw, status)
}

// UnsupportedCapture implements CaptureConnector by returning
// NotImplemented from URL, BuildHeaders and HandleSuccess.
type UnsupportedCapture struct{}

func (UnsupportedCapture) BuildHeaders(*RouterData[flow.Capture, PaymentFlowData, PaymentsCaptureData, PaymentsResponseData]) ([]Header, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("capture")
}
func (UnsupportedCapture) ContentType() string { return "application/json" }
func (UnsupportedCapture) HTTPMethod() string  { return http.MethodPost }
func (UnsupportedCapture) URL(*RouterData[flow.Capture, PaymentFlowData, PaymentsCaptureData, PaymentsResponseData]) (string, *connectorerr.Error) {
	return "", connectorerr.NotImplemented("capture")
}
func (UnsupportedCapture) Body(*RouterData[flow.Capture, PaymentFlowData, PaymentsCaptureData, PaymentsResponseData]) (*Body, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("capture")
}
func (UnsupportedCapture) PreprocessResponse(raw []byte, _ *RouterData[flow.Capture, PaymentFlowData, PaymentsCaptureData, PaymentsResponseData]) ([]byte, *connectorerr.Error) {
	return raw, nil
}
func (UnsupportedCapture) HandleSuccess(*RouterData[flow.Capture, PaymentFlowData, PaymentsCaptureData, PaymentsResponseData], []byte, int) *connectorerr.Error {
	return connectorerr.NotImplemented("capture")
}
func (UnsupportedCapture) HandleError([]byte, int) *ErrorResponse {
	return &ErrorResponse{Code: string(connectorerr.KindNotImplemented), Message: "capture not implemented"}
}
func (UnsupportedCapture) Handle5xx(raw []byte, status int) *ErrorResponse {
	return UnsupportedCapture{}.HandleError(raw, status)
}

// UnsupportedVoid implements VoidConnector by returning NotImplemented
// from URL, BuildHeaders and HandleSuccess.
type UnsupportedVoid struct{}

func (UnsupportedVoid) BuildHeaders(*RouterData[flow.Void, PaymentFlowData, PaymentsVoidData, PaymentsResponseData]) ([]Header, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("void")
}
func (UnsupportedVoid) ContentType() string { return "application/json" }
func (UnsupportedVoid) HTTPMethod() string  { return http.MethodPost }
func (UnsupportedVoid) URL(*RouterData[flow.Void, PaymentFlowData, PaymentsVoidData, PaymentsResponseData]) (string, *connectorerr.Error) {
	return "", connectorerr.NotImplemented("void")
}
func (UnsupportedVoid) Body(*RouterData[flow.Void, PaymentFlowData, PaymentsVoidData, PaymentsResponseData]) (*Body, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("void")
}
func (UnsupportedVoid) PreprocessResponse(raw []byte, _ *RouterData[flow.Void, PaymentFlowData, PaymentsVoidData, PaymentsResponseData]) ([]byte, *connectorerr.Error) {
	return raw, nil
}
func (UnsupportedVoid) HandleSuccess(*RouterData[flow.Void, PaymentFlowData, PaymentsVoidData, PaymentsResponseData], []byte, int) *connectorerr.Error {
	return connectorerr.NotImplemented("void")
}
func (UnsupportedVoid) HandleError([]byte, int) *ErrorResponse {
	return &ErrorResponse{Code: string(connectorerr.KindNotImplemented), Message: "void not implemented"}
}
func (UnsupportedVoid) Handle5xx(raw []byte, status int) *ErrorResponse {
	return UnsupportedVoid{}.HandleError(raw, status)
}

// UnsupportedPSync implements PSyncConnector by returning
// NotImplemented from URL, BuildHeaders and HandleSuccess.
type UnsupportedPSync struct{}

func (UnsupportedPSync) BuildHeaders(*RouterData[flow.PSync, PaymentFlowData, PaymentsSyncData, PaymentsResponseData]) ([]Header, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("psync")
}
func (UnsupportedPSync) ContentType() string { return "application/json" }
func (UnsupportedPSync) HTTPMethod() string  { return http.MethodGet }
func (UnsupportedPSync) URL(*RouterData[flow.PSync, PaymentFlowData, PaymentsSyncData, PaymentsResponseData]) (string, *connectorerr.Error) {
	return "", connectorerr.NotImplemented("psync")
}
func (UnsupportedPSync) Body(*RouterData[flow.PSync, PaymentFlowData, PaymentsSyncData, PaymentsResponseData]) (*Body, *connectorerr.Error) {
	return nil, nil
}
func (UnsupportedPSync) PreprocessResponse(raw []byte, _ *RouterData[flow.PSync, PaymentFlowData, PaymentsSyncData, PaymentsResponseData]) ([]byte, *connectorerr.Error) {
	return raw, nil
}
func (UnsupportedPSync) HandleSuccess(*RouterData[flow.PSync, PaymentFlowData, PaymentsSyncData, PaymentsResponseData], []byte, int) *connectorerr.Error {
	return connectorerr.NotImplemented("psync")
}
func (UnsupportedPSync) HandleError([]byte, int) *ErrorResponse {
	return &ErrorResponse{Code: string(connectorerr.KindNotImplemented), Message: "psync not implemented"}
}
func (UnsupportedPSync) Handle5xx(raw []byte, status int) *ErrorResponse {
	return UnsupportedPSync{}.HandleError(raw, status)
}

// UnsupportedRefund implements RefundConnector by returning
// NotImplemented from URL, BuildHeaders and HandleSuccess.
type UnsupportedRefund struct{}

func (UnsupportedRefund) BuildHeaders(*RouterData[flow.Refund, RefundFlowData, RefundsData, RefundsResponseData]) ([]Header, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("refund")
}
func (UnsupportedRefund) ContentType() string { return "application/json" }
func (UnsupportedRefund) HTTPMethod() string  { return http.MethodPost }
func (UnsupportedRefund) URL(*RouterData[flow.Refund, RefundFlowData, RefundsData, RefundsResponseData]) (string, *connectorerr.Error) {
	return "", connectorerr.NotImplemented("refund")
}
func (UnsupportedRefund) Body(*RouterData[flow.Refund, RefundFlowData, RefundsData, RefundsResponseData]) (*Body, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("refund")
}
func (UnsupportedRefund) PreprocessResponse(raw []byte, _ *RouterData[flow.Refund, RefundFlowData, RefundsData, RefundsResponseData]) ([]byte, *connectorerr.Error) {
	return raw, nil
}
func (UnsupportedRefund) HandleSuccess(*RouterData[flow.Refund, RefundFlowData, RefundsData, RefundsResponseData], []byte, int) *connectorerr.Error {
	return connectorerr.NotImplemented("refund")
}
func (UnsupportedRefund) HandleError([]byte, int) *ErrorResponse {
	return &ErrorResponse{Code: string(connectorerr.KindNotImplemented), Message: "refund not implemented"}
}
func (UnsupportedRefund) Handle5xx(raw []byte, status int) *ErrorResponse {
	return UnsupportedRefund{}.HandleError(raw, status)
}

// UnsupportedRSync implements RSyncConnector by returning
// NotImplemented from URL, BuildHeaders and HandleSuccess.
type UnsupportedRSync struct{}

func (UnsupportedRSync) BuildHeaders(*RouterData[flow.RSync, RefundFlowData, RefundSyncData, RefundsResponseData]) ([]Header, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("rsync")
}
func (UnsupportedRSync) ContentType() string { return "application/json" }
func (UnsupportedRSync) HTTPMethod() string  { return http.MethodGet }
func (UnsupportedRSync) URL(*RouterData[flow.RSync, RefundFlowData, RefundSyncData, RefundsResponseData]) (string, *connectorerr.Error) {
	return "", connectorerr.NotImplemented("rsync")
}
func (UnsupportedRSync) Body(*RouterData[flow.RSync, RefundFlowData, RefundSyncData, RefundsResponseData]) (*Body, *connectorerr.Error) {
	return nil, nil
}
func (UnsupportedRSync) PreprocessResponse(raw []byte, _ *RouterData[flow.RSync, RefundFlowData, RefundSyncData, RefundsResponseData]) ([]byte, *connectorerr.Error) {
	return raw, nil
}
func (UnsupportedRSync) HandleSuccess(*RouterData[flow.RSync, RefundFlowData, RefundSyncData, RefundsResponseData], []byte, int) *connectorerr.Error {
	return connectorerr.NotImplemented("rsync")
}
func (UnsupportedRSync) HandleError([]byte, int) *ErrorResponse {
	return &ErrorResponse{Code: string(connectorerr.KindNotImplemented), Message: "rsync not implemented"}
}
func (UnsupportedRSync) Handle5xx(raw []byte, status int) *ErrorResponse {
	return UnsupportedRSync{}.HandleError(raw, status)
}

// UnsupportedSetupMandate implements SetupMandateConnector by returning
// NotImplemented from URL, BuildHeaders and HandleSuccess.
type UnsupportedSetupMandate struct{}

func (UnsupportedSetupMandate) BuildHeaders(*RouterData[flow.SetupMandate, PaymentFlowData, SetupMandateData, PaymentsResponseData]) ([]Header, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("setup_mandate")
}
func (UnsupportedSetupMandate) ContentType() string { return "application/json" }
func (UnsupportedSetupMandate) HTTPMethod() string  { return http.MethodPost }
func (UnsupportedSetupMandate) URL(*RouterData[flow.SetupMandate, PaymentFlowData, SetupMandateData, PaymentsResponseData]) (string, *connectorerr.Error) {
	return "", connectorerr.NotImplemented("setup_mandate")
}
func (UnsupportedSetupMandate) Body(*RouterData[flow.SetupMandate, PaymentFlowData, SetupMandateData, PaymentsResponseData]) (*Body, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("setup_mandate")
}
func (UnsupportedSetupMandate) PreprocessResponse(raw []byte, _ *RouterData[flow.SetupMandate, PaymentFlowData, SetupMandateData, PaymentsResponseData]) ([]byte, *connectorerr.Error) {
	return raw, nil
}
func (UnsupportedSetupMandate) HandleSuccess(*RouterData[flow.SetupMandate, PaymentFlowData, SetupMandateData, PaymentsResponseData], []byte, int) *connectorerr.Error {
	return connectorerr.NotImplemented("setup_mandate")
}
func (UnsupportedSetupMandate) HandleError([]byte, int) *ErrorResponse {
	return &ErrorResponse{Code: string(connectorerr.KindNotImplemented), Message: "setup_mandate not implemented"}
}
func (UnsupportedSetupMandate) Handle5xx(raw []byte, status int) *ErrorResponse {
	return UnsupportedSetupMandate{}.HandleError(raw, status)
}

// UnsupportedCreateOrder implements CreateOrderConnector by returning
// NotImplemented from URL, BuildHeaders and HandleSuccess.
type UnsupportedCreateOrder struct{}

func (UnsupportedCreateOrder) BuildHeaders(*RouterData[flow.CreateOrder, PaymentFlowData, CreateOrderData, CreateOrderResponseData]) ([]Header, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("create_order")
}
func (UnsupportedCreateOrder) ContentType() string { return "application/json" }
func (UnsupportedCreateOrder) HTTPMethod() string  { return http.MethodPost }
func (UnsupportedCreateOrder) URL(*RouterData[flow.CreateOrder, PaymentFlowData, CreateOrderData, CreateOrderResponseData]) (string, *connectorerr.Error) {
	return "", connectorerr.NotImplemented("create_order")
}
func (UnsupportedCreateOrder) Body(*RouterData[flow.CreateOrder, PaymentFlowData, CreateOrderData, CreateOrderResponseData]) (*Body, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("create_order")
}
func (UnsupportedCreateOrder) PreprocessResponse(raw []byte, _ *RouterData[flow.CreateOrder, PaymentFlowData, CreateOrderData, CreateOrderResponseData]) ([]byte, *connectorerr.Error) {
	return raw, nil
}
func (UnsupportedCreateOrder) HandleSuccess(*RouterData[flow.CreateOrder, PaymentFlowData, CreateOrderData, CreateOrderResponseData], []byte, int) *connectorerr.Error {
	return connectorerr.NotImplemented("create_order")
}
func (UnsupportedCreateOrder) HandleError([]byte, int) *ErrorResponse {
	return &ErrorResponse{Code: string(connectorerr.KindNotImplemented), Message: "create_order not implemented"}
}
func (UnsupportedCreateOrder) Handle5xx(raw []byte, status int) *ErrorResponse {
	return UnsupportedCreateOrder{}.HandleError(raw, status)
}

// UnsupportedAcceptDispute implements AcceptDisputeConnector by
// returning NotImplemented from URL, BuildHeaders and HandleSuccess.
type UnsupportedAcceptDispute struct{}

func (UnsupportedAcceptDispute) BuildHeaders(*RouterData[flow.AcceptDispute, DisputeFlowData, AcceptDisputeData, DisputeResponseData]) ([]Header, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("accept_dispute")
}
func (UnsupportedAcceptDispute) ContentType() string { return "application/json" }
func (UnsupportedAcceptDispute) HTTPMethod() string  { return http.MethodPost }
func (UnsupportedAcceptDispute) URL(*RouterData[flow.AcceptDispute, DisputeFlowData, AcceptDisputeData, DisputeResponseData]) (string, *connectorerr.Error) {
	return "", connectorerr.NotImplemented("accept_dispute")
}
func (UnsupportedAcceptDispute) Body(*RouterData[flow.AcceptDispute, DisputeFlowData, AcceptDisputeData, DisputeResponseData]) (*Body, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("accept_dispute")
}
func (UnsupportedAcceptDispute) PreprocessResponse(raw []byte, _ *RouterData[flow.AcceptDispute, DisputeFlowData, AcceptDisputeData, DisputeResponseData]) ([]byte, *connectorerr.Error) {
	return raw, nil
}
func (UnsupportedAcceptDispute) HandleSuccess(*RouterData[flow.AcceptDispute, DisputeFlowData, AcceptDisputeData, DisputeResponseData], []byte, int) *connectorerr.Error {
	return connectorerr.NotImplemented("accept_dispute")
}
func (UnsupportedAcceptDispute) HandleError([]byte, int) *ErrorResponse {
	return &ErrorResponse{Code: string(connectorerr.KindNotImplemented), Message: "accept_dispute not implemented"}
}
func (UnsupportedAcceptDispute) Handle5xx(raw []byte, status int) *ErrorResponse {
	return UnsupportedAcceptDispute{}.HandleError(raw, status)
}

// UnsupportedSubmitEvidence implements SubmitEvidenceConnector by
// returning NotImplemented from URL, BuildHeaders and HandleSuccess.
type UnsupportedSubmitEvidence struct{}

func (UnsupportedSubmitEvidence) BuildHeaders(*RouterData[flow.SubmitEvidence, DisputeFlowData, SubmitEvidenceData, DisputeResponseData]) ([]Header, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("submit_evidence")
}
func (UnsupportedSubmitEvidence) ContentType() string { return "application/json" }
func (UnsupportedSubmitEvidence) HTTPMethod() string  { return http.MethodPost }
func (UnsupportedSubmitEvidence) URL(*RouterData[flow.SubmitEvidence, DisputeFlowData, SubmitEvidenceData, DisputeResponseData]) (string, *connectorerr.Error) {
	return "", connectorerr.NotImplemented("submit_evidence")
}
func (UnsupportedSubmitEvidence) Body(*RouterData[flow.SubmitEvidence, DisputeFlowData, SubmitEvidenceData, DisputeResponseData]) (*Body, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("submit_evidence")
}
func (UnsupportedSubmitEvidence) PreprocessResponse(raw []byte, _ *RouterData[flow.SubmitEvidence, DisputeFlowData, SubmitEvidenceData, DisputeResponseData]) ([]byte, *connectorerr.Error) {
	return raw, nil
}
func (UnsupportedSubmitEvidence) HandleSuccess(*RouterData[flow.SubmitEvidence, DisputeFlowData, SubmitEvidenceData, DisputeResponseData], []byte, int) *connectorerr.Error {
	return connectorerr.NotImplemented("submit_evidence")
}
func (UnsupportedSubmitEvidence) HandleError([]byte, int) *ErrorResponse {
	return &ErrorResponse{Code: string(connectorerr.KindNotImplemented), Message: "submit_evidence not implemented"}
}
func (UnsupportedSubmitEvidence) Handle5xx(raw []byte, status int) *ErrorResponse {
	return UnsupportedSubmitEvidence{}.HandleError(raw, status)
}

// UnsupportedDefendDispute implements DefendDisputeConnector by
// returning NotImplemented from URL, BuildHeaders and HandleSuccess.
type UnsupportedDefendDispute struct{}

func (UnsupportedDefendDispute) BuildHeaders(*RouterData[flow.DefendDispute, DisputeFlowData, DefendDisputeData, DisputeResponseData]) ([]Header, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("defend_dispute")
}
func (UnsupportedDefendDispute) ContentType() string { return "application/json" }
func (UnsupportedDefendDispute) HTTPMethod() string  { return http.MethodPost }
func (UnsupportedDefendDispute) URL(*RouterData[flow.DefendDispute, DisputeFlowData, DefendDisputeData, DisputeResponseData]) (string, *connectorerr.Error) {
	return "", connectorerr.NotImplemented("defend_dispute")
}
func (UnsupportedDefendDispute) Body(*RouterData[flow.DefendDispute, DisputeFlowData, DefendDisputeData, DisputeResponseData]) (*Body, *connectorerr.Error) {
	return nil, connectorerr.NotImplemented("defend_dispute")
}
func (UnsupportedDefendDispute) PreprocessResponse(raw []byte, _ *RouterData[flow.DefendDispute, DisputeFlowData, DefendDisputeData, DisputeResponseData]) ([]byte, *connectorerr.Error) {
	return raw, nil
}
func (UnsupportedDefendDispute) HandleSuccess(*RouterData[flow.DefendDispute, DisputeFlowData, DefendDisputeData, DisputeResponseData], []byte, int) *connectorerr.Error {
	return connectorerr.NotImplemented("defend_dispute")
}
func (UnsupportedDefendDispute) HandleError([]byte, int) *ErrorResponse {
	return &ErrorResponse{Code: string(connectorerr.KindNotImplemented), Message: "defend_dispute not implemented"}
}
func (UnsupportedDefendDispute) Handle5xx(raw []byte, status int) *ErrorResponse {
	return UnsupportedDefendDispute{}.HandleError(raw, status)
}

// UnsupportedWebhook implements IncomingWebhook by rejecting every
// webhook: VerifySource always fails closed for connectors that do not
// support inbound webhooks at all, so no normalize method is ever
// reachable for them (spec §8.8).
type UnsupportedWebhook struct{}

func (UnsupportedWebhook) VerifySource([]byte, http.Header, secret.Value[string]) bool {
	return false
}

func (UnsupportedWebhook) EventKind([]byte, http.Header) EventKind { return EventUnknown }

func (UnsupportedWebhook) NormalizePaymentEvent([]byte, http.Header) (WebhookDetails, *connectorerr.Error) {
	return WebhookDetails{}, connectorerr.NotImplemented("webhook")
}

func (UnsupportedWebhook) NormalizeRefundEvent([]byte, http.Header) (RefundWebhookDetails, *connectorerr.Error) {
	return RefundWebhookDetails{}, connectorerr.NotImplemented("webhook")
}

func (UnsupportedWebhook) NormalizeDisputeEvent([]byte, http.Header) (DisputeWebhookDetails, *connectorerr.Error) {
	return DisputeWebhookDetails{}, connectorerr.NotImplemented("webhook")
}
