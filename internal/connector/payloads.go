package connector

import "connector-service/internal/secret"

// Card is the PCI card payload. PAN and CVV are held in secret
// wrappers; nothing here is ever logged or serialized unmasked.
type Card struct {
	Number         secret.Value[string]
	CVV            secret.Value[string]
	ExpiryMonth    string
	ExpiryYear     string
	CardholderName string
}

// PaymentMethodData is the tagged union of supported instrument
// payloads. Only one field is populated, selected by Kind.
type PaymentMethodData struct {
	Kind       PaymentMethodKind
	Card       *Card
	UPIVPA     string
	WalletID   string
	BankCode   string // netbanking
}

// BrowserInfo is optional 3DS/device-fingerprinting context passed
// through unchanged to gateways that require it.
type BrowserInfo struct {
	UserAgent      string
	AcceptHeader   string
	Language       string
	ColorDepth     int
	ScreenHeight   int
	ScreenWidth    int
	TimeZoneOffset int
	JavaEnabled    bool
	IPAddress      string
}

// CaptureMethod selects whether an authorization is captured
// automatically by the gateway or requires an explicit Capture flow.
type CaptureMethod string

const (
	CaptureAutomatic CaptureMethod = "automatic"
	CaptureManual    CaptureMethod = "manual"
)

// --- Authorize ---

// PaymentsAuthorizeData is the Request payload for the Authorize flow.
type PaymentsAuthorizeData struct {
	AmountMinorUnits int64
	Currency         string // ISO 4217
	PaymentMethod    PaymentMethodData
	CaptureMethod    CaptureMethod
	AuthType         AuthType
	MerchantRefID    string
	ReturnURL        string
	Browser          *BrowserInfo
}

// PaymentsResponseData is the Response payload shared by every
// payment-family flow (Authorize, Capture, Void, PSync, SetupMandate).
type PaymentsResponseData struct {
	ResourceID              string // connector transaction id
	Status                  AttemptStatus
	RedirectURL             string
	NetworkTransactionID    string
	ResponseReferenceID     string
}

// --- Capture ---

// PaymentsCaptureData is the Request payload for the Capture flow.
type PaymentsCaptureData struct {
	ConnectorTransactionID string
	AmountToCaptureMinor   int64
	Currency               string
}

// --- Void ---

// PaymentsVoidData is the Request payload for the Void flow.
type PaymentsVoidData struct {
	ConnectorTransactionID string
	CancellationReason     string
}

// --- PSync ---

// PaymentsSyncData is the Request payload for the PSync flow.
type PaymentsSyncData struct {
	ConnectorTransactionID string
}

// --- Refund ---

// RefundsData is the Request payload for the Refund flow.
type RefundsData struct {
	ConnectorTransactionID string
	ConnectorRefundID      string
	AmountMinorUnits       int64
	Currency               string
	Reason                 string
}

// RefundsResponseData is the Response payload for Refund and RSync.
type RefundsResponseData struct {
	ConnectorRefundID string
	Status            RefundStatus
}

// --- RSync ---

// RefundSyncData is the Request payload for the RSync flow.
type RefundSyncData struct {
	ConnectorRefundID string
}

// --- SetupMandate ---

// SetupMandateData is the Request payload for the SetupMandate flow.
type SetupMandateData struct {
	PaymentMethod PaymentMethodData
	Currency      string
	MerchantRefID string
	ReturnURL     string
}

// --- CreateOrder ---

// CreateOrderData is the Request payload for the CreateOrder flow.
type CreateOrderData struct {
	AmountMinorUnits int64
	Currency         string
	MerchantRefID    string
}

// CreateOrderResponseData is the Response payload for CreateOrder.
type CreateOrderResponseData struct {
	ConnectorOrderID string
}

// --- Disputes ---

// AcceptDisputeData is the Request payload for the AcceptDispute flow.
type AcceptDisputeData struct {
	ConnectorDisputeID string
}

// SubmitEvidenceData is the Request payload for the SubmitEvidence flow.
type SubmitEvidenceData struct {
	ConnectorDisputeID string
	EvidenceText       string
	EvidenceFiles      [][]byte
}

// DefendDisputeData is the Request payload for the DefendDispute flow.
type DefendDisputeData struct {
	ConnectorDisputeID string
}

// DisputeResponseData is the Response payload shared by every
// dispute-family flow.
type DisputeResponseData struct {
	ConnectorDisputeID string
	Status             DisputeStatus
}

// --- Webhooks ---

// EventKind names the class of event a webhook payload represents,
// discriminated before any deserialization step touches the body.
type EventKind string

const (
	EventPaymentSucceeded EventKind = "payment_succeeded"
	EventPaymentFailed    EventKind = "payment_failed"
	EventRefundSucceeded  EventKind = "refund_succeeded"
	EventRefundFailed     EventKind = "refund_failed"
	EventDisputeOpened    EventKind = "dispute_opened"
	EventDisputeUpdated   EventKind = "dispute_updated"
	EventUnknown          EventKind = "unknown"
)

// WebhookDetails is the normalized shape of a payment-related webhook
// event.
type WebhookDetails struct {
	ConnectorTransactionID string
	Status                 AttemptStatus
	RawEventKind           string
}

// RefundWebhookDetails is the normalized shape of a refund-related
// webhook event.
type RefundWebhookDetails struct {
	ConnectorRefundID string
	Status             RefundStatus
	RawEventKind       string
}

// DisputeWebhookDetails is the normalized shape of a dispute-related
// webhook event.
type DisputeWebhookDetails struct {
	ConnectorDisputeID string
	Status             DisputeStatus
	RawEventKind       string
}
