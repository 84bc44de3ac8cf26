// Package pb holds the wire message types for proto/connector.proto.
// The server uses the JSON codec (internal/api/grpc/codec.go) rather
// than protoc-generated protobuf bindings, so these are plain
// JSON-tagged structs mirroring the .proto message shapes field for
// field instead of protoc-gen-go output.
package pb

type Card struct {
	Number         string `json:"number"`
	CVV            string `json:"cvv"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	CardholderName string `json:"cardholder_name"`
}

type PaymentMethod struct {
	Kind     string `json:"kind"`
	Card     *Card  `json:"card,omitempty"`
	UPIVPA   string `json:"upi_vpa,omitempty"`
	WalletID string `json:"wallet_id,omitempty"`
	BankCode string `json:"bank_code,omitempty"`
}

type AuthorizeRequest struct {
	ConnectorID      string        `json:"connector_id"`
	AmountMinorUnits int64         `json:"amount_minor_units"`
	Currency         string        `json:"currency"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	CaptureMethod    string        `json:"capture_method"`
	AuthType         string        `json:"auth_type"`
	MerchantRefID    string        `json:"merchant_ref_id"`
	ReturnURL        string        `json:"return_url"`
}

type CaptureRequest struct {
	ConnectorID            string `json:"connector_id"`
	ConnectorTransactionID string `json:"connector_transaction_id"`
	AmountToCaptureMinor   int64  `json:"amount_to_capture_minor"`
	Currency               string `json:"currency"`
}

type VoidRequest struct {
	ConnectorID            string `json:"connector_id"`
	ConnectorTransactionID string `json:"connector_transaction_id"`
	CancellationReason     string `json:"cancellation_reason"`
}

type PSyncRequest struct {
	ConnectorID            string `json:"connector_id"`
	ConnectorTransactionID string `json:"connector_transaction_id"`
}

type PaymentsResponse struct {
	ResourceID           string `json:"resource_id"`
	Status               string `json:"status"`
	RedirectURL          string `json:"redirect_url,omitempty"`
	NetworkTransactionID string `json:"network_transaction_id,omitempty"`
}

type RefundRequest struct {
	ConnectorID            string `json:"connector_id"`
	ConnectorTransactionID string `json:"connector_transaction_id"`
	AmountMinorUnits       int64  `json:"amount_minor_units"`
	Currency               string `json:"currency"`
	Reason                 string `json:"reason"`
}

type RSyncRequest struct {
	ConnectorID       string `json:"connector_id"`
	ConnectorRefundID string `json:"connector_refund_id"`
}

type RefundsResponse struct {
	ConnectorRefundID string `json:"connector_refund_id"`
	Status            string `json:"status"`
}

type SetupMandateRequest struct {
	ConnectorID   string        `json:"connector_id"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Currency      string        `json:"currency"`
	MerchantRefID string        `json:"merchant_ref_id"`
	ReturnURL     string        `json:"return_url"`
}

type CreateOrderRequest struct {
	ConnectorID      string `json:"connector_id"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Currency         string `json:"currency"`
	MerchantRefID    string `json:"merchant_ref_id"`
}

type CreateOrderResponse struct {
	ConnectorOrderID string `json:"connector_order_id"`
}

type AcceptDisputeRequest struct {
	ConnectorID        string `json:"connector_id"`
	ConnectorDisputeID string `json:"connector_dispute_id"`
}

type SubmitEvidenceRequest struct {
	ConnectorID        string `json:"connector_id"`
	ConnectorDisputeID string `json:"connector_dispute_id"`
	EvidenceText       string `json:"evidence_text"`
}

type DefendDisputeRequest struct {
	ConnectorID        string `json:"connector_id"`
	ConnectorDisputeID string `json:"connector_dispute_id"`
}

type DisputeResponse struct {
	ConnectorDisputeID string `json:"connector_dispute_id"`
	Status             string `json:"status"`
}
