package connector

// AuthType distinguishes 3-D Secure from non-3DS card authorizations.
type AuthType string

const (
	NoThreeDS AuthType = "no_three_ds"
	ThreeDS   AuthType = "three_ds"
)

// PaymentMethodKind names the broad category of payment instrument
// carried by a request, independent of gateway-specific detail.
type PaymentMethodKind string

const (
	PaymentMethodCard       PaymentMethodKind = "card"
	PaymentMethodUPI        PaymentMethodKind = "upi"
	PaymentMethodWallet     PaymentMethodKind = "wallet"
	PaymentMethodNetbanking PaymentMethodKind = "netbanking"
)

// Address is the common billing/shipping address shape used across
// payloads and resource-common records.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string // ISO 3166-1 alpha-2
	FirstName  string
	LastName   string
}

// PaymentFlowData is the resource-common state shared by every
// payment-family flow (Authorize, Capture, Void, PSync, SetupMandate,
// CreateOrder).
type PaymentFlowData struct {
	MerchantID         string
	PaymentID          string
	AttemptID          string
	Status             AttemptStatus
	PaymentMethod      PaymentMethodKind
	BillingAddress     *Address
	ShippingAddress    *Address
	AuthType           AuthType
	RequestReferenceID string
	ReturnURL          string
	Connectors         Connectors
}

// RefundFlowData is the resource-common state shared by refund-family
// flows (Refund, RSync).
type RefundFlowData struct {
	RefundID   string
	Status     RefundStatus
	Connectors Connectors
}

// DisputeFlowData is the resource-common state shared by dispute-family
// flows (AcceptDispute, SubmitEvidence, DefendDispute).
type DisputeFlowData struct {
	DisputeID          string
	ConnectorDisputeID string
	Status             DisputeStatus
	Connectors         Connectors
}
