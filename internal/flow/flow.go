// Package flow defines the closed set of payment operation markers used
// as compile-time type parameters throughout the connector core. A flow
// tag never carries data and is never inspected at runtime; it exists
// only so the compiler can distinguish, say, a RouterData instantiated
// for Authorize from one instantiated for Capture.
package flow

// Flow is the constraint satisfied by every marker type in this package.
// It has no methods: membership is closed by construction, not by
// interface satisfaction, since only the types declared below implement
// the unexported tag.
type Flow interface {
	flowTag()
}

// Authorize requests that a gateway create and, depending on capture
// method, settle a payment attempt.
type Authorize struct{}

// Capture settles a previously authorized, not-yet-captured attempt.
type Capture struct{}

// Void cancels a previously authorized, not-yet-captured attempt.
type Void struct{}

// Refund returns funds for a previously captured attempt.
type Refund struct{}

// PSync polls a gateway for the current state of a payment attempt.
type PSync struct{}

// RSync polls a gateway for the current state of a refund.
type RSync struct{}

// SetupMandate registers a recurring-payment mandate with a gateway.
type SetupMandate struct{}

// CreateOrder pre-creates a gateway-side order ahead of authorization,
// required by gateways that separate order creation from payment.
type CreateOrder struct{}

// AcceptDispute accepts a chargeback/dispute on behalf of the merchant.
type AcceptDispute struct{}

// SubmitEvidence uploads evidence contesting a dispute.
type SubmitEvidence struct{}

// DefendDispute marks a dispute as contested without new evidence.
type DefendDispute struct{}

func (Authorize) flowTag()      {}
func (Capture) flowTag()        {}
func (Void) flowTag()           {}
func (Refund) flowTag()         {}
func (PSync) flowTag()          {}
func (RSync) flowTag()          {}
func (SetupMandate) flowTag()   {}
func (CreateOrder) flowTag()    {}
func (AcceptDispute) flowTag()  {}
func (SubmitEvidence) flowTag() {}
func (DefendDispute) flowTag()  {}
