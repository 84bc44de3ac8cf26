package webhook

import (
	"context"
	"net/http"

	"connector-service/internal/connector"
	"connector-service/internal/connectorerr"
	"connector-service/internal/secret"
)

// Dispatcher is the edge-facing entry point for inbound webhooks
// (spec §8.8): it runs the mandatory verify_source gate, discriminates
// the event kind, normalizes it through the connector's IncomingWebhook
// contract, deduplicates against prior deliveries, and fans the
// normalized event out over the event bus. A normalization or fan-out
// failure is handed to the retry queue rather than surfaced as a
// processing failure to the gateway that sent the webhook — the
// inbound HTTP response only ever reflects whether the signature
// verified.
type Dispatcher struct {
	dedup *DedupStore
	retry *RetryQueue
	bus   *EventBus
}

// NewDispatcher wires the three webhook-subsystem components into one
// entry point.
func NewDispatcher(dedup *DedupStore, retry *RetryQueue, bus *EventBus) *Dispatcher {
	return &Dispatcher{dedup: dedup, retry: retry, bus: bus}
}

// Outcome is the result of one Dispatch call, enough for the admin
// HTTP handler to pick an HTTP status without knowing webhook
// internals.
type Outcome struct {
	Accepted  bool
	Duplicate bool
	ErrKind   connectorerr.Kind
}

// Dispatch runs the full inbound webhook pipeline for one delivery
// against webhookSvc (a connector's Webhook facet) identified by
// connectorID, using sharedSecret for verify_source.
func (d *Dispatcher) Dispatch(ctx context.Context, connectorID string, webhookSvc connector.IncomingWebhook, body []byte, headers http.Header, sharedSecret secret.Value[string], maxRetries int) Outcome {
	if !webhookSvc.VerifySource(body, headers, sharedSecret) {
		return Outcome{Accepted: false, ErrKind: connectorerr.KindWebhookSourceVerificationFailed}
	}

	kind := webhookSvc.EventKind(body, headers)
	eventID := headers.Get("X-Event-Id")
	if eventID == "" {
		eventID = headers.Get("X-Idempotency-Key")
	}

	if eventID != "" && d.dedup != nil {
		seen, err := d.dedup.Seen(ctx, connectorID, eventID)
		if err == nil && seen {
			return Outcome{Accepted: true, Duplicate: true}
		}
	}

	var (
		data any
		cerr *connectorerr.Error
	)

	switch kind {
	case connector.EventPaymentSucceeded, connector.EventPaymentFailed:
		data, cerr = webhookSvc.NormalizePaymentEvent(body, headers)
	case connector.EventRefundSucceeded, connector.EventRefundFailed:
		data, cerr = webhookSvc.NormalizeRefundEvent(body, headers)
	case connector.EventDisputeOpened, connector.EventDisputeUpdated:
		data, cerr = webhookSvc.NormalizeDisputeEvent(body, headers)
	default:
		cerr = connectorerr.NotImplemented("unknown webhook event kind")
	}

	if cerr != nil {
		d.requeue(ctx, connectorID, eventID, body, maxRetries)
		return Outcome{Accepted: true, ErrKind: cerr.Kind}
	}

	if eventID != "" && d.dedup != nil {
		_ = d.dedup.Record(ctx, connectorID, eventID, false)
	}

	if d.bus != nil {
		if err := d.bus.Publish(ctx, Event{ConnectorID: connectorID, EventID: eventID, Kind: string(kind), Data: data}); err != nil {
			d.requeue(ctx, connectorID, eventID, body, maxRetries)
			return Outcome{Accepted: true, ErrKind: connectorerr.KindResponseHandlingFailed}
		}
	}

	if eventID != "" && d.dedup != nil {
		_ = d.dedup.MarkDispatched(ctx, connectorID, eventID)
	}

	return Outcome{Accepted: true}
}

func (d *Dispatcher) requeue(ctx context.Context, connectorID, eventID string, body []byte, maxRetries int) {
	if d.retry == nil {
		return
	}
	_ = d.retry.Enqueue(ctx, connectorID, eventID, body, 0, maxRetries)
}

// ProcessRetry redelivers a body the retry queue already holds.
// VerifySource passed on the original delivery (only a verified
// delivery is ever enqueued), so this repeats normalize -> publish
// only, requeuing again with an incremented retry count on failure.
// Event-kind discrimination for a retried delivery uses the body
// alone, since RetryQueue.Enqueue persists only the raw body: every
// connector this service ships carries its event kind in the JSON
// payload itself, not in a header.
func (d *Dispatcher) ProcessRetry(ctx context.Context, connectorID string, webhookSvc connector.IncomingWebhook, eventID string, body []byte, retryCount, maxRetries int) error {
	headers := http.Header{}
	kind := webhookSvc.EventKind(body, headers)

	var (
		data any
		cerr *connectorerr.Error
	)
	switch kind {
	case connector.EventPaymentSucceeded, connector.EventPaymentFailed:
		data, cerr = webhookSvc.NormalizePaymentEvent(body, headers)
	case connector.EventRefundSucceeded, connector.EventRefundFailed:
		data, cerr = webhookSvc.NormalizeRefundEvent(body, headers)
	case connector.EventDisputeOpened, connector.EventDisputeUpdated:
		data, cerr = webhookSvc.NormalizeDisputeEvent(body, headers)
	default:
		cerr = connectorerr.NotImplemented("unknown webhook event kind")
	}
	if cerr != nil {
		_ = d.retry.Enqueue(ctx, connectorID, eventID, body, retryCount+1, maxRetries)
		return cerr
	}

	if err := d.bus.Publish(ctx, Event{ConnectorID: connectorID, EventID: eventID, Kind: string(kind), Data: data}); err != nil {
		_ = d.retry.Enqueue(ctx, connectorID, eventID, body, retryCount+1, maxRetries)
		return err
	}

	if eventID != "" {
		_ = d.dedup.MarkDispatched(ctx, connectorID, eventID)
	}
	return nil
}
