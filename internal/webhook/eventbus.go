package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus fans a successfully normalized webhook event out to a
// per-event-kind subject so internal consumers (reconciliation,
// notifications) can subscribe without coupling to the webhook
// ingress path. Grounded on the teacher's
// pkg/broker/nats/jetstream.JetStream wrapper, narrowed to this
// package's own Event shape instead of the teacher's generic
// map[string]interface{} payload.
type EventBus struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// NewEventBus connects to url and ensures streamName exists, bound to
// the subjects this service publishes under.
func NewEventBus(ctx context.Context, url, streamName string, subjects []string) (*EventBus, error) {
	nc, err := nats.Connect(url, nats.ReconnectWait(5*time.Second), nats.MaxReconnects(10))
	if err != nil {
		return nil, fmt.Errorf("webhook event bus: connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("webhook event bus: jetstream.New: %w", err)
	}

	streamCfg := jetstream.StreamConfig{
		Name:      streamName,
		Subjects:  subjects,
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    30 * 24 * time.Hour,
	}
	if _, err := js.CreateStream(ctx, streamCfg); err != nil {
		if _, err := js.UpdateStream(ctx, streamCfg); err != nil {
			nc.Close()
			return nil, fmt.Errorf("webhook event bus: create/update stream: %w", err)
		}
	}

	return &EventBus{nc: nc, js: js}, nil
}

// Event is the normalized envelope published for every dispatched
// webhook, independent of which connector produced it.
type Event struct {
	ConnectorID string    `json:"connector_id"`
	EventID     string    `json:"event_id"`
	Kind        string    `json:"kind"`
	OccurredAt  time.Time `json:"occurred_at"`
	Data        any       `json:"data"`
}

// Publish sends evt to "webhooks.<kind>".
func (b *EventBus) Publish(ctx context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("webhook event bus: marshal event: %w", err)
	}
	subject := "webhooks." + evt.Kind
	if _, err := b.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("webhook event bus: publish: %w", err)
	}
	return nil
}

// Close disconnects from NATS.
func (b *EventBus) Close() {
	if b.nc != nil {
		b.nc.Close()
	}
}
