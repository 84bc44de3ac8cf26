// Package webhook implements the inbound webhook subsystem: dedup
// storage, a retry queue with a dead-letter queue, and event fan-out,
// sitting in front of a connector's IncomingWebhook contract
// (internal/connector). None of it holds payment state — only webhook
// delivery bookkeeping, which keeps it out of the stateless-core
// Non-goal.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DedupStore records which (connector, event) pairs have already been
// dispatched, so a redelivered webhook is acknowledged without
// re-invoking normalize_*_event. Grounded on the teacher's
// CallbackRetryRepository query style (positional placeholders,
// wrapped errors naming the operation); the schema and driver are new
// since the teacher has no dedup concept, using jackc/pgx/v5 directly
// rather than the teacher's sqlx, per this package's migration path.
type DedupStore struct {
	pool *pgxpool.Pool
}

// NewDedupStore wraps an already-connected pool. Call Migrate before
// first use in a fresh environment.
func NewDedupStore(pool *pgxpool.Pool) *DedupStore {
	return &DedupStore{pool: pool}
}

// Seen reports whether (connectorID, eventID) has already been
// successfully dispatched.
func (s *DedupStore) Seen(ctx context.Context, connectorID, eventID string) (bool, error) {
	var dispatched bool
	err := s.pool.QueryRow(ctx,
		`SELECT dispatched FROM webhook_events WHERE connector_id = $1 AND event_id = $2`,
		connectorID, eventID,
	).Scan(&dispatched)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("webhook dedup: checking seen status: %w", err)
	}
	return dispatched, nil
}

// Record upserts (connectorID, eventID) as received, optionally
// already dispatched. A conflicting insert (the webhook arrived twice
// concurrently) is resolved by keeping the existing row's dispatched
// flag untouched unless this call is itself marking it dispatched.
func (s *DedupStore) Record(ctx context.Context, connectorID, eventID string, dispatched bool) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO webhook_events (connector_id, event_id, dispatched, received_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (connector_id, event_id) DO UPDATE
		 SET dispatched = webhook_events.dispatched OR EXCLUDED.dispatched`,
		connectorID, eventID, dispatched, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("webhook dedup: recording event: %w", err)
	}
	return nil
}

// MarkDispatched flags a previously recorded event as successfully
// dispatched.
func (s *DedupStore) MarkDispatched(ctx context.Context, connectorID, eventID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE webhook_events SET dispatched = true WHERE connector_id = $1 AND event_id = $2`,
		connectorID, eventID,
	)
	if err != nil {
		return fmt.Errorf("webhook dedup: marking dispatched: %w", err)
	}
	return nil
}
