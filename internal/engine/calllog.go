package engine

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// CallRecord is the single structured log record emitted per call
// (spec §4.3 step 5): correlation id, gateway id, flow name, latency,
// HTTP status, and masked request/response bodies. The same record is
// fanned out asynchronously to the analytics sink in §10.6.
type CallRecord struct {
	CorrelationID   string
	GatewayID       string
	Flow            string
	StartedAt       time.Time
	FinishedAt      time.Time
	HTTPStatus      int
	RequestHeaders  map[string]string
	RequestBody     []byte // masked
	ResponseHeaders map[string]string
	ResponseBody    []byte // masked
	ErrorKind       string
	Cancelled       bool
}

// Latency is the wall-clock duration of the call.
func (r CallRecord) Latency() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

func (r CallRecord) logFields() []zap.Field {
	fields := []zap.Field{
		zap.String("correlation_id", r.CorrelationID),
		zap.String("gateway", r.GatewayID),
		zap.String("flow", r.Flow),
		zap.Duration("latency", r.Latency()),
		zap.Int("http_status", r.HTTPStatus),
		zap.ByteString("request_body", r.RequestBody),
		zap.ByteString("response_body", r.ResponseBody),
	}
	if r.ErrorKind != "" {
		fields = append(fields, zap.String("error_kind", r.ErrorKind))
	}
	if r.Cancelled {
		fields = append(fields, zap.Bool("cancelled", true))
	}
	return fields
}

// Log emits the call record through logger at Info (success) or Warn
// (error/cancellation) level.
func (r CallRecord) Log(logger *zap.Logger) {
	if r.ErrorKind != "" || r.Cancelled {
		logger.Warn("connector call failed", r.logFields()...)
		return
	}
	logger.Info("connector call completed", r.logFields()...)
}

// AnalyticsSink asynchronously persists call records to ClickHouse for
// offline analysis. It is never on the request's critical path: Record
// only enqueues, and a full queue drops the record rather than blocking
// the caller, since losing an analytics row is an acceptable tradeoff
// for a sink that must never add latency to a payment call.
type AnalyticsSink struct {
	conn   *sql.DB
	logger *zap.Logger
	ch     chan CallRecord
}

// NewAnalyticsSink starts a single background worker draining records
// into ClickHouse. conn is the database/sql handle internal/app opens
// with the clickhouse driver; queueSize bounds the in-memory backlog
// before records are dropped.
func NewAnalyticsSink(conn *sql.DB, logger *zap.Logger, queueSize int) *AnalyticsSink {
	s := &AnalyticsSink{
		conn:   conn,
		logger: logger,
		ch:     make(chan CallRecord, queueSize),
	}
	go s.run()
	return s
}

// Record enqueues rec for asynchronous persistence. Never blocks: on a
// full queue the record is dropped and a warning logged.
func (s *AnalyticsSink) Record(rec CallRecord) {
	select {
	case s.ch <- rec:
	default:
		s.logger.Warn("analytics sink queue full, dropping call record",
			zap.String("correlation_id", rec.CorrelationID))
	}
}

func (s *AnalyticsSink) run() {
	for rec := range s.ch {
		s.insert(rec)
	}
}

func (s *AnalyticsSink) insert(rec CallRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO connector_call_log
			(correlation_id, gateway, flow, started_at, finished_at, http_status, error_kind, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CorrelationID, rec.GatewayID, rec.Flow, rec.StartedAt, rec.FinishedAt,
		rec.HTTPStatus, rec.ErrorKind, rec.RequestBody, rec.ResponseBody,
	)
	if err != nil {
		s.logger.Warn("failed to persist call record to analytics sink", zap.Error(err))
	}
}

// Close stops accepting new records and drains the queue.
func (s *AnalyticsSink) Close() {
	close(s.ch)
}
