// Package engine implements the generic execution driver of spec §4.3:
// given a concrete ConnectorIntegration instantiation and a carrier, it
// builds the request, performs the HTTP call against one of two shared
// clients, classifies the outcome, and normalizes the result back onto
// the carrier — in that fixed order, with no retries.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"connector-service/internal/connector"
	"connector-service/internal/connectorerr"
	"connector-service/internal/flow"
)

// Engine owns the process-wide resources named in spec §5: the two
// shared HTTP clients, the logger, and (optionally) the analytics sink.
// An Engine is safe for concurrent use by many calls; it holds no
// call-scoped state.
type Engine struct {
	clients   *clientSet
	logger    *zap.Logger
	analytics *AnalyticsSink
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithAnalyticsSink wires the async ClickHouse sink described in
// SPEC_FULL.md §10.6.
func WithAnalyticsSink(sink *AnalyticsSink) Option {
	return func(e *Engine) { e.analytics = sink }
}

// New builds an Engine. The two HTTP clients are not dialed until the
// first call; construction itself does no I/O.
func New(proxyCfg ProxyConfig, timeout time.Duration, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		clients: newClientSet(proxyCfg, timeout),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CallContext carries the identifiers the engine needs for logging and
// tracing but that do not belong on the domain carrier itself.
type CallContext struct {
	GatewayID     string
	FlowName      string
	CorrelationID string
}

// Execute drives one call through integ for the flow and payload types
// fixed by F, RC, Req, Resp, mutating rd.Response (and, on success,
// rd.ResourceCommon via HandleSuccess) and returning nil on success.
// On a build, transport or response-handling failure it returns the
// ConnectorError it also set on the carrier's error branch; on a
// 4xx/5xx the carrier holds the integration's ErrorResponse and the
// returned error is a ProcessingStepFailed carrying its message.
//
// Step order is fixed and never varies: URL, headers, body; client
// selection; HTTP call; outcome classification; on success,
// preprocess+parse+HandleSuccess. The engine never retries — retry
// policy belongs to the caller (spec §4.3 step 8).
func Execute[F flow.Flow, RC any, Req any, Resp any](
	ctx context.Context,
	eng *Engine,
	integ connector.ConnectorIntegration[F, RC, Req, Resp],
	rd *connector.RouterData[F, RC, Req, Resp],
	cc CallContext,
) *connectorerr.Error {
	rawURL, cerr := integ.URL(rd)
	if cerr != nil {
		connector.SetError(rd, cerr)
		return cerr
	}

	headers, cerr := integ.BuildHeaders(rd)
	if cerr != nil {
		connector.SetError(rd, cerr)
		return cerr
	}

	reqBody, cerr := integ.Body(rd)
	if cerr != nil {
		connector.SetError(rd, cerr)
		return cerr
	}

	method := integ.HTTPMethod()
	client := eng.clients.selectClient(rawURL)

	callCtx, cancel := context.WithTimeout(ctx, eng.clients.timeout)
	defer cancel()

	req := client.R().SetContext(callCtx)
	headerMap := make(map[string]string, len(headers))
	for _, h := range headers {
		req.SetHeader(h.Name, h.Value)
		headerMap[h.Name] = h.Value
	}

	var maskedReqBody []byte
	if reqBody != nil {
		switch reqBody.Kind {
		case connector.BodyJSON:
			req.SetHeader("Content-Type", "application/json")
			req.SetBody(reqBody.JSON)
			if raw, err := json.Marshal(reqBody.JSON); err == nil {
				maskedReqBody = MaskJSON(raw)
			}
		case connector.BodyXML:
			req.SetHeader("Content-Type", "application/xml")
			req.SetBody(reqBody.XML)
		case connector.BodyFormURLEncoded:
			req.SetHeader("Content-Type", "application/x-www-form-urlencoded")
			req.SetFormDataFromValues(url.Values(reqBody.Form))
		case connector.BodyRaw:
			req.SetHeader("Content-Type", integ.ContentType())
			req.SetBody(reqBody.Raw)
			maskedReqBody = MaskJSON(reqBody.Raw)
		}
	}

	rec := CallRecord{
		CorrelationID:  cc.CorrelationID,
		GatewayID:      cc.GatewayID,
		Flow:           cc.FlowName,
		StartedAt:      time.Now(),
		RequestHeaders: MaskHeaders(headerMap),
		RequestBody:    maskedReqBody,
	}

	_, span := startSpan(ctx, cc.GatewayID, cc.FlowName)

	resp, err := req.Execute(method, rawURL)
	rec.FinishedAt = time.Now()

	if err != nil {
		cerr := classifyTransportError(callCtx, err)
		rec.ErrorKind = string(cerr.Kind)
		rec.Cancelled = errors.Is(callCtx.Err(), context.Canceled)
		rec.Log(eng.logger)
		eng.recordAnalytics(rec)
		endSpan(span, 0, string(cerr.Kind))
		connector.SetError(rd, cerr)
		return cerr
	}

	status := resp.StatusCode()
	rec.HTTPStatus = status
	rec.ResponseHeaders = MaskHeaders(flattenHeader(resp.Header()))
	rec.ResponseBody = MaskJSON(resp.Body())

	switch {
	case status >= 200 && status < 300:
		preprocessed, cerr := integ.PreprocessResponse(resp.Body(), rd)
		if cerr == nil {
			cerr = integ.HandleSuccess(rd, preprocessed, status)
		}
		rec.ErrorKind = kindOrEmpty(cerr)
		rec.Log(eng.logger)
		eng.recordAnalytics(rec)
		endSpan(span, status, rec.ErrorKind)
		if cerr != nil {
			connector.SetError(rd, cerr)
			return cerr
		}
		return nil

	case status >= 400 && status < 500:
		errResp := integ.HandleError(resp.Body(), status)
		rd.Response = connector.ErrResult[Resp](errResp)
		rec.ErrorKind = errResp.Code
		rec.Log(eng.logger)
		eng.recordAnalytics(rec)
		endSpan(span, status, errResp.Code)
		return &connectorerr.Error{Kind: connectorerr.KindProcessingStepFailed, Message: errResp.Message, HTTPStatus: status}

	case status >= 500 && status < 600:
		errResp := integ.Handle5xx(resp.Body(), status)
		rd.Response = connector.ErrResult[Resp](errResp)
		rec.ErrorKind = errResp.Code
		rec.Log(eng.logger)
		eng.recordAnalytics(rec)
		endSpan(span, status, errResp.Code)
		return &connectorerr.Error{Kind: connectorerr.KindProcessingStepFailed, Message: errResp.Message, HTTPStatus: status}

	default:
		cerr := connectorerr.ResponseHandlingFailed(nil)
		rec.ErrorKind = string(cerr.Kind)
		rec.Log(eng.logger)
		eng.recordAnalytics(rec)
		endSpan(span, status, string(cerr.Kind))
		connector.SetError(rd, cerr)
		return cerr
	}
}

func (eng *Engine) recordAnalytics(rec CallRecord) {
	if eng.analytics != nil {
		eng.analytics.Record(rec)
	}
}

func kindOrEmpty(e *connectorerr.Error) string {
	if e == nil {
		return ""
	}
	return string(e.Kind)
}

func classifyTransportError(ctx context.Context, err error) *connectorerr.Error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return connectorerr.RequestTimeoutReceived(err)
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return connectorerr.RequestTimeoutReceived(err)
	}
	return connectorerr.ConnectionClosed(err)
}

func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
