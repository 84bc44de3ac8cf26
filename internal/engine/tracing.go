package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("connector-service/engine")

// startSpan opens a span named connector.<gateway>.<flow> around one
// engine call, the unit of observability named in spec §4.3.
func startSpan(ctx context.Context, gatewayID, flowName string) (context.Context, trace.Span) {
	name := fmt.Sprintf("connector.%s.%s", gatewayID, flowName)
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("connector.gateway", gatewayID),
		attribute.String("connector.flow", flowName),
	))
}

// endSpan records the call's outcome on the span and closes it.
func endSpan(span trace.Span, httpStatus int, errKind string) {
	span.SetAttributes(attribute.Int("http.status_code", httpStatus))
	if errKind != "" {
		span.SetAttributes(attribute.String("connector.error_kind", errKind))
		span.SetStatus(codes.Error, errKind)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
