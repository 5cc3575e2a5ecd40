// Package telemetry wraps OpenTelemetry tracing for the preview server.
//
// Spans are created from the global tracer provider. Configure it in
// main() before starting the server:
//
//	tp := sdktrace.NewTracerProvider(...)
//	otel.SetTracerProvider(tp)
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "reflow"

// Tracer returns the reflow tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartEvent starts a span for an event dispatched against a live node.
// End the span with EndEvent.
func StartEvent(ctx context.Context, eventType string, nodeID int) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "reflow.event",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("reflow.event_type", eventType),
			attribute.Int("reflow.node_id", nodeID),
		),
	)
}

// EndEvent records the dispatch outcome and the number of host mutations
// the event produced, then ends the span.
func EndEvent(span trace.Span, hostOps int, err error) {
	span.SetAttributes(attribute.Int("reflow.host_ops", hostOps))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
