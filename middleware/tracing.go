package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abakedjoetato/beacon"
)

// tracerName is the instrumentation scope name for beacon tracing.
const tracerName = "github.com/abakedjoetato/beacon"

// Tracing returns middleware that wraps each handler invocation in an
// OpenTelemetry span. If no TracerProvider is configured globally, the
// default noop tracer is used and this middleware becomes a pass-through
// with zero overhead.
//
// Span attributes include: beacon.event.name, beacon.dispatch.id.
// On error, the span status is set to codes.Error with the error message.
func Tracing() beacon.Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) beacon.Middleware {
	return func(ctx context.Context, e beacon.Event, next beacon.Handler) (any, error) {
		ctx, span := tracer.Start(ctx, "beacon.handler.invoke",
			trace.WithAttributes(
				attribute.String("beacon.event.name", e.Name),
				attribute.String("beacon.dispatch.id", e.ID.String()),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		v, err := next(ctx, e)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return v, err
	}
}
