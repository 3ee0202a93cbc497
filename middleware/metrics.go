package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/abakedjoetato/beacon"
)

// meterName is the instrumentation scope name for beacon metrics.
const meterName = "github.com/abakedjoetato/beacon"

// Metrics returns middleware that records per-invocation metrics using the
// global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - beacon.handler.duration (Float64Histogram): invocation time in
//     seconds, with attributes: event_name, status ("ok" or "error")
//   - beacon.handler.invocations (Int64Counter): total invocations,
//     with attributes: event_name, status ("ok" or "error")
func Metrics() beacon.Middleware {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter(meter metric.Meter) beacon.Middleware {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"beacon.handler.duration",
		metric.WithDescription("Duration of handler invocation in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	invocations, iErr := meter.Int64Counter(
		"beacon.handler.invocations",
		metric.WithDescription("Total number of handler invocations"),
		metric.WithUnit("{invocation}"),
	)
	_ = iErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, e beacon.Event, next beacon.Handler) (any, error) {
		start := time.Now()
		v, err := next(ctx, e)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		if err != nil {
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("event_name", e.Name),
			attribute.String("status", status),
		)

		duration.Record(ctx, elapsed, attrs)
		invocations.Add(ctx, 1, attrs)

		return v, err
	}
}
