package middleware_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/abakedjoetato/beacon"
	mw "github.com/abakedjoetato/beacon/middleware"
)

func setupTestTracer() (*tracetest.SpanRecorder, trace.Tracer) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	tracer := tp.Tracer("test")
	return sr, tracer
}

func TestTracing_CreatesSpan(t *testing.T) {
	sr, tracer := setupTestTracer()
	m := mw.TracingWithTracer(tracer)

	_, err := m(context.Background(), newTestEvent(), func(_ context.Context, _ beacon.Event) (any, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	if spans[0].Name() != "beacon.handler.invoke" {
		t.Errorf("expected span name %q, got %q", "beacon.handler.invoke", spans[0].Name())
	}
}

func TestTracing_SpanAttributes(t *testing.T) {
	sr, tracer := setupTestTracer()
	m := mw.TracingWithTracer(tracer)
	e := newTestEvent()

	_, _ = m(context.Background(), e, func(_ context.Context, _ beacon.Event) (any, error) {
		return nil, nil
	})

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	expected := map[string]string{
		"beacon.event.name":  e.Name,
		"beacon.dispatch.id": e.ID.String(),
	}

	attrMap := make(map[string]string)
	for _, a := range spans[0].Attributes() {
		if a.Value.Type() == attribute.STRING {
			attrMap[string(a.Key)] = a.Value.AsString()
		}
	}

	for k, want := range expected {
		if got := attrMap[k]; got != want {
			t.Errorf("attribute %s = %q, want %q", k, got, want)
		}
	}
}

func TestTracing_ErrorStatus(t *testing.T) {
	sr, tracer := setupTestTracer()
	m := mw.TracingWithTracer(tracer)

	wantErr := errors.New("handler exploded")
	_, err := m(context.Background(), newTestEvent(), func(_ context.Context, _ beacon.Event) (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	status := spans[0].Status()
	if status.Code != codes.Error {
		t.Errorf("status code = %v, want %v", status.Code, codes.Error)
	}
	if status.Description != "handler exploded" {
		t.Errorf("status description = %q, want %q", status.Description, "handler exploded")
	}
}

func TestTracing_OkStatus(t *testing.T) {
	sr, tracer := setupTestTracer()
	m := mw.TracingWithTracer(tracer)

	_, _ = m(context.Background(), newTestEvent(), func(_ context.Context, _ beacon.Event) (any, error) {
		return "fine", nil
	})

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := spans[0].Status().Code; got != codes.Ok {
		t.Errorf("status code = %v, want %v", got, codes.Ok)
	}
}
