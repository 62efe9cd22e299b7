// Package otel provides OpenTelemetry integration for RQL validation events.
package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/rql"
)

// TracingHandler translates validation events into OpenTelemetry spans. Each
// validation gets one span, opened on validation.started and closed on the
// matching passed or failed event.
type TracingHandler struct {
	tracer trace.Tracer
	parent context.Context

	mu    sync.Mutex
	spans map[string]trace.Span // validationID -> span
}

// NewTracingHandler creates a new TracingHandler that uses the given tracer
// to create spans from validation events.
func NewTracingHandler(tracer trace.Tracer) *TracingHandler {
	return &TracingHandler{
		tracer: tracer,
		parent: context.Background(),
		spans:  make(map[string]trace.Span),
	}
}

// WithParent returns a handler whose spans are children of the span carried
// by ctx. Span bookkeeping is not shared with h.
func (h *TracingHandler) WithParent(ctx context.Context) *TracingHandler {
	child := NewTracingHandler(h.tracer)
	child.parent = ctx
	return child
}

// Handle processes a validation event and creates or ends spans accordingly.
// It implements rql.EventHandler semantics.
func (h *TracingHandler) Handle(e rql.Event) {
	switch e.Kind {
	case rql.EventValidationStarted:
		h.handleStarted(e)
	case rql.EventValidationPassed:
		h.handlePassed(e)
	case rql.EventValidationFailed:
		h.handleFailed(e)
	}
}

func (h *TracingHandler) handleStarted(e rql.Event) {
	_, span := h.tracer.Start(h.parent, "rql.validate",
		trace.WithAttributes(
			attribute.String("rql.validation_id", e.ValidationID),
			attribute.Int("rql.query_length", e.QueryLength),
		),
		trace.WithTimestamp(e.Time),
	)

	h.mu.Lock()
	h.spans[e.ValidationID] = span
	h.mu.Unlock()
}

func (h *TracingHandler) handlePassed(e rql.Event) {
	span, ok := h.take(e.ValidationID)
	if !ok {
		return
	}
	span.SetAttributes(
		attribute.Bool("rql.valid", true),
		attribute.Int("rql.node_count", e.NodeCount),
	)
	span.SetStatus(codes.Ok, "")
	span.End(trace.WithTimestamp(e.Time))
}

func (h *TracingHandler) handleFailed(e rql.Event) {
	span, ok := h.take(e.ValidationID)
	if !ok {
		return
	}
	span.SetAttributes(
		attribute.Bool("rql.valid", false),
		attribute.Int("rql.node_count", e.NodeCount),
	)

	msg := "validation failed"
	if v := e.Violation; v != nil {
		msg = v.Message
		span.SetAttributes(
			attribute.String("rql.violation.kind", v.Kind.String()),
			attribute.String("rql.violation.operator", v.Operator),
			attribute.Int("rql.violation.level", v.Level),
		)
		span.RecordError(v, trace.WithTimestamp(e.Time))
	}
	span.SetStatus(codes.Error, msg)
	span.End(trace.WithTimestamp(e.Time))
}

func (h *TracingHandler) take(validationID string) (trace.Span, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	span, ok := h.spans[validationID]
	if ok {
		delete(h.spans, validationID)
	}
	return span, ok
}

// ActiveSpanContext returns the SpanContext of an in-flight validation.
// Returns an empty SpanContext if not found.
func (h *TracingHandler) ActiveSpanContext(validationID string) trace.SpanContext {
	h.mu.Lock()
	span, ok := h.spans[validationID]
	h.mu.Unlock()

	if !ok {
		return trace.SpanContext{}
	}
	return span.SpanContext()
}
