package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/petal-labs/rql"
)

// MetricsHandler translates validation events into OpenTelemetry metrics.
// It records counters for validations and violations, and histograms for
// duration and node count.
type MetricsHandler struct {
	validations metric.Int64Counter
	violations  metric.Int64Counter
	duration    metric.Float64Histogram
	nodes       metric.Int64Histogram
}

// NewMetricsHandler creates a MetricsHandler that uses the given meter to
// create its instruments.
func NewMetricsHandler(meter metric.Meter) (*MetricsHandler, error) {
	validations, err := meter.Int64Counter("rql.validations",
		metric.WithDescription("Number of completed query validations"),
	)
	if err != nil {
		return nil, err
	}

	violations, err := meter.Int64Counter("rql.violations",
		metric.WithDescription("Number of rule violations by kind"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("rql.validation.duration",
		metric.WithDescription("Duration of query validation in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	nodes, err := meter.Int64Histogram("rql.query.nodes",
		metric.WithDescription("Operator nodes extracted per query"),
	)
	if err != nil {
		return nil, err
	}

	return &MetricsHandler{
		validations: validations,
		violations:  violations,
		duration:    duration,
		nodes:       nodes,
	}, nil
}

// Handle processes a validation event and records the appropriate metrics.
// It implements rql.EventHandler semantics.
func (h *MetricsHandler) Handle(e rql.Event) {
	switch e.Kind {
	case rql.EventValidationPassed:
		h.record(e, "valid")
	case rql.EventValidationFailed:
		h.record(e, "invalid")
		h.handleViolation(e)
	}
}

func (h *MetricsHandler) record(e rql.Event, result string) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("result", result))
	h.validations.Add(ctx, 1, attrs)
	h.duration.Record(ctx, e.Elapsed.Seconds(), attrs)
	h.nodes.Record(ctx, int64(e.NodeCount), attrs)
}

func (h *MetricsHandler) handleViolation(e rql.Event) {
	if e.Violation == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("kind", e.Violation.Kind.String()),
	}
	if e.Violation.Class != "" {
		attrs = append(attrs, attribute.String("class", e.Violation.Class.String()))
	}
	h.violations.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}
