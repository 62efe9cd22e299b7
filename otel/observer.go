package otel

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/rql"
)

// Observer records validation events as both spans and metrics.
type Observer struct {
	Tracing *TracingHandler
	Metrics *MetricsHandler
}

// NewObserver creates an observer bound to the provided meter/tracer.
func NewObserver(meter metric.Meter, tracer trace.Tracer) (*Observer, error) {
	metrics, err := NewMetricsHandler(meter)
	if err != nil {
		return nil, err
	}
	return &Observer{
		Tracing: NewTracingHandler(tracer),
		Metrics: metrics,
	}, nil
}

// Handler returns an rql.EventHandler suitable for ValidatorConfig.OnEvent.
func (o *Observer) Handler() rql.EventHandler {
	if o == nil {
		return nil
	}
	return rql.MultiEventHandler(o.Tracing.Handle, o.Metrics.Handle)
}
