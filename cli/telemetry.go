package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/rql"
	rqlotel "github.com/petal-labs/rql/otel"
)

const instrumentationName = "github.com/petal-labs/rql/cli"

// session bundles what a subcommand needs to validate queries: a logger and
// an observer wired to the configured OpenTelemetry providers.
type session struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	observer *rqlotel.Observer
	shutdown func(context.Context) error
}

// newSession reads the persistent --verbose, --quiet and --otlp-endpoint
// flags. When no endpoint is given the global (usually no-op) providers are
// used.
func newSession(cmd *cobra.Command) (*session, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	endpoint, _ := cmd.Flags().GetString("otlp-endpoint")

	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	s := &session{
		logger:   logger,
		tracer:   otelapi.GetTracerProvider().Tracer(instrumentationName),
		shutdown: func(context.Context) error { return nil },
	}

	if endpoint != "" {
		exporter, err := otlptracehttp.New(cmd.Context(), otlptracehttp.WithEndpointURL(endpoint))
		if err != nil {
			return nil, fmt.Errorf("creating otlp trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		s.tracer = tp.Tracer(instrumentationName)
		s.shutdown = tp.Shutdown
		logger.Debug("exporting spans", "endpoint", endpoint)
	}

	observer, err := rqlotel.NewObserver(otelapi.GetMeterProvider().Meter(instrumentationName), s.tracer)
	if err != nil {
		return nil, fmt.Errorf("initializing validation observability: %w", err)
	}
	s.observer = observer
	return s, nil
}

// validator returns a Validator reporting to the session's observer.
// Spans are parented under ctx when it carries one.
func (s *session) validator(ctx context.Context) *rql.Validator {
	tracing := s.observer.Tracing.WithParent(ctx)
	return rql.NewValidator(rql.ValidatorConfig{
		Logger:  s.logger,
		OnEvent: rql.MultiEventHandler(tracing.Handle, s.observer.Metrics.Handle),
	})
}

// close flushes exported spans. Errors are logged, not returned, so they
// never mask the command's own exit status.
func (s *session) close() {
	if err := s.shutdown(context.Background()); err != nil {
		s.logger.Warn("flushing spans failed", "error", err)
	}
}
