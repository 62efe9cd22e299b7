package rql

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Checker is the one-method contract for RQL syntax validation.
type Checker interface {
	Validate(query string) bool
}

// ValidatorConfig configures a Validator. The zero value is usable.
type ValidatorConfig struct {
	// Diagnostic, when set, receives a human-readable sentence describing the
	// first violation. It is called once per failing validation and never
	// for valid queries.
	Diagnostic func(message string)

	// OnEvent, when set, receives started/passed/failed events.
	OnEvent EventHandler

	// Logger receives debug records for each validation. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Validator checks RQL queries for syntactic validity. It holds no state
// between calls and is safe for concurrent use.
type Validator struct {
	diagnostic func(string)
	onEvent    EventHandler
	logger     *slog.Logger
}

var _ Checker = (*Validator)(nil)

// NewValidator creates a Validator from cfg.
func NewValidator(cfg ValidatorConfig) *Validator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		diagnostic: cfg.Diagnostic,
		onEvent:    cfg.OnEvent,
		logger:     logger,
	}
}

// Validate reports whether query is a well-formed RQL expression.
func (v *Validator) Validate(query string) bool {
	return v.Check(query) == nil
}

// Check runs the full pipeline and returns the first violation as a
// *Violation, or nil when the query is valid.
func (v *Validator) Check(query string) error {
	start := time.Now()
	id := ""
	if v.onEvent != nil {
		id = uuid.New().String()
		e := NewEvent(EventValidationStarted, id)
		e.QueryLength = len(query)
		v.onEvent(e)
	}

	nodes, err := ExtractNodes(query)
	if err == nil {
		nodes = AnnotateNestedCount(nodes)
		err = CheckGrammar(nodes)
	}

	if err != nil {
		var violation *Violation
		errors.As(err, &violation)
		v.reportFailure(id, query, len(nodes), violation, time.Since(start))
		return err
	}

	v.logger.LogAttrs(context.Background(), slog.LevelDebug, "rql query valid",
		slog.String("validation_id", id),
		slog.Int("nodes", len(nodes)),
	)
	if v.onEvent != nil {
		e := NewEvent(EventValidationPassed, id).WithElapsed(time.Since(start))
		e.QueryLength = len(query)
		e.NodeCount = len(nodes)
		v.onEvent(e)
	}
	return nil
}

func (v *Validator) reportFailure(id, query string, nodeCount int, violation *Violation, elapsed time.Duration) {
	v.logger.LogAttrs(context.Background(), slog.LevelDebug, "rql query invalid",
		slog.String("validation_id", id),
		slog.String("kind", violation.Kind.String()),
		slog.String("operator", violation.Operator),
		slog.Int("level", violation.Level),
		slog.String("message", violation.Message),
	)

	if v.diagnostic != nil {
		v.diagnostic(violation.Message)
	}

	if v.onEvent != nil {
		e := NewEvent(EventValidationFailed, id).
			WithElapsed(elapsed).
			WithViolation(violation)
		e.QueryLength = len(query)
		e.NodeCount = nodeCount
		v.onEvent(e)
	}
}

// ValidateSyntax checks whether a query is syntactically valid.
// Returns nil if valid, or a *Violation describing the first problem.
func ValidateSyntax(query string) error {
	return defaultValidator.Check(query)
}

var defaultValidator = &Validator{logger: slog.New(slog.DiscardHandler)}
