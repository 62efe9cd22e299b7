package rql

import (
	"time"
)

// EventKind identifies the type of event emitted by a Validator.
type EventKind string

const (
	// EventValidationStarted is emitted before the balance check runs.
	EventValidationStarted EventKind = "validation.started"

	// EventValidationPassed is emitted when every node satisfies its rule.
	EventValidationPassed EventKind = "validation.passed"

	// EventValidationFailed is emitted on the first violation.
	EventValidationFailed EventKind = "validation.failed"
)

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	return string(k)
}

// Event is a small record of one validation call. Events never carry the
// query text itself, only its length.
type Event struct {
	// Kind identifies the event type.
	Kind EventKind

	// ValidationID correlates the started event with its outcome.
	ValidationID string

	// Time is when the event occurred.
	Time time.Time

	// Elapsed is the duration since the validation started.
	Elapsed time.Duration

	// QueryLength is the byte length of the validated query.
	QueryLength int

	// NodeCount is the number of operator nodes extracted. Zero when the
	// balance check failed.
	NodeCount int

	// Violation is set on EventValidationFailed.
	Violation *Violation
}

// NewEvent creates a new event with the current timestamp.
func NewEvent(kind EventKind, validationID string) Event {
	return Event{
		Kind:         kind,
		ValidationID: validationID,
		Time:         time.Now(),
	}
}

// WithElapsed sets the elapsed duration on the event.
func (e Event) WithElapsed(elapsed time.Duration) Event {
	e.Elapsed = elapsed
	return e
}

// WithViolation attaches the violation that failed the validation.
func (e Event) WithViolation(v *Violation) Event {
	e.Violation = v
	return e
}

// EventHandler is a function type for handling events.
// Handlers run synchronously on the validating goroutine and must not block.
type EventHandler func(Event)

// MultiEventHandler combines multiple handlers into one.
func MultiEventHandler(handlers ...EventHandler) EventHandler {
	return func(e Event) {
		for _, h := range handlers {
			if h != nil {
				h(e)
			}
		}
	}
}
