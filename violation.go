package rql

import (
	"errors"
	"fmt"
)

var (
	ErrUnmatchedClosing         = errors.New("unmatched closing parenthesis")
	ErrUnmatchedOpening         = errors.New("unmatched opening parenthesis")
	ErrArityViolation           = errors.New("operator arity violation")
	ErrUnknownOperatorMisplaced = errors.New("unknown operator misplaced")
)

// ViolationKind classifies the first rule a query broke.
type ViolationKind string

const (
	ViolationUnmatchedClosing         ViolationKind = "unmatched_closing"
	ViolationUnmatchedOpening         ViolationKind = "unmatched_opening"
	ViolationArity                    ViolationKind = "arity"
	ViolationUnknownOperatorMisplaced ViolationKind = "unknown_operator_misplaced"
)

// String returns the string representation of the ViolationKind.
func (k ViolationKind) String() string {
	return string(k)
}

// Violation describes the first rule violation found in a query. Message is
// the fixed English sentence handed to the diagnostic sink.
type Violation struct {
	Kind ViolationKind `json:"kind"`

	// Operator is the offending operator name. Empty for balance violations.
	Operator string `json:"operator,omitempty"`

	// Class is the arity class the operator belongs to.
	Class ArityClass `json:"class,omitempty"`

	// Expected and Actual describe the arity mismatch, e.g. "at least 2
	// nested nodes" against 1.
	Expected string `json:"expected,omitempty"`
	Actual   int    `json:"actual,omitempty"`

	// Level is the nesting level of the offending node (0 for balance violations).
	Level int `json:"level,omitempty"`

	// Position is the byte offset of the offending parenthesis, or -1 when
	// the violation is not tied to a single character.
	Position int `json:"position"`

	Message string `json:"message"`
}

func (v *Violation) Error() string {
	if v == nil {
		return ""
	}
	return v.Message
}

// Unwrap maps the violation onto its sentinel so callers can use errors.Is.
func (v *Violation) Unwrap() error {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case ViolationUnmatchedClosing:
		return ErrUnmatchedClosing
	case ViolationUnmatchedOpening:
		return ErrUnmatchedOpening
	case ViolationArity:
		return ErrArityViolation
	case ViolationUnknownOperatorMisplaced:
		return ErrUnknownOperatorMisplaced
	}
	return nil
}

func unmatchedClosing(pos int) *Violation {
	return &Violation{
		Kind:     ViolationUnmatchedClosing,
		Position: pos,
		Message:  "Invalid closing parentheses count",
	}
}

func unmatchedOpening(pos int) *Violation {
	return &Violation{
		Kind:     ViolationUnmatchedOpening,
		Position: pos,
		Message:  "Invalid opening parentheses count",
	}
}

func arityViolation(node OperatorNode, class ArityClass, expected string, actual int) *Violation {
	return &Violation{
		Kind:     ViolationArity,
		Operator: node.Name,
		Class:    class,
		Expected: expected,
		Actual:   actual,
		Level:    node.Level,
		Position: -1,
		Message:  fmt.Sprintf("Node '%s' should %s", node.Name, expected),
	}
}

func misplacedOperator(node OperatorNode) *Violation {
	return &Violation{
		Kind:     ViolationUnknownOperatorMisplaced,
		Operator: node.Name,
		Class:    ClassFallback,
		Level:    node.Level,
		Position: -1,
		Message:  fmt.Sprintf("Block '%s' should have a value and be nested", node.Name),
	}
}
