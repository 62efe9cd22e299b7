package rql

import (
	"errors"
	"testing"
)

func TestLookupRule(t *testing.T) {
	tests := []struct {
		name  string
		class ArityClass
		known bool
	}{
		{"eq", ClassBinaryLeaf, true},
		{"like", ClassBinaryLeaf, true},
		{"exists", ClassUnaryLeaf, true},
		{"ie", ClassUnaryLeaf, true},
		{"in", ClassListCombinator, true},
		{"out", ClassListCombinator, true},
		{"not", ClassUnaryLogical, true},
		{"and", ClassNaryLogical, true},
		{"or", ClassNaryLogical, true},
		{"name", ClassFallback, false},
		{"EQ", ClassFallback, false},
		{"", ClassFallback, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, known := LookupRule(tt.name)
			if class != tt.class || known != tt.known {
				t.Errorf("LookupRule(%q) = (%s, %v), want (%s, %v)", tt.name, class, known, tt.class, tt.known)
			}
		})
	}
}

func TestCheckGrammar(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []OperatorNode
		wantErr  error
		operator string
	}{
		{
			name:  "binary leaf",
			nodes: []OperatorNode{leaf("eq", "a,b", 1)},
		},
		{
			name:     "binary leaf without comma",
			nodes:    []OperatorNode{leaf("eq", "a", 1)},
			wantErr:  ErrArityViolation,
			operator: "eq",
		},
		{
			name:     "binary leaf with two commas",
			nodes:    []OperatorNode{leaf("ge", "a,b,c", 1)},
			wantErr:  ErrArityViolation,
			operator: "ge",
		},
		{
			name:     "binary leaf without payload",
			nodes:    []OperatorNode{inner("lt", 1)},
			wantErr:  ErrArityViolation,
			operator: "lt",
		},
		{
			name:  "unary leaf",
			nodes: []OperatorNode{leaf("exists", "product.status", 1)},
		},
		{
			name:     "unary leaf with comma",
			nodes:    []OperatorNode{leaf("eqf", "a,b", 1)},
			wantErr:  ErrArityViolation,
			operator: "eqf",
		},
		{
			name:     "n-ary with one child",
			nodes:    []OperatorNode{{Name: "and", Level: 1, NestedCount: 1}, leaf("eq", "a,b", 2)},
			wantErr:  ErrArityViolation,
			operator: "and",
		},
		{
			name: "n-ary with three children",
			nodes: []OperatorNode{
				{Name: "or", Level: 1, NestedCount: 3},
				leaf("eq", "a,b", 2), leaf("eq", "c,d", 2), leaf("eq", "e,f", 2),
			},
		},
		{
			name:     "unknown at top level",
			nodes:    []OperatorNode{leaf("nonexistent", "name", 1)},
			wantErr:  ErrUnknownOperatorMisplaced,
			operator: "nonexistent",
		},
		{
			name:     "unknown without payload",
			nodes:    []OperatorNode{{Name: "in", Level: 1, NestedCount: 1}, inner("name", 2)},
			wantErr:  ErrUnknownOperatorMisplaced,
			operator: "name",
		},
		{
			name: "first violation wins",
			nodes: []OperatorNode{
				{Name: "not", Level: 1, NestedCount: 2},
				leaf("eq", "a", 2),
				leaf("eq", "c,d", 2),
			},
			wantErr:  ErrArityViolation,
			operator: "not",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckGrammar(tt.nodes)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var v *Violation
			if !errors.As(err, &v) {
				t.Fatalf("error %T is not a *Violation", err)
			}
			if v.Operator != tt.operator {
				t.Errorf("Operator = %q, want %q", v.Operator, tt.operator)
			}
		})
	}
}

func TestCheckGrammar_Messages(t *testing.T) {
	tests := []struct {
		nodes []OperatorNode
		want  string
	}{
		{
			[]OperatorNode{{Name: "and", Level: 1, NestedCount: 1}},
			"Node 'and' should have at least 2 nested nodes",
		},
		{
			[]OperatorNode{{Name: "not", Level: 1, NestedCount: 0}},
			"Node 'not' should have 1 nested node",
		},
		{
			[]OperatorNode{{Name: "in", Level: 1, NestedCount: 0}},
			"Node 'in' should have 1 nested parentheses block",
		},
		{
			[]OperatorNode{leaf("eqf", "a,b", 1)},
			"Node 'eqf' should not have nested parentheses, must contain a field, the field should not contain a comma",
		},
		{
			[]OperatorNode{leaf("foo", "a", 1)},
			"Block 'foo' should have a value and be nested",
		},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			err := CheckGrammar(tt.nodes)
			if err == nil || err.Error() != tt.want {
				t.Errorf("message = %v, want %q", err, tt.want)
			}
		})
	}
}
