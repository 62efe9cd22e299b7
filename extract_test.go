package rql

import (
	"errors"
	"reflect"
	"testing"
)

func leaf(name, payload string, level int) OperatorNode {
	return OperatorNode{Name: name, Payload: &payload, Level: level}
}

func inner(name string, level int) OperatorNode {
	return OperatorNode{Name: name, Level: level}
}

func TestExtractNodes(t *testing.T) {
	tests := []struct {
		input string
		want  []OperatorNode
	}{
		{
			input: "eq(name,John)",
			want:  []OperatorNode{leaf("eq", "name,John", 1)},
		},
		{
			input: "or(and(eq(name,John),eq(surname,Smith)),eq(surname,Doe))",
			want: []OperatorNode{
				inner("or", 1),
				inner("and", 2),
				leaf("eq", "name,John", 3),
				leaf("eq", "surname,Smith", 3),
				leaf("eq", "surname,Doe", 2),
			},
		},
		{
			input: "not(in(name,(John,Jackson,Liam)))",
			want: []OperatorNode{
				inner("not", 1),
				inner("in", 2),
				leaf("name", "John,Jackson,Liam", 3),
			},
		},
		{
			input: "eqf()",
			want:  []OperatorNode{inner("eqf", 1)},
		},
		{
			input: "(a,b)",
			want:  []OperatorNode{leaf("", "a,b", 1)},
		},
		{
			input: "in(name,())",
			want: []OperatorNode{
				inner("in", 1),
				inner("name", 2),
			},
		},
		{
			// Trailing content after a child call lands on the enclosing node.
			input: "and(eq(a,b),c)",
			want: []OperatorNode{
				leaf("and", ",c", 1),
				leaf("eq", "a,b", 2),
			},
		},
		{
			input: "status,new",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ExtractNodes(tt.input)
			if err != nil {
				t.Fatalf("ExtractNodes(%q) unexpected error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractNodes(%q)\n got: %v\nwant: %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractNodes_Unbalanced(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"eq(a,b))", ErrUnmatchedClosing},
		{"eq(a,b", ErrUnmatchedOpening},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			nodes, err := ExtractNodes(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ExtractNodes(%q) error = %v, want %v", tt.input, err, tt.want)
			}
			if nodes != nil {
				t.Errorf("expected no nodes, got %v", nodes)
			}
		})
	}
}

func TestOperatorNode_String(t *testing.T) {
	if got := leaf("eq", "a,b", 2).String(); got != "eq(a,b)@2" {
		t.Errorf("leaf String() = %q", got)
	}
	n := inner("and", 1)
	n.NestedCount = 2
	if got := n.String(); got != "and(...)@1[2]" {
		t.Errorf("inner String() = %q", got)
	}
	if !leaf("eq", "a,b", 1).IsLeaf() || inner("or", 1).IsLeaf() {
		t.Error("IsLeaf mismatch")
	}
}
