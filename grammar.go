package rql

import "strings"

// ArityClass groups operators that share the same shape requirements.
type ArityClass string

const (
	// ClassBinaryLeaf operators take a "field,value" payload: eq(name,John).
	ClassBinaryLeaf ArityClass = "binary_leaf"

	// ClassUnaryLeaf operators take a single field: eqf(isActive).
	ClassUnaryLeaf ArityClass = "unary_leaf"

	// ClassListCombinator operators take a field and one nested value
	// block: in(name,(John,Liam)).
	ClassListCombinator ArityClass = "list_combinator"

	// ClassUnaryLogical operators wrap exactly one nested node: not(eq(id,1)).
	ClassUnaryLogical ArityClass = "unary_logical"

	// ClassNaryLogical operators combine two or more nested nodes.
	ClassNaryLogical ArityClass = "nary_logical"

	// ClassFallback covers every name outside the operator table.
	ClassFallback ArityClass = "fallback"
)

// String returns the string representation of the ArityClass.
func (c ArityClass) String() string {
	return string(c)
}

// LookupRule returns the arity class of a known operator. Unknown names
// report ClassFallback and false.
func LookupRule(name string) (ArityClass, bool) {
	switch name {
	case "eq", "ne", "lt", "gt", "le", "ge", "like":
		return ClassBinaryLeaf, true
	case "exists", "eqf", "eqt", "eqn", "ie":
		return ClassUnaryLeaf, true
	case "in", "out":
		return ClassListCombinator, true
	case "not":
		return ClassUnaryLogical, true
	case "and", "or":
		return ClassNaryLogical, true
	}
	return ClassFallback, false
}

// CheckGrammar validates annotated nodes against the operator table in order
// and returns the first violation found. Payload values are never
// interpreted; only their presence and comma count matter.
func CheckGrammar(nodes []OperatorNode) error {
	for _, n := range nodes {
		if v := checkNode(n); v != nil {
			return v
		}
	}
	return nil
}

func checkNode(n OperatorNode) *Violation {
	class, _ := LookupRule(n.Name)

	switch class {
	case ClassBinaryLeaf:
		if n.NestedCount != 0 || n.Payload == nil || strings.Count(*n.Payload, string(separator)) != 1 {
			return arityViolation(n, class,
				"not have nested parentheses, must contain a field and a value separated by a single comma",
				n.NestedCount)
		}
	case ClassUnaryLeaf:
		if n.NestedCount != 0 || n.Payload == nil || strings.Contains(*n.Payload, string(separator)) {
			return arityViolation(n, class,
				"not have nested parentheses, must contain a field, the field should not contain a comma",
				n.NestedCount)
		}
	case ClassListCombinator:
		if n.NestedCount != 1 {
			return arityViolation(n, class, "have 1 nested parentheses block", n.NestedCount)
		}
	case ClassUnaryLogical:
		if n.NestedCount != 1 {
			return arityViolation(n, class, "have 1 nested node", n.NestedCount)
		}
	case ClassNaryLogical:
		if n.NestedCount < 2 {
			return arityViolation(n, class, "have at least 2 nested nodes", n.NestedCount)
		}
	default:
		if n.Payload == nil || n.Level <= 1 {
			return misplacedOperator(n)
		}
	}
	return nil
}
