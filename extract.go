package rql

import (
	"fmt"
	"strings"
)

// OperatorNode is one parenthesized call found in a query.
type OperatorNode struct {
	// Name is the identifier immediately preceding the opening parenthesis.
	Name string `json:"name"`

	// Payload holds the literal content of a leaf call, i.e. a call whose
	// parentheses enclose no further pair. Nil for interior nodes.
	Payload *string `json:"payload,omitempty"`

	// Level is the 1-based nesting depth of the parenthesis pair.
	Level int `json:"level"`

	// NestedCount is the number of nodes at Level+1. Only computed for nodes
	// without a payload; always 0 for leaves.
	NestedCount int `json:"nested_count"`
}

// IsLeaf reports whether the node carries a literal payload.
func (n OperatorNode) IsLeaf() bool {
	return n.Payload != nil
}

// String renders the node roughly as it appeared in the query.
func (n OperatorNode) String() string {
	if n.Payload != nil {
		return fmt.Sprintf("%s(%s)@%d", n.Name, *n.Payload, n.Level)
	}
	return fmt.Sprintf("%s(...)@%d[%d]", n.Name, n.Level, n.NestedCount)
}

// ExtractNodes scans a query and returns its operator nodes in textual order
// of their opening parentheses. The query is balance-checked first and the
// balance violation is returned if it fails.
//
// A query without any parentheses yields no nodes.
func ExtractNodes(query string) ([]OperatorNode, error) {
	if err := CheckBalance(query); err != nil {
		return nil, err
	}
	return extract(query), nil
}

// extract assumes a balanced query.
func extract(query string) []OperatorNode {
	var (
		nodes    []OperatorNode
		operator strings.Builder
		content  strings.Builder
		level    int
	)

	for i := 0; i < len(query); i++ {
		ch := query[i]

		if _, ok := closers[ch]; ok {
			level++
			nodes = append(nodes, OperatorNode{Name: operator.String(), Level: level})
			operator.Reset()
			content.Reset()
			continue
		}

		if isCloser(ch) {
			level--
			operator.Reset()
			if content.Len() == 0 {
				// The span held child calls, which are already nodes.
				continue
			}
			attachPayload(nodes, content.String())
			content.Reset()
			continue
		}

		if level > 0 {
			content.WriteByte(ch)
		}
		if ch != separator {
			operator.WriteByte(ch)
		}
	}

	return nodes
}

// attachPayload sets payload on the most recent node that has none yet.
func attachPayload(nodes []OperatorNode, payload string) {
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Payload == nil {
			nodes[i].Payload = &payload
			return
		}
	}
}
