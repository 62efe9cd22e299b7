package rql

// AnnotateNestedCount returns a copy of nodes with NestedCount filled in.
//
// For every node without a payload, NestedCount is the number of nodes in the
// whole sequence sitting at exactly Level+1. The count is by level rather than
// by subtree ownership, so siblings of a node's children in other branches are
// counted too. Existing validators rely on this flat policy; keep it.
func AnnotateNestedCount(nodes []OperatorNode) []OperatorNode {
	if len(nodes) == 0 {
		return nil
	}

	perLevel := make(map[int]int)
	for _, n := range nodes {
		perLevel[n.Level]++
	}

	out := make([]OperatorNode, len(nodes))
	for i, n := range nodes {
		if n.Payload == nil {
			n.NestedCount = perLevel[n.Level+1]
		} else {
			n.NestedCount = 0
		}
		out[i] = n
	}
	return out
}
