package rql

const (
	openParen  = '('
	closeParen = ')'
	separator  = ','
)

// closers maps each opening delimiter to the closer it expects.
var closers = map[byte]byte{openParen: closeParen}

// isCloser reports whether ch closes some delimiter pair.
func isCloser(ch byte) bool {
	for _, c := range closers {
		if c == ch {
			return true
		}
	}
	return false
}

type pendingCloser struct {
	want byte
	pos  int
}

// CheckBalance verifies that every closing delimiter matches the most recent
// unmatched opening delimiter and that none is left open at the end of the
// input. Other characters are ignored.
func CheckBalance(query string) error {
	var stack []pendingCloser

	for i := 0; i < len(query); i++ {
		ch := query[i]
		if want, ok := closers[ch]; ok {
			stack = append(stack, pendingCloser{want: want, pos: i})
			continue
		}
		if !isCloser(ch) {
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1].want != ch {
			return unmatchedClosing(i)
		}
		stack = stack[:len(stack)-1]
	}

	if len(stack) > 0 {
		return unmatchedOpening(stack[0].pos)
	}
	return nil
}
