package mutagens

import "github.com/dop251/goja/token"

var logicalOps = []token.Token{token.LOGICAL_AND, token.LOGICAL_OR, token.COALESCE}

// IsLogical reports whether op is && || or ??.
func IsLogical(op token.Token) bool {
	for _, l := range logicalOps {
		if l == op {
			return true
		}
	}

	return false
}

// Logical returns the two other logical operators.
func Logical(op token.Token) []token.Token {
	if !IsLogical(op) {
		return nil
	}

	var out []token.Token

	for _, l := range logicalOps {
		if l != op {
			out = append(out, l)
		}
	}

	return out
}
