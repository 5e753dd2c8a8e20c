package mutagens

import "github.com/dop251/goja/token"

var relationalTable = map[token.Token][]token.Token{
	token.LESS:             {token.LESS_OR_EQUAL, token.GREATER_OR_EQUAL},
	token.LESS_OR_EQUAL:    {token.LESS, token.GREATER},
	token.GREATER:          {token.LESS_OR_EQUAL, token.GREATER_OR_EQUAL},
	token.GREATER_OR_EQUAL: {token.GREATER, token.LESS},
}

// flipped negates an equality operator; loosened trades strict equality for
// loose equality and back.
var (
	flipped = map[token.Token]token.Token{
		token.EQUAL:            token.NOT_EQUAL,
		token.NOT_EQUAL:        token.EQUAL,
		token.STRICT_EQUAL:     token.STRICT_NOT_EQUAL,
		token.STRICT_NOT_EQUAL: token.STRICT_EQUAL,
	}
	loosened = map[token.Token]token.Token{
		token.EQUAL:            token.STRICT_EQUAL,
		token.NOT_EQUAL:        token.STRICT_NOT_EQUAL,
		token.STRICT_EQUAL:     token.EQUAL,
		token.STRICT_NOT_EQUAL: token.NOT_EQUAL,
	}
)

// IsComparison reports whether op is a relational or equality operator.
func IsComparison(op token.Token) bool {
	if _, ok := relationalTable[op]; ok {
		return true
	}

	_, ok := flipped[op]

	return ok
}

// Comparison returns the operators a relational or equality operator is
// swapped to. When either operand is a literal null, === and !== are not
// loosened; == and != are still tightened.
func Comparison(op token.Token, nullOperand bool) []token.Token {
	if _, ok := relationalTable[op]; ok {
		return alternatives(relationalTable, op)
	}

	flip, ok := flipped[op]
	if !ok {
		return nil
	}

	out := []token.Token{flip}
	if !nullOperand || !isStrict(op) {
		out = append(out, loosened[op])
	}

	return out
}

func isStrict(op token.Token) bool {
	return op == token.STRICT_EQUAL || op == token.STRICT_NOT_EQUAL
}
