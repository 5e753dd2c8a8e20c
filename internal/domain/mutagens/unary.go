package mutagens

import "github.com/dop251/goja/token"

// Unary returns the sign swap of a unary + or -.
func Unary(op token.Token) []token.Token {
	switch op {
	case token.PLUS:
		return []token.Token{token.MINUS}
	case token.MINUS:
		return []token.Token{token.PLUS}
	default:
		return nil
	}
}

// Update is one variant of a ++ or -- expression.
type Update struct {
	Op      token.Token
	Postfix bool
}

// Updates returns the variants of an update expression: the prefix/postfix
// flip and the increment/decrement swap.
func Updates(op token.Token, postfix bool) []Update {
	var swapped token.Token

	switch op {
	case token.INCREMENT:
		swapped = token.DECREMENT
	case token.DECREMENT:
		swapped = token.INCREMENT
	default:
		return nil
	}

	return []Update{
		{Op: op, Postfix: !postfix},
		{Op: swapped, Postfix: postfix},
	}
}
