package mutagens

import "github.com/dop251/goja/token"

var arithmeticTable = map[token.Token][]token.Token{
	token.PLUS:      {token.MINUS},
	token.MINUS:     {token.PLUS},
	token.MULTIPLY:  {token.SLASH, token.REMAINDER},
	token.SLASH:     {token.MULTIPLY, token.REMAINDER},
	token.REMAINDER: {token.MULTIPLY, token.SLASH},
}

// IsArithmetic reports whether op is one of + - * / %.
func IsArithmetic(op token.Token) bool {
	_, ok := arithmeticTable[op]
	return ok
}

// Arithmetic returns the operators a binary arithmetic operator is swapped to.
func Arithmetic(op token.Token) []token.Token {
	return alternatives(arithmeticTable, op)
}
