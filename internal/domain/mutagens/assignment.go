package mutagens

import "github.com/dop251/goja/token"

// Compound assignments are keyed by their base operator, the way the goja
// AST stores them: += is PLUS, ??= is COALESCE.
var assignmentTable = map[token.Token][]token.Token{
	token.PLUS:        {token.MINUS},
	token.MINUS:       {token.PLUS},
	token.MULTIPLY:    {token.SLASH},
	token.SLASH:       {token.MULTIPLY},
	token.REMAINDER:   {token.MULTIPLY},
	token.SHIFT_LEFT:  {token.SHIFT_RIGHT},
	token.SHIFT_RIGHT: {token.SHIFT_LEFT},
	token.AND:         {token.OR},
	token.OR:          {token.AND},
	token.LOGICAL_AND: {token.LOGICAL_OR},
	token.LOGICAL_OR:  {token.LOGICAL_AND},
	token.COALESCE:    {token.LOGICAL_AND},
}

// Assignment returns the base operators a compound assignment is swapped to.
// Plain = has none.
func Assignment(op token.Token) []token.Token {
	return alternatives(assignmentTable, op)
}
