package syntax

import "github.com/dop251/goja/ast"

// StripOptional returns a copy of the accessed chain of e with every ?. marker
// removed. Only the member/call spine is copied; arguments and computed member
// expressions are shared with the original and must not be mutated through
// the copy. The original chain is left untouched.
func StripOptional(e ast.Expression) ast.Expression {
	switch x := e.(type) {
	case *ast.Optional:
		return StripOptional(x.Expression)
	case *ast.DotExpression:
		c := *x
		c.Left = StripOptional(x.Left)

		return &c
	case *ast.PrivateDotExpression:
		c := *x
		c.Left = StripOptional(x.Left)

		return &c
	case *ast.BracketExpression:
		c := *x
		c.Left = StripOptional(x.Left)

		return &c
	case *ast.CallExpression:
		c := *x
		c.Callee = StripOptional(x.Callee)
		c.ArgumentList = append([]ast.Expression(nil), x.ArgumentList...)

		return &c
	}

	return e
}

// HasOptional reports whether the accessed chain of e contains a ?. marker.
func HasOptional(e ast.Expression) bool {
	switch x := e.(type) {
	case *ast.Optional:
		return true
	case *ast.DotExpression:
		return HasOptional(x.Left)
	case *ast.PrivateDotExpression:
		return HasOptional(x.Left)
	case *ast.BracketExpression:
		return HasOptional(x.Left)
	case *ast.CallExpression:
		return HasOptional(x.Callee)
	}

	return false
}
