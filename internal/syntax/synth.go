package syntax

import (
	"strconv"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/unistring"
)

// TrackingHandle is the name the instrumented program uses for the tracking
// object. It is bound as the only parameter of the compiled entry function.
const TrackingHandle = "__cov__"

// Space names one of the three independent coverage id spaces.
type Space string

const (
	SpaceFunc   Space = "func"
	SpaceStmt   Space = "stmt"
	SpaceBranch Space = "branch"
)

// Ident builds an identifier reference.
func Ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: unistring.String(name)}
}

// Number builds an integer literal.
func Number(n int) *ast.NumberLiteral {
	return &ast.NumberLiteral{Literal: strconv.Itoa(n), Value: int64(n)}
}

// Bool builds a boolean literal.
func Bool(v bool) *ast.BooleanLiteral {
	return &ast.BooleanLiteral{Literal: strconv.FormatBool(v), Value: v}
}

// String builds a double-quoted string literal.
func String(v string) *ast.StringLiteral {
	return &ast.StringLiteral{Literal: Quote(v), Value: unistring.String(v)}
}

// TemplateElement builds a template quasi from its raw text.
func TemplateElement(raw string) *ast.TemplateElement {
	return &ast.TemplateElement{Literal: raw, Parsed: unistring.String(raw), Valid: true}
}

// TrackCall builds `__cov__.<space>.add(<id>)`.
func TrackCall(space Space, id int) *ast.CallExpression {
	handle := &ast.DotExpression{
		Left:       Ident(TrackingHandle),
		Identifier: *Ident(string(space)),
	}

	return &ast.CallExpression{
		Callee: &ast.DotExpression{
			Left:       handle,
			Identifier: *Ident("add"),
		},
		ArgumentList: []ast.Expression{Number(id)},
	}
}

// TrackStmt builds `__cov__.<space>.add(<id>);`.
func TrackStmt(space Space, id int) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Expression: TrackCall(space, id)}
}

// Seq builds a sequence expression evaluating exprs left to right.
func Seq(exprs ...ast.Expression) *ast.SequenceExpression {
	return &ast.SequenceExpression{Sequence: exprs}
}

// Tracked wraps expr as `(__cov__.<space>.add(<id>), expr)`.
func Tracked(space Space, id int, expr ast.Expression) *ast.SequenceExpression {
	return Seq(TrackCall(space, id), expr)
}

// ToBlock returns stmt as a block, wrapping it when it is not one already.
// A nil statement yields an empty block.
func ToBlock(stmt ast.Statement) *ast.BlockStatement {
	switch s := stmt.(type) {
	case nil:
		return &ast.BlockStatement{}
	case *ast.BlockStatement:
		return s
	}

	return &ast.BlockStatement{
		LeftBrace:  stmt.Idx0(),
		List:       []ast.Statement{stmt},
		RightBrace: stmt.Idx1() - 1,
	}
}

// Prepend inserts stmt at the front of block and returns block.
func Prepend(stmt ast.Statement, block *ast.BlockStatement) *ast.BlockStatement {
	block.List = append([]ast.Statement{stmt}, block.List...)
	return block
}

// Return builds `return expr;`.
func Return(expr ast.Expression) *ast.ReturnStatement {
	return &ast.ReturnStatement{Argument: expr}
}
