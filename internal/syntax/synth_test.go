package syntax

import (
	"testing"

	"github.com/dop251/goja/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingBuilders(t *testing.T) {
	assert.Equal(t, "__cov__.stmt.add(3);", Generate(TrackStmt(SpaceStmt, 3)))
	assert.Equal(t, "__cov__.func.add(0)", Generate(TrackCall(SpaceFunc, 0)))
	assert.Equal(t, "__cov__.branch.add(1), x", Generate(Tracked(SpaceBranch, 1, Ident("x"))))

	call := &ast.CallExpression{
		Callee:       Ident("f"),
		ArgumentList: []ast.Expression{Tracked(SpaceBranch, 1, Ident("x"))},
	}
	assert.Equal(t, "f((__cov__.branch.add(1), x))", Generate(call))
}

func TestLiteralBuilders(t *testing.T) {
	assert.Equal(t, "true", Generate(Bool(true)))
	assert.Equal(t, "false", Generate(Bool(false)))
	assert.Equal(t, "42", Generate(Number(42)))
	assert.Equal(t, `"a\"b\n"`, Generate(String("a\"b\n")))
	assert.Equal(t, "a, 1", Generate(Seq(Ident("a"), Number(1))))
	assert.Equal(t, "return x;", Generate(Return(Ident("x"))))

	el := TemplateElement("hi ${")
	assert.Equal(t, "hi ${", el.Literal)
	assert.True(t, el.Valid)
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"plain":      `"plain"`,
		`back\slash`: `"back\\slash"`,
		"tab\there":  `"tab\there"`,
		"\u2028":     `"\u2028"`,
		"\x01":       `"\u0001"`,
		"é":          `"é"`,
	}

	for in, want := range tests {
		assert.Equal(t, want, Quote(in), "%q", in)
	}
}

func TestToBlock(t *testing.T) {
	empty := ToBlock(nil)
	require.NotNil(t, empty)
	assert.Empty(t, empty.List)

	block := &ast.BlockStatement{}
	assert.Same(t, block, ToBlock(block))

	stmt := TrackStmt(SpaceStmt, 0)
	wrapped := ToBlock(stmt)
	require.Len(t, wrapped.List, 1)
	assert.Same(t, stmt, wrapped.List[0])
}

func TestPrepend(t *testing.T) {
	block := &ast.BlockStatement{List: []ast.Statement{Return(Ident("x"))}}

	got := Prepend(TrackStmt(SpaceStmt, 1), block)

	assert.Same(t, block, got)
	assert.Equal(t, "{\n  __cov__.stmt.add(1);\n  return x;\n}", Generate(got))
}

func TestStripOptional(t *testing.T) {
	program, err := Parse("a?.b.c(d);")
	require.NoError(t, err)

	chain := program.Body[0].(*ast.ExpressionStatement).Expression.(*ast.OptionalChain).Expression
	require.True(t, HasOptional(chain))

	stripped := StripOptional(chain)

	assert.False(t, HasOptional(stripped))
	assert.Equal(t, "a.b.c(d)", Generate(stripped))

	assert.True(t, HasOptional(chain), "original chain keeps its markers")
	assert.False(t, HasOptional(Ident("a")))
}
