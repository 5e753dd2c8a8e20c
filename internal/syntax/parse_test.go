package syntax

import (
	"errors"
	"testing"

	"github.com/dop251/goja/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

func TestParse(t *testing.T) {
	program, err := Parse("function f(x) { return x; }\nf(1);")
	require.NoError(t, err)

	require.Len(t, program.Body, 2)
	assert.IsType(t, &ast.FunctionDeclaration{}, program.Body[0])
	assert.IsType(t, &ast.ExpressionStatement{}, program.Body[1])
}

func TestParse_Error(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
	}{
		{name: "unterminated parameter list", src: "function (", wantLine: 1},
		{name: "error on second line", src: "var a = 1;\nvar = 2;", wantLine: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))

			assert.Equal(t, tt.wantLine, parseErr.Line)
			assert.Positive(t, parseErr.Column)
			assert.NotEmpty(t, parseErr.Message)
			assert.Equal(t, offsetOf(tt.src, parseErr.Line, parseErr.Column), parseErr.Index)
			assert.Contains(t, err.Error(), "parse error at ")
		})
	}
}

func TestParseError_WithoutPosition(t *testing.T) {
	err := &ParseError{Message: "boom"}
	assert.Equal(t, "parse error: boom", err.Error())
}

func TestOffsetOf(t *testing.T) {
	src := "ab\ncd\nef"

	assert.Equal(t, 0, offsetOf(src, 0, 5))
	assert.Equal(t, 0, offsetOf(src, 1, 1))
	assert.Equal(t, 4, offsetOf(src, 2, 2))
	assert.Equal(t, 6, offsetOf(src, 3, 1))
	assert.Equal(t, len(src), offsetOf(src, 9, 1))
	assert.Equal(t, len(src), offsetOf(src, 3, 40))
}

func TestLocator_Position(t *testing.T) {
	loc := NewLocator("ab\ncd")

	assert.Equal(t, m.Position{Line: 1, Column: 1, Index: 0}, loc.Position(0))
	assert.Equal(t, m.Position{Line: 2, Column: 2, Index: 4}, loc.Position(4))
	assert.Equal(t, m.Position{Line: 1, Column: 1, Index: 0}, loc.Position(-3))
	assert.Equal(t, 5, loc.Position(50).Index)
}

func TestLocator_Range(t *testing.T) {
	src := "a + b;\nfoo(bar);"
	loc := NewLocator(src)

	program, err := Parse(src)
	require.NoError(t, err)

	sum := program.Body[0].(*ast.ExpressionStatement).Expression
	rng := loc.RangeOf(sum)
	assert.Equal(t, "1:1-1:6", rng.String())
	assert.Equal(t, "a + b", rng.Text(src))

	call := program.Body[1].(*ast.ExpressionStatement).Expression
	assert.Equal(t, "foo(bar)", loc.RangeOf(call).Text(src))

	empty := loc.Range(5, 2)
	assert.Equal(t, empty.Start, empty.End)
}

func TestSpan_CaseStatement(t *testing.T) {
	src := "switch (x) { case 1: a(); break; default: }"

	program, err := Parse(src)
	require.NoError(t, err)

	body := program.Body[0].(*ast.SwitchStatement).Body

	start, end := Span(body[0])
	assert.Equal(t, "case 1: a(); break", src[start:end])

	start, end = Span(body[1])
	assert.Equal(t, "default", src[start:end])
}
