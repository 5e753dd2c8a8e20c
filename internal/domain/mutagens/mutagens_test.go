package mutagens

import (
	"testing"

	"github.com/dop251/goja/token"
	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		op   token.Token
		want []token.Token
	}{
		{token.PLUS, []token.Token{token.MINUS}},
		{token.MINUS, []token.Token{token.PLUS}},
		{token.MULTIPLY, []token.Token{token.SLASH, token.REMAINDER}},
		{token.SLASH, []token.Token{token.MULTIPLY, token.REMAINDER}},
		{token.REMAINDER, []token.Token{token.MULTIPLY, token.SLASH}},
		{token.EXPONENT, nil},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Arithmetic(tt.op))
			assert.Equal(t, tt.want != nil, IsArithmetic(tt.op))
		})
	}
}

func TestComparison(t *testing.T) {
	tests := []struct {
		name string
		op   token.Token
		null bool
		want []token.Token
	}{
		{"less", token.LESS, false, []token.Token{token.LESS_OR_EQUAL, token.GREATER_OR_EQUAL}},
		{"greater", token.GREATER, false, []token.Token{token.LESS_OR_EQUAL, token.GREATER_OR_EQUAL}},
		{"less or equal", token.LESS_OR_EQUAL, false, []token.Token{token.LESS, token.GREATER}},
		{"greater or equal", token.GREATER_OR_EQUAL, false, []token.Token{token.GREATER, token.LESS}},
		{"strict equal", token.STRICT_EQUAL, false, []token.Token{token.STRICT_NOT_EQUAL, token.EQUAL}},
		{"strict equal null", token.STRICT_EQUAL, true, []token.Token{token.STRICT_NOT_EQUAL}},
		{"strict not equal", token.STRICT_NOT_EQUAL, false, []token.Token{token.STRICT_EQUAL, token.NOT_EQUAL}},
		{"strict not equal null", token.STRICT_NOT_EQUAL, true, []token.Token{token.STRICT_EQUAL}},
		{"loose equal null", token.EQUAL, true, []token.Token{token.NOT_EQUAL, token.STRICT_EQUAL}},
		{"loose not equal null", token.NOT_EQUAL, true, []token.Token{token.EQUAL, token.STRICT_NOT_EQUAL}},
		{"loose not equal", token.NOT_EQUAL, false, []token.Token{token.EQUAL, token.STRICT_NOT_EQUAL}},
		{"instanceof", token.INSTANCEOF, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Comparison(tt.op, tt.null)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, tt.op)
		})
	}
}

func TestLogical(t *testing.T) {
	assert.Equal(t, []token.Token{token.LOGICAL_AND, token.LOGICAL_OR}, Logical(token.COALESCE))
	assert.Equal(t, []token.Token{token.LOGICAL_OR, token.COALESCE}, Logical(token.LOGICAL_AND))
	assert.Nil(t, Logical(token.PLUS))
	assert.False(t, IsLogical(token.AND))
}

func TestAssignment(t *testing.T) {
	assert.Equal(t, []token.Token{token.MINUS}, Assignment(token.PLUS))
	assert.Equal(t, []token.Token{token.LOGICAL_AND}, Assignment(token.COALESCE))
	assert.Equal(t, []token.Token{token.SHIFT_LEFT}, Assignment(token.SHIFT_RIGHT))
	assert.Nil(t, Assignment(token.ASSIGN))
	assert.Nil(t, Assignment(token.EXPONENT))
}

func TestUnaryAndUpdates(t *testing.T) {
	assert.Equal(t, []token.Token{token.PLUS}, Unary(token.MINUS))
	assert.Nil(t, Unary(token.NOT))

	assert.Equal(t, []Update{
		{Op: token.INCREMENT, Postfix: false},
		{Op: token.DECREMENT, Postfix: true},
	}, Updates(token.INCREMENT, true))
	assert.Nil(t, Updates(token.PLUS, false))
}

func TestLiterals(t *testing.T) {
	assert.False(t, Boolean(true))
	assert.Equal(t, "__MUTANT__", String("", "__MUTANT__"))
	assert.Equal(t, "", String("hello", "__MUTANT__"))

	assert.Equal(t, []bool{true, false}, Forcings(NotLiteral))
	assert.Equal(t, []bool{false}, Forcings(LiteralTrue))
	assert.Equal(t, []bool{true}, Forcings(LiteralFalse))
}
