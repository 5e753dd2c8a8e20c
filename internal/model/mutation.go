// Package model defines the data structures shared by coverage and mutation runs.
package model

// MutantType names the category of a single syntactic alteration.
type MutantType string

const (
	// MutantArithmetic swaps + - * / %.
	MutantArithmetic MutantType = "ArithmeticOperator"
	// MutantAssignment swaps compound assignment operators.
	MutantAssignment MutantType = "AssignmentOperator"
	// MutantEquality swaps equality and relational operators.
	MutantEquality MutantType = "EqualityOperator"
	// MutantLogical swaps && || ??.
	MutantLogical MutantType = "LogicalOperator"
	// MutantUnary swaps unary + and -.
	MutantUnary MutantType = "UnaryOperator"
	// MutantUpdate flips ++/-- and prefix/postfix.
	MutantUpdate MutantType = "UpdateOperator"
	// MutantBoolean negates a boolean literal.
	MutantBoolean MutantType = "BooleanLiteral"
	// MutantString swaps an empty string with a sentinel and vice versa.
	MutantString MutantType = "StringLiteral"
	// MutantArray empties an array literal or an argument list.
	MutantArray MutantType = "ArrayDeclaration"
	// MutantObject empties an object literal.
	MutantObject MutantType = "ObjectLiteral"
	// MutantBlock empties a non-empty block.
	MutantBlock MutantType = "BlockStatement"
	// MutantConditional forces a condition to true or false.
	MutantConditional MutantType = "ConditionalExpression"
	// MutantOptionalChaining removes every ?. from a chain.
	MutantOptionalChaining MutantType = "OptionalChaining"
)

// MutantTypes lists every tag in a stable order.
var MutantTypes = []MutantType{
	MutantArithmetic,
	MutantAssignment,
	MutantEquality,
	MutantLogical,
	MutantUnary,
	MutantUpdate,
	MutantBoolean,
	MutantString,
	MutantArray,
	MutantObject,
	MutantBlock,
	MutantConditional,
	MutantOptionalChaining,
}

// Mutant is one whole-program variant carrying exactly one alteration.
// IDs are 1-based and dense within a single generation run.
type Mutant struct {
	ID             int         `yaml:"id"`
	Type           MutantType  `yaml:"type"`
	MutatedSource  string      `yaml:"mutated_source"`
	OriginalSource string      `yaml:"-"`
	Range          SourceRange `yaml:"range"`
	MutatedText    string      `yaml:"mutated_text"`
	Diff           string      `yaml:"diff,omitempty"` // unified diff against the beautified original, filled for survivors
}

// OriginalText returns the source text the mutant replaced.
func (mt Mutant) OriginalText() string {
	return mt.Range.Text(mt.OriginalSource)
}
