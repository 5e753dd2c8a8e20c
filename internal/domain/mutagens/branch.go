package mutagens

// Literal is the state of a loop or if condition with respect to forcing.
type Literal int

// Condition states.
const (
	// NotLiteral is any condition other than a boolean literal.
	NotLiteral Literal = iota
	// LiteralTrue is the literal true, or a missing for-loop test.
	LiteralTrue
	// LiteralFalse is the literal false.
	LiteralFalse
)

// Forcings returns the literal values a condition is forced to, skipping the
// value it already has.
func Forcings(current Literal) []bool {
	switch current {
	case LiteralTrue:
		return []bool{false}
	case LiteralFalse:
		return []bool{true}
	default:
		return []bool{true, false}
	}
}
