package mutagens

// Boolean returns the negation of a boolean literal.
func Boolean(v bool) bool {
	return !v
}

// String returns the replacement of a string literal value: the empty string
// becomes sentinel and anything else becomes empty.
func String(value, sentinel string) string {
	if value == "" {
		return sentinel
	}

	return ""
}
