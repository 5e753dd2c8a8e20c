package model

import "fmt"

// Position is a location in the original source text. Line and Column are
// 1-based; Index is the 0-based byte offset.
type Position struct {
	Line   int `yaml:"line"`
	Column int `yaml:"column"`
	Index  int `yaml:"index"`
}

// SourceRange addresses the half-open byte span [Start.Index, End.Index) of
// the original source. Ranges are derived from syntax node spans only.
type SourceRange struct {
	Start Position `yaml:"start"`
	End   Position `yaml:"end"`
}

func (r SourceRange) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}

// Len returns the number of bytes covered by the range.
func (r SourceRange) Len() int {
	return r.End.Index - r.Start.Index
}

// Text returns the slice of src covered by the range, clamped to src.
func (r SourceRange) Text(src string) string {
	start, end := r.Start.Index, r.End.Index
	if start < 0 {
		start = 0
	}

	if end > len(src) {
		end = len(src)
	}

	if start >= end {
		return ""
	}

	return src[start:end]
}
