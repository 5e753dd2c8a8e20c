// Package syntax wraps the goja JavaScript front-end. It provides the
// parse/generate capability pair, builders for small synthesized fragments,
// structural cloning and a type-directed walker over the goja AST.
package syntax

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

// ParseError is returned by Parse when the source is not valid JavaScript.
type ParseError struct {
	Line    int
	Column  int
	Index   int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "parse error: " + e.Message
	}

	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// Parse parses src as a script. The only error it returns is *ParseError.
func Parse(src string) (*ast.Program, error) {
	program, err := parser.ParseFile(nil, "", src, 0, parser.WithDisableSourceMaps)
	if err != nil {
		return nil, newParseError(src, err)
	}

	return program, nil
}

func newParseError(src string, err error) *ParseError {
	var (
		list   parser.ErrorList
		single *parser.Error
		pos    file.Position
		msg    string
	)

	switch {
	case errors.As(err, &list) && len(list) > 0:
		pos, msg = list[0].Position, list[0].Message
	case errors.As(err, &single):
		pos, msg = single.Position, single.Message
	default:
		return &ParseError{Message: err.Error()}
	}

	return &ParseError{
		Line:    pos.Line,
		Column:  pos.Column,
		Index:   offsetOf(src, pos.Line, pos.Column),
		Message: msg,
	}
}

// offsetOf maps a 1-based line and column back to a byte offset.
func offsetOf(src string, line, column int) int {
	if line <= 0 {
		return 0
	}

	offset := 0
	for l := 1; l < line; l++ {
		next := strings.IndexByte(src[offset:], '\n')
		if next < 0 {
			return len(src)
		}

		offset += next + 1
	}

	offset += column - 1
	if offset > len(src) {
		return len(src)
	}

	return offset
}

// Locator turns byte offsets of one source text into model positions.
type Locator struct {
	src  string
	file *file.File
}

// NewLocator builds a Locator over src.
func NewLocator(src string) *Locator {
	return &Locator{src: src, file: file.NewFile("", src, 1)}
}

// Position converts a 0-based byte offset to a Position.
func (l *Locator) Position(offset int) m.Position {
	if offset < 0 {
		offset = 0
	}

	if offset > len(l.src) {
		offset = len(l.src)
	}

	p := l.file.Position(offset)

	return m.Position{Line: p.Line, Column: p.Column, Index: offset}
}

// Range returns the range of the byte span [start, end).
func (l *Locator) Range(start, end int) m.SourceRange {
	if end < start {
		end = start
	}

	return m.SourceRange{Start: l.Position(start), End: l.Position(end)}
}

// RangeOf returns the range spanned by node in the original source. It must
// be called before the node is rewritten.
func (l *Locator) RangeOf(node ast.Node) m.SourceRange {
	start, end := Span(node)
	return l.Range(start, end)
}

// Span returns the 0-based byte span of node.
func Span(node ast.Node) (int, int) {
	start := int(node.Idx0()) - 1

	var end int

	switch n := node.(type) {
	case *ast.CaseStatement:
		end = caseEnd(n)
	default:
		end = int(node.Idx1()) - 1
	}

	if start < 0 {
		start = 0
	}

	if end < start {
		end = start
	}

	return start, end
}

// caseEnd avoids CaseStatement.Idx1, which indexes an empty consequent.
func caseEnd(c *ast.CaseStatement) int {
	if len(c.Consequent) > 0 {
		return int(c.Consequent[len(c.Consequent)-1].Idx1()) - 1
	}

	if c.Test != nil {
		return int(c.Test.Idx1()) - 1
	}

	return int(c.Case) - 1 + len("default")
}
