package model

import "gopkg.in/yaml.v3"

// Path represents a file system path.
type Path string

// File is a JavaScript source file loaded for instrumentation.
type File struct {
	Path    Path
	Hash    string
	Content string
}

// Input is a single test case run against a program. Args calls the program's
// value with positional arguments; Expr evaluates an expression after the
// program body, in program scope. Exactly one of them is expected to be set.
type Input struct {
	Args []any  `yaml:"args,omitempty"`
	Expr string `yaml:"expr,omitempty"`
}

// IsExpr reports whether the input is evaluated as an expression.
func (in Input) IsExpr() bool {
	return in.Expr != ""
}

// UnmarshalYAML accepts a mapping with args or expr, a bare sequence as
// shorthand for args, and a bare string as shorthand for expr.
func (in *Input) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Decode(&in.Args)
	case yaml.ScalarNode:
		in.Expr = node.Value
		return nil
	}

	type plain Input

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*in = Input(p)

	return nil
}
