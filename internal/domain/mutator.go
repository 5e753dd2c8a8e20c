// Package domain holds the coverage and mutation engines and the workflows
// that drive them.
package domain

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"
	"github.com/dop251/goja/unistring"

	"jsprobe.dev/pkg/jsprobe/internal/adapter"
	"jsprobe.dev/pkg/jsprobe/internal/domain/mutagens"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
	"jsprobe.dev/pkg/jsprobe/internal/syntax"
)

// ErrNotImplemented is returned when the program contains a node kind the
// mutation engine has no handler for.
var ErrNotImplemented = errors.New("mutation handler not implemented")

// DefaultSentinel replaces empty strings in string literal mutants.
const DefaultSentinel = "__MUTANT__"

// MutatorOptions configures GenerateMutants. Zero fields take defaults.
type MutatorOptions struct {
	Sentinel    string
	AssertIdent string
}

// GenerateMutants returns one mutant per applicable alteration site of src,
// numbered from 1 in visiting order. Every mutant carries the whole program
// with exactly that one alteration applied.
func GenerateMutants(src string, opts MutatorOptions) ([]m.Mutant, error) {
	if opts.Sentinel == "" {
		opts.Sentinel = DefaultSentinel
	}

	if opts.AssertIdent == "" {
		opts.AssertIdent = adapter.DefaultAssertIdent
	}

	program, err := syntax.Parse(src)
	if err != nil {
		return nil, err
	}

	mu := &mutator{
		opts:       opts,
		program:    program,
		source:     src,
		loc:        syntax.NewLocator(src),
		beautified: syntax.Generate(program),
	}

	walker := syntax.NewWalker(mu.handlers(), syntax.Strict())
	if err := walker.Walk(program); err != nil {
		if errors.Is(err, syntax.ErrUnhandled) {
			return nil, fmt.Errorf("%w: %w", ErrNotImplemented, err)
		}

		return nil, err
	}

	if syntax.Generate(program) != mu.beautified {
		slog.Warn("The AST is changed after generating mutants")
	}

	return mu.mutants, nil
}

type mutator struct {
	opts       MutatorOptions
	program    *ast.Program
	source     string
	loc        *syntax.Locator
	beautified string
	mutants    []m.Mutant
}

// transparentKinds have no alteration of their own; their children are
// visited in source order.
var transparentKinds = []syntax.Kind{
	syntax.KindProgram,
	syntax.KindExpressionStatement,
	syntax.KindVariable,
	syntax.KindLexical,
	syntax.KindFunctionDeclaration,
	syntax.KindClassDeclaration,
	syntax.KindForIn,
	syntax.KindForOf,
	syntax.KindReturn,
	syntax.KindThrow,
	syntax.KindBranch,
	syntax.KindLabelled,
	syntax.KindSwitch,
	syntax.KindCase,
	syntax.KindTry,
	syntax.KindCatch,
	syntax.KindWith,
	syntax.KindEmpty,
	syntax.KindDebugger,
	syntax.KindBadStatement,
	syntax.KindIdentifier,
	syntax.KindPrivateIdentifier,
	syntax.KindNull,
	syntax.KindNumber,
	syntax.KindRegExp,
	syntax.KindTemplateElement,
	syntax.KindThis,
	syntax.KindSuper,
	syntax.KindMetaProperty,
	syntax.KindArrayPattern,
	syntax.KindObjectPattern,
	syntax.KindPropertyKeyed,
	syntax.KindPropertyShort,
	syntax.KindSpread,
	syntax.KindSequence,
	syntax.KindConditional,
	syntax.KindAwait,
	syntax.KindYield,
	syntax.KindDot,
	syntax.KindPrivateDot,
	syntax.KindBracket,
	syntax.KindOptional,
	syntax.KindFunction,
	syntax.KindArrow,
	syntax.KindClass,
	syntax.KindBadExpression,
	syntax.KindBinding,
	syntax.KindParameterList,
	syntax.KindExpressionBody,
	syntax.KindField,
	syntax.KindMethod,
	syntax.KindStaticBlock,
	syntax.KindForInitExpression,
	syntax.KindForInitVar,
	syntax.KindForInitLexical,
	syntax.KindForIntoVar,
	syntax.KindForDeclaration,
	syntax.KindForIntoExpression,
}

func (mu *mutator) handlers() syntax.Handlers {
	h := syntax.Handlers{
		syntax.KindBinary:        mu.binary,
		syntax.KindAssign:        mu.assign,
		syntax.KindUnary:         mu.unary,
		syntax.KindBoolean:       mu.boolean,
		syntax.KindString:        mu.stringLiteral,
		syntax.KindTemplate:      mu.template,
		syntax.KindArray:         mu.array,
		syntax.KindObject:        mu.object,
		syntax.KindCall:          mu.call,
		syntax.KindNew:           mu.newExpression,
		syntax.KindBlock:         mu.block,
		syntax.KindIf:            mu.ifStatement,
		syntax.KindWhile:         mu.whileStatement,
		syntax.KindDoWhile:       mu.doWhileStatement,
		syntax.KindFor:           mu.forStatement,
		syntax.KindOptionalChain: mu.optionalChain,
	}

	for _, kind := range transparentKinds {
		h[kind] = descend
	}

	return h
}

func descend(w *syntax.Walker, node ast.Node) error {
	return w.Recurse(node)
}

// apply performs one alteration, records the resulting mutant and reverts
// the alteration before returning.
func (mu *mutator) apply(kind m.MutantType, rng m.SourceRange, node ast.Node, set, restore func()) {
	defer restore()

	set()
	mu.record(kind, rng, node)
}

func (mu *mutator) record(kind m.MutantType, rng m.SourceRange, node ast.Node) {
	id := len(mu.mutants) + 1
	mutated := syntax.Generate(mu.program)

	mu.mutants = append(mu.mutants, m.Mutant{
		ID:             id,
		Type:           kind,
		MutatedSource:  mutated,
		OriginalSource: mu.source,
		Range:          rng,
		MutatedText:    syntax.Generate(node),
	})

	if mutated == mu.beautified {
		slog.Warn("The code is the same after generating a mutant", "id", id, "type", kind)
		return
	}

	slog.Debug("Generated mutant", "id", id, "type", kind, "range", rng.String())
}

func (mu *mutator) binary(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.BinaryExpression)
	op := x.Operator

	var (
		kind m.MutantType
		alts []token.Token
	)

	switch {
	case mutagens.IsArithmetic(op):
		kind, alts = m.MutantArithmetic, mutagens.Arithmetic(op)
	case mutagens.IsComparison(op):
		kind, alts = m.MutantEquality, mutagens.Comparison(op, isNull(x.Left) || isNull(x.Right))
	case mutagens.IsLogical(op):
		kind, alts = m.MutantLogical, mutagens.Logical(op)
	}

	rng := mu.loc.RangeOf(x)
	for _, alt := range alts {
		mu.apply(kind, rng, x,
			func() { x.Operator = alt },
			func() { x.Operator = op })
	}

	return w.Recurse(x)
}

func isNull(e ast.Expression) bool {
	_, ok := e.(*ast.NullLiteral)
	return ok
}

func (mu *mutator) assign(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.AssignExpression)
	op := x.Operator

	rng := mu.loc.RangeOf(x)
	for _, alt := range mutagens.Assignment(op) {
		mu.apply(m.MutantAssignment, rng, x,
			func() { x.Operator = alt },
			func() { x.Operator = op })
	}

	return w.Recurse(x)
}

func (mu *mutator) unary(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.UnaryExpression)
	op, postfix := x.Operator, x.Postfix
	rng := mu.loc.RangeOf(x)

	switch op {
	case token.INCREMENT, token.DECREMENT:
		for _, u := range mutagens.Updates(op, postfix) {
			mu.apply(m.MutantUpdate, rng, x,
				func() { x.Operator, x.Postfix = u.Op, u.Postfix },
				func() { x.Operator, x.Postfix = op, postfix })
		}
	default:
		for _, alt := range mutagens.Unary(op) {
			mu.apply(m.MutantUnary, rng, x,
				func() { x.Operator = alt },
				func() { x.Operator = op })
		}
	}

	return w.Recurse(x)
}

func (mu *mutator) boolean(_ *syntax.Walker, node ast.Node) error {
	x := node.(*ast.BooleanLiteral)
	saved := *x

	mu.apply(m.MutantBoolean, mu.loc.RangeOf(x), x,
		func() {
			flipped := syntax.Bool(mutagens.Boolean(saved.Value))
			x.Value, x.Literal = flipped.Value, flipped.Literal
		},
		func() { *x = saved })

	return nil
}

func (mu *mutator) stringLiteral(_ *syntax.Walker, node ast.Node) error {
	x := node.(*ast.StringLiteral)
	saved := *x
	replacement := mutagens.String(x.Value.String(), mu.opts.Sentinel)

	mu.apply(m.MutantString, mu.loc.RangeOf(x), x,
		func() {
			x.Value = unistring.NewFromString(replacement)
			x.Literal = syntax.Quote(replacement)
		},
		func() { *x = saved })

	return nil
}

// template alters the first quasi of an untagged template.
func (mu *mutator) template(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.TemplateLiteral)

	if x.Tag == nil && len(x.Elements) > 0 {
		first := x.Elements[0]
		saved := *first
		replacement := syntax.TemplateElement(mutagens.String(saved.Literal, mu.opts.Sentinel))
		replacement.Idx = saved.Idx

		mu.apply(m.MutantString, mu.loc.RangeOf(x), x,
			func() { *first = *replacement },
			func() { *first = saved })
	}

	return w.Recurse(x)
}

func (mu *mutator) array(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.ArrayLiteral)

	if saved := x.Value; len(saved) > 0 {
		mu.apply(m.MutantArray, mu.loc.RangeOf(x), x,
			func() { x.Value = nil },
			func() { x.Value = saved })
	}

	return w.Recurse(x)
}

func (mu *mutator) object(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.ObjectLiteral)

	if saved := x.Value; len(saved) > 0 {
		mu.apply(m.MutantObject, mu.loc.RangeOf(x), x,
			func() { x.Value = nil },
			func() { x.Value = saved })
	}

	return w.Recurse(x)
}

// call empties argument lists. Calls to the assertion helper keep their
// arguments, though the arguments themselves are still visited.
func (mu *mutator) call(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.CallExpression)

	if mu.isAssertion(x.Callee) {
		for _, arg := range x.ArgumentList {
			if err := w.Walk(arg); err != nil {
				return err
			}
		}

		return nil
	}

	if saved := x.ArgumentList; len(saved) > 0 {
		mu.apply(m.MutantArray, mu.loc.RangeOf(x), x,
			func() { x.ArgumentList = nil },
			func() { x.ArgumentList = saved })
	}

	return w.Recurse(x)
}

func (mu *mutator) isAssertion(callee ast.Expression) bool {
	id, ok := callee.(*ast.Identifier)
	return ok && string(id.Name) == mu.opts.AssertIdent
}

func (mu *mutator) newExpression(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.NewExpression)

	if saved := x.ArgumentList; len(saved) > 0 {
		mu.apply(m.MutantArray, mu.loc.RangeOf(x), x,
			func() { x.ArgumentList = nil },
			func() { x.ArgumentList = saved })
	}

	return w.Recurse(x)
}

func (mu *mutator) block(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.BlockStatement)

	if saved := x.List; len(saved) > 0 {
		mu.apply(m.MutantBlock, mu.loc.RangeOf(x), x,
			func() { x.List = nil },
			func() { x.List = saved })
	}

	return w.Recurse(x)
}

// force records one mutant per literal the condition at test can be forced
// to. rng addresses the condition, or the owning statement when the
// condition is absent.
func (mu *mutator) force(test *ast.Expression, rng m.SourceRange) {
	original := *test

	for _, v := range mutagens.Forcings(literalState(original)) {
		lit := syntax.Bool(v)

		mu.apply(m.MutantConditional, rng, lit,
			func() { *test = lit },
			func() { *test = original })
	}
}

func literalState(e ast.Expression) mutagens.Literal {
	switch x := e.(type) {
	case nil:
		return mutagens.LiteralTrue
	case *ast.BooleanLiteral:
		if x.Value {
			return mutagens.LiteralTrue
		}

		return mutagens.LiteralFalse
	}

	return mutagens.NotLiteral
}

func (mu *mutator) ifStatement(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.IfStatement)
	mu.force(&x.Test, mu.loc.RangeOf(x.Test))

	return w.Recurse(x)
}

func (mu *mutator) whileStatement(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.WhileStatement)
	mu.force(&x.Test, mu.loc.RangeOf(x.Test))

	return w.Recurse(x)
}

func (mu *mutator) doWhileStatement(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.DoWhileStatement)
	mu.force(&x.Test, mu.loc.RangeOf(x.Test))

	return w.Recurse(x)
}

func (mu *mutator) forStatement(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.ForStatement)

	rng := mu.loc.RangeOf(x)
	if x.Test != nil {
		rng = mu.loc.RangeOf(x.Test)
	}

	mu.force(&x.Test, rng)

	return w.Recurse(x)
}

// optionalChain removes every ?. of a chain at once.
func (mu *mutator) optionalChain(w *syntax.Walker, node ast.Node) error {
	x := node.(*ast.OptionalChain)

	if original := x.Expression; syntax.HasOptional(original) {
		mu.apply(m.MutantOptionalChaining, mu.loc.RangeOf(x), x,
			func() { x.Expression = syntax.StripOptional(original) },
			func() { x.Expression = original })
	}

	return w.Recurse(x)
}
