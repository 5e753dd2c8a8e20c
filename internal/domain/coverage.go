package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"

	"jsprobe.dev/pkg/jsprobe/internal/adapter"
	"jsprobe.dev/pkg/jsprobe/internal/domain/mutagens"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
	"jsprobe.dev/pkg/jsprobe/internal/syntax"
)

// ErrNoRunner is returned when coverage is asked for an executable program
// but the instrumented code could not be compiled.
var ErrNoRunner = errors.New("instrumented code is not runnable")

// notRunnableWarning is logged whenever instrumented code cannot be executed.
const notRunnableWarning = "The given code is not runnable with arguments."

// Catalog maps the dense ids of one coverage space to the ranges they stand for.
type Catalog map[int]m.SourceRange

// Instrumented is the static result of instrumenting a program.
type Instrumented struct {
	Original string
	Modified string
	Func     Catalog
	Stmt     Catalog
	Branch   Catalog
}

// Instrument rewrites src so that executing it reports function, statement
// and branch ids through the tracking handle. Ranges in the catalogs refer to
// src; Modified is the regenerated text of the rewritten program.
func Instrument(src string) (*Instrumented, error) {
	program, err := syntax.Parse(src)
	if err != nil {
		return nil, err
	}

	in := newInstrumenter(src)
	if err := in.walker.Walk(program); err != nil {
		return nil, fmt.Errorf("failed to instrument program: %w", err)
	}

	return &Instrumented{
		Original: src,
		Modified: syntax.Generate(program),
		Func:     in.catalogs[syntax.SpaceFunc],
		Stmt:     in.catalogs[syntax.SpaceStmt],
		Branch:   in.catalogs[syntax.SpaceBranch],
	}, nil
}

type instrumenter struct {
	loc      *syntax.Locator
	catalogs map[syntax.Space]Catalog
	walker   *syntax.Walker
}

func newInstrumenter(src string) *instrumenter {
	in := &instrumenter{
		loc: syntax.NewLocator(src),
		catalogs: map[syntax.Space]Catalog{
			syntax.SpaceFunc:   {},
			syntax.SpaceStmt:   {},
			syntax.SpaceBranch: {},
		},
	}

	in.walker = syntax.NewWalker(syntax.Handlers{
		syntax.KindFunction:      in.function,
		syntax.KindArrow:         in.arrow,
		syntax.KindBlock:         in.block,
		syntax.KindVariable:      in.variable,
		syntax.KindLexical:       in.lexical,
		syntax.KindForInitVar:    in.forInitVar,
		syntax.KindParameterList: in.parameters,
		syntax.KindPropertyShort: in.shorthand,
		syntax.KindArrayPattern:  in.arrayPattern,
		syntax.KindObjectPattern: in.objectPattern,
		syntax.KindIf:            in.ifStatement,
		syntax.KindSwitch:        in.switchStatement,
		syntax.KindConditional:   in.conditional,
		syntax.KindBinary:        in.binary,
		syntax.KindWhile:         in.loop,
		syntax.KindDoWhile:       in.loop,
		syntax.KindFor:           in.loop,
		syntax.KindForIn:         in.loop,
		syntax.KindForOf:         in.loop,
	})

	return in
}

// next allocates the next id of space for rng.
func (in *instrumenter) next(space syntax.Space, rng m.SourceRange) int {
	catalog := in.catalogs[space]
	id := len(catalog)
	catalog[id] = rng

	return id
}

func (in *instrumenter) function(w *syntax.Walker, node ast.Node) error {
	fn := node.(*ast.FunctionLiteral)
	id := in.next(syntax.SpaceFunc, in.loc.RangeOf(fn))

	if err := w.Walk(fn.ParameterList); err != nil {
		return err
	}

	if fn.Body == nil {
		return nil
	}

	if err := w.Walk(fn.Body); err != nil {
		return err
	}

	syntax.Prepend(syntax.TrackStmt(syntax.SpaceFunc, id), fn.Body)

	return nil
}

func (in *instrumenter) arrow(w *syntax.Walker, node ast.Node) error {
	fn := node.(*ast.ArrowFunctionLiteral)
	id := in.next(syntax.SpaceFunc, in.loc.RangeOf(fn))

	if err := w.Walk(fn.ParameterList); err != nil {
		return err
	}

	switch body := fn.Body.(type) {
	case *ast.BlockStatement:
		if err := w.Walk(body); err != nil {
			return err
		}

		syntax.Prepend(syntax.TrackStmt(syntax.SpaceFunc, id), body)
	case *ast.ExpressionBody:
		sid := in.next(syntax.SpaceStmt, in.loc.RangeOf(body.Expression))

		if err := w.Walk(body.Expression); err != nil {
			return err
		}

		body.Expression = syntax.Seq(
			syntax.TrackCall(syntax.SpaceFunc, id),
			syntax.TrackCall(syntax.SpaceStmt, sid),
			body.Expression,
		)
	}

	return nil
}

func (in *instrumenter) block(w *syntax.Walker, node ast.Node) error {
	b := node.(*ast.BlockStatement)

	list, err := in.statements(w, b.List)
	if err != nil {
		return err
	}

	b.List = list

	return nil
}

// statements returns list with a statement tracker in front of every
// trackable statement. Each statement is instrumented before its next sibling
// so ids follow source order.
func (in *instrumenter) statements(w *syntax.Walker, list []ast.Statement) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, 2*len(list))

	for _, stmt := range list {
		if tracksStatement(stmt) {
			id := in.next(syntax.SpaceStmt, in.loc.RangeOf(stmt))
			out = append(out, syntax.TrackStmt(syntax.SpaceStmt, id))
		}

		out = append(out, stmt)

		if err := w.Walk(stmt); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// tracksStatement excludes declarations, whose initializers are tracked
// individually. An if statement is not a statement target either: it is
// counted through its two branches.
func tracksStatement(stmt ast.Statement) bool {
	switch stmt.(type) {
	case *ast.VariableStatement, *ast.LexicalDeclaration,
		*ast.FunctionDeclaration, *ast.ClassDeclaration,
		*ast.IfStatement:
		return false
	}

	return true
}

func (in *instrumenter) variable(w *syntax.Walker, node ast.Node) error {
	return in.declarators(w, node.(*ast.VariableStatement).List)
}

func (in *instrumenter) lexical(w *syntax.Walker, node ast.Node) error {
	return in.declarators(w, node.(*ast.LexicalDeclaration).List)
}

func (in *instrumenter) forInitVar(w *syntax.Walker, node ast.Node) error {
	return in.declarators(w, node.(*ast.ForLoopInitializerVarDeclList).List)
}

// declarators tracks every declarator with an initializer as a statement
// spanning the whole declarator.
func (in *instrumenter) declarators(w *syntax.Walker, list []*ast.Binding) error {
	for _, b := range list {
		if err := w.Walk(b.Target); err != nil {
			return err
		}

		if b.Initializer == nil {
			continue
		}

		id := in.next(syntax.SpaceStmt, in.loc.RangeOf(b))

		if err := w.Walk(b.Initializer); err != nil {
			return err
		}

		b.Initializer = syntax.Tracked(syntax.SpaceStmt, id, b.Initializer)
	}

	return nil
}

func (in *instrumenter) parameters(w *syntax.Walker, node ast.Node) error {
	params := node.(*ast.ParameterList)

	for _, b := range params.List {
		if err := w.Walk(b.Target); err != nil {
			return err
		}

		if b.Initializer == nil {
			continue
		}

		init, err := in.defaultValue(w, b.Initializer)
		if err != nil {
			return err
		}

		b.Initializer = init
	}

	return w.Walk(params.Rest)
}

// defaultValue tracks a default value as a statement spanning the value.
func (in *instrumenter) defaultValue(w *syntax.Walker, value ast.Expression) (ast.Expression, error) {
	id := in.next(syntax.SpaceStmt, in.loc.RangeOf(value))

	if err := w.Walk(value); err != nil {
		return nil, err
	}

	return syntax.Tracked(syntax.SpaceStmt, id, value), nil
}

func (in *instrumenter) shorthand(w *syntax.Walker, node ast.Node) error {
	prop := node.(*ast.PropertyShort)
	if prop.Initializer == nil {
		return nil
	}

	init, err := in.defaultValue(w, prop.Initializer)
	if err != nil {
		return err
	}

	prop.Initializer = init

	return nil
}

func (in *instrumenter) arrayPattern(w *syntax.Walker, node ast.Node) error {
	pattern := node.(*ast.ArrayPattern)

	for _, elem := range pattern.Elements {
		if err := in.patternElement(w, elem); err != nil {
			return err
		}
	}

	return w.Walk(pattern.Rest)
}

func (in *instrumenter) objectPattern(w *syntax.Walker, node ast.Node) error {
	pattern := node.(*ast.ObjectPattern)

	for _, prop := range pattern.Properties {
		keyed, ok := prop.(*ast.PropertyKeyed)
		if !ok {
			if err := w.Walk(prop); err != nil {
				return err
			}

			continue
		}

		if keyed.Computed {
			if err := w.Walk(keyed.Key); err != nil {
				return err
			}
		}

		if err := in.patternElement(w, keyed.Value); err != nil {
			return err
		}
	}

	return w.Walk(pattern.Rest)
}

// patternElement tracks the default of a `target = value` pattern element.
func (in *instrumenter) patternElement(w *syntax.Walker, elem ast.Expression) error {
	assign, ok := elem.(*ast.AssignExpression)
	if !ok || assign.Operator != token.ASSIGN {
		return w.Walk(elem)
	}

	if err := w.Walk(assign.Left); err != nil {
		return err
	}

	right, err := in.defaultValue(w, assign.Right)
	if err != nil {
		return err
	}

	assign.Right = right

	return nil
}

func (in *instrumenter) ifStatement(w *syntax.Walker, node ast.Node) error {
	s := node.(*ast.IfStatement)

	consequentRange := in.loc.RangeOf(s.Consequent)

	var alternateRange m.SourceRange
	if s.Alternate != nil {
		alternateRange = in.loc.RangeOf(s.Alternate)
	} else {
		_, consequentEnd := syntax.Span(s.Consequent)
		_, end := syntax.Span(s)
		alternateRange = in.loc.Range(consequentEnd, end)
	}

	if err := w.Walk(s.Test); err != nil {
		return err
	}

	thenID := in.next(syntax.SpaceBranch, consequentRange)
	consequent := syntax.ToBlock(s.Consequent)
	s.Consequent = consequent

	if err := w.Walk(consequent); err != nil {
		return err
	}

	syntax.Prepend(syntax.TrackStmt(syntax.SpaceBranch, thenID), consequent)

	elseID := in.next(syntax.SpaceBranch, alternateRange)

	present := s.Alternate != nil
	alternate := syntax.ToBlock(s.Alternate)
	s.Alternate = alternate

	if present {
		if err := w.Walk(alternate); err != nil {
			return err
		}
	}

	syntax.Prepend(syntax.TrackStmt(syntax.SpaceBranch, elseID), alternate)

	return nil
}

func (in *instrumenter) switchStatement(w *syntax.Walker, node ast.Node) error {
	s := node.(*ast.SwitchStatement)

	if err := w.Walk(s.Discriminant); err != nil {
		return err
	}

	for _, c := range s.Body {
		id := in.next(syntax.SpaceBranch, in.loc.RangeOf(c))

		if err := w.Walk(c.Test); err != nil {
			return err
		}

		list, err := in.statements(w, c.Consequent)
		if err != nil {
			return err
		}

		c.Consequent = append([]ast.Statement{syntax.TrackStmt(syntax.SpaceBranch, id)}, list...)
	}

	return nil
}

func (in *instrumenter) conditional(w *syntax.Walker, node ast.Node) error {
	c := node.(*ast.ConditionalExpression)

	consequentRange := in.loc.RangeOf(c.Consequent)
	alternateRange := in.loc.RangeOf(c.Alternate)

	if err := w.Walk(c.Test); err != nil {
		return err
	}

	thenID := in.next(syntax.SpaceBranch, consequentRange)
	if err := w.Walk(c.Consequent); err != nil {
		return err
	}

	c.Consequent = syntax.Tracked(syntax.SpaceBranch, thenID, c.Consequent)

	elseID := in.next(syntax.SpaceBranch, alternateRange)
	if err := w.Walk(c.Alternate); err != nil {
		return err
	}

	c.Alternate = syntax.Tracked(syntax.SpaceBranch, elseID, c.Alternate)

	return nil
}

func (in *instrumenter) binary(w *syntax.Walker, node ast.Node) error {
	b := node.(*ast.BinaryExpression)
	if !mutagens.IsLogical(b.Operator) {
		return w.Recurse(b)
	}

	left, err := in.operand(w, b.Left)
	if err != nil {
		return err
	}

	b.Left = left

	right, err := in.operand(w, b.Right)
	if err != nil {
		return err
	}

	b.Right = right

	return nil
}

// operand tracks one side of a logical expression as a branch. Nested
// logical expressions are not tracked as a whole; their own operands are.
func (in *instrumenter) operand(w *syntax.Walker, e ast.Expression) (ast.Expression, error) {
	if nested, ok := e.(*ast.BinaryExpression); ok && mutagens.IsLogical(nested.Operator) {
		return e, w.Walk(e)
	}

	id := in.next(syntax.SpaceBranch, in.loc.RangeOf(e))

	if err := w.Walk(e); err != nil {
		return nil, err
	}

	return syntax.Tracked(syntax.SpaceBranch, id, e), nil
}

// loop normalizes the body to a block and recurses into the control
// expressions without tracking them as statements.
func (in *instrumenter) loop(w *syntax.Walker, node ast.Node) error {
	switch s := node.(type) {
	case *ast.WhileStatement:
		if err := w.Walk(s.Test); err != nil {
			return err
		}

		s.Body = syntax.ToBlock(s.Body)

		return w.Walk(s.Body)
	case *ast.DoWhileStatement:
		s.Body = syntax.ToBlock(s.Body)
		if err := w.Walk(s.Body); err != nil {
			return err
		}

		return w.Walk(s.Test)
	case *ast.ForStatement:
		if err := w.WalkAll(s.Initializer, s.Test, s.Update); err != nil {
			return err
		}

		s.Body = syntax.ToBlock(s.Body)

		return w.Walk(s.Body)
	case *ast.ForInStatement:
		if err := w.WalkAll(s.Into, s.Source); err != nil {
			return err
		}

		s.Body = syntax.ToBlock(s.Body)

		return w.Walk(s.Body)
	case *ast.ForOfStatement:
		if err := w.WalkAll(s.Into, s.Source); err != nil {
			return err
		}

		s.Body = syntax.ToBlock(s.Body)

		return w.Walk(s.Body)
	}

	return w.Recurse(node)
}

// CoverSet records which ids of one catalog have been executed. It is safe
// for concurrent use.
type CoverSet struct {
	mu      sync.Mutex
	target  Catalog
	covered map[int]struct{}
}

// NewCoverSet creates an empty CoverSet over target.
func NewCoverSet(target Catalog) *CoverSet {
	return &CoverSet{target: target, covered: make(map[int]struct{})}
}

// Add marks id as covered. Ids missing from the catalog are ignored.
func (c *CoverSet) Add(id int) {
	if _, ok := c.target[id]; !ok {
		slog.Debug("Ignoring unknown coverage id", "id", id)
		return
	}

	c.mu.Lock()
	c.covered[id] = struct{}{}
	c.mu.Unlock()
}

// Has reports whether id has been covered.
func (c *CoverSet) Has(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.covered[id]

	return ok
}

// Merge adds every id covered by other.
func (c *CoverSet) Merge(other *CoverSet) {
	if other == nil || other == c {
		return
	}

	other.mu.Lock()
	ids := make([]int, 0, len(other.covered))
	for id := range other.covered {
		ids = append(ids, id)
	}
	other.mu.Unlock()

	for _, id := range ids {
		c.Add(id)
	}
}

// Covered returns the number of covered ids.
func (c *CoverSet) Covered() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.covered)
}

// Total returns the size of the catalog.
func (c *CoverSet) Total() int {
	return len(c.target)
}

// Ratio returns the covered percentage. An empty catalog yields 0.
func (c *CoverSet) Ratio() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}

	return float64(c.Covered()) / float64(total) * 100
}

// String renders "covered/total (ratio%)". With detail, every id follows on
// its own line marked with * when covered; when code is non-empty the line
// also shows the source text of the id's range.
func (c *CoverSet) String(detail bool, code string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%d/%d (%.2f%%)", c.Covered(), c.Total(), c.Ratio())

	if !detail {
		return sb.String()
	}

	ids := make([]int, 0, len(c.target))
	for id := range c.target {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	for _, id := range ids {
		marker := " "
		if c.Has(id) {
			marker = "*"
		}

		rng := c.target[id]
		fmt.Fprintf(&sb, "\n      %s %d: %s", marker, id, rng)

		if code != "" {
			sb.WriteString(" -- ")
			sb.WriteString(rng.Text(code))
		}
	}

	return sb.String()
}

// Coverage accumulates function, statement and branch coverage of one
// program across any number of runs.
type Coverage struct {
	Code     string
	Modified string
	Func     *CoverSet
	Stmt     *CoverSet
	Branch   *CoverSet

	runner adapter.Runner
}

// NewCoverage instruments src and compiles the result with compiler. A
// program that cannot be compiled still yields a Coverage with its catalogs;
// running it only logs a warning.
func NewCoverage(ctx context.Context, src string, compiler adapter.Compiler) (*Coverage, error) {
	inst, err := Instrument(src)
	if err != nil {
		return nil, err
	}

	c := &Coverage{
		Code:     src,
		Modified: inst.Modified,
		Func:     NewCoverSet(inst.Func),
		Stmt:     NewCoverSet(inst.Stmt),
		Branch:   NewCoverSet(inst.Branch),
	}

	if compiler == nil {
		return c, nil
	}

	runner, err := compiler.Compile(ctx, inst.Modified)
	if err != nil {
		slog.Warn(notRunnableWarning, "error", err)
		return c, nil
	}

	c.runner = runner

	return c, nil
}

// Runner returns the compiled instrumented program.
func (c *Coverage) Runner() (adapter.Runner, error) {
	if c.runner == nil {
		return nil, ErrNoRunner
	}

	return c.runner, nil
}

// Runnable reports whether the instrumented program could be compiled.
func (c *Coverage) Runnable() bool {
	return c.runner != nil
}

// Fork returns an empty Coverage over the same catalogs and compiled program.
// Forks can run concurrently and be merged back with Merge.
func (c *Coverage) Fork() *Coverage {
	return &Coverage{
		Code:     c.Code,
		Modified: c.Modified,
		Func:     NewCoverSet(c.Func.target),
		Stmt:     NewCoverSet(c.Stmt.target),
		Branch:   NewCoverSet(c.Branch.target),
		runner:   c.runner,
	}
}

// Merge adds the ids covered by other.
func (c *Coverage) Merge(other *Coverage) {
	c.Func.Merge(other.Func)
	c.Stmt.Merge(other.Stmt)
	c.Branch.Merge(other.Branch)
}

// Track implements adapter.Tracker.
func (c *Coverage) Track(space syntax.Space, id int) {
	switch space {
	case syntax.SpaceFunc:
		c.Func.Add(id)
	case syntax.SpaceStmt:
		c.Stmt.Add(id)
	case syntax.SpaceBranch:
		c.Branch.Add(id)
	}
}

// Run executes the program once per input. Return values and faults of the
// program are discarded; only cancellation of ctx is reported.
func (c *Coverage) Run(ctx context.Context, inputs []m.Input) error {
	if c.runner == nil {
		slog.Warn(notRunnableWarning)
		return nil
	}

	for _, input := range inputs {
		if err := c.RunSingle(ctx, input); err != nil {
			return err
		}
	}

	return nil
}

// RunSingle executes the program with one input.
func (c *Coverage) RunSingle(ctx context.Context, input m.Input) error {
	if c.runner == nil {
		slog.Warn(notRunnableWarning)
		return nil
	}

	if _, err := c.runner.Invoke(ctx, input, c); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		slog.Debug("Coverage run failed", "error", err)
	}

	return nil
}

// RenderOptions selects the optional parts of a coverage summary.
type RenderOptions struct {
	Modified bool
	Detail   bool
	Code     bool
}

// Render returns the coverage summary. Spaces with an empty catalog are
// omitted.
func (c *Coverage) Render(opts RenderOptions) string {
	var sb strings.Builder

	if opts.Modified {
		sb.WriteString("Modified: ")
		sb.WriteString(c.Modified)
		sb.WriteString("\n")
	}

	sb.WriteString("Coverage:\n")

	code := ""
	if opts.Code {
		code = c.Code
	}

	for _, part := range []struct {
		name string
		set  *CoverSet
	}{
		{"func", c.Func},
		{"stmt", c.Stmt},
		{"branch", c.Branch},
	} {
		if part.set.Total() == 0 {
			continue
		}

		fmt.Fprintf(&sb, "- %s: %s\n", part.name, part.set.String(opts.Detail, code))
	}

	return strings.TrimSpace(sb.String())
}

// String returns the coverage summary, optionally with the modified code and
// the per-id detail.
func (c *Coverage) String(showModified, showDetail bool) string {
	return c.Render(RenderOptions{Modified: showModified, Detail: showDetail})
}
