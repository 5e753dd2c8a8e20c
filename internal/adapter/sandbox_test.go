package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
	"jsprobe.dev/pkg/jsprobe/internal/syntax"
)

type recordingTracker struct {
	seen map[syntax.Space][]int
}

func (r *recordingTracker) Track(space syntax.Space, id int) {
	if r.seen == nil {
		r.seen = map[syntax.Space][]int{}
	}

	r.seen[space] = append(r.seen[space], id)
}

func newTestSandbox(t *testing.T, opts SandboxOptions) *GojaSandbox {
	t.Helper()

	sandbox, err := NewGojaSandbox(opts)
	require.NoError(t, err)

	return sandbox
}

func TestGojaSandbox_InvokeArgs(t *testing.T) {
	sandbox := newTestSandbox(t, SandboxOptions{})
	ctx := context.Background()

	tests := []struct {
		name  string
		src   string
		input m.Input
		want  Outcome
	}{
		{"function declaration", "function add(a, b) { return a + b; }", m.Input{Args: []any{1, 2}}, Outcome{Value: "3"}},
		{"arrow expression", "(x) => [x, x]", m.Input{Args: []any{"a"}}, Outcome{Value: `["a","a"]`}},
		{"undefined result", "function f() {}", m.Input{}, Outcome{Value: "undefined"}},
		{"string result", "function f() { return 'hi'; }", m.Input{}, Outcome{Value: `"hi"`}},
		{"NaN stays distinct", "function f() { return 0 / 0; }", m.Input{}, Outcome{Value: "NaN"}},
		{"non callable value", "let x = 4; x * 2;", m.Input{Args: []any{1}}, Outcome{Value: "8"}},
		{"thrown error", "function f() { throw new Error('boom'); }", m.Input{}, Outcome{Value: "Error: boom", Threw: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, err := sandbox.Compile(ctx, tt.src)
			require.NoError(t, err)

			got, err := runner.Invoke(ctx, tt.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGojaSandbox_ClassUnitIsNotCallable(t *testing.T) {
	sandbox := newTestSandbox(t, SandboxOptions{})

	runner, err := sandbox.Compile(context.Background(), "class A { constructor() { this.v = 1; } }")
	require.NoError(t, err)

	got, err := runner.Invoke(context.Background(), m.Input{}, nil)
	require.NoError(t, err)
	assert.True(t, got.Threw)
}

func TestGojaSandbox_InvokeExpr(t *testing.T) {
	sandbox := newTestSandbox(t, SandboxOptions{})
	ctx := context.Background()

	src := `
function $V(items) { return new Vec(items); }
class Vec {
  constructor(items) { this.items = items; }
  dup() { return $V(this.items.concat(this.items)); }
}
`
	runner, err := sandbox.Compile(ctx, src)
	require.NoError(t, err)

	got, err := runner.Invoke(ctx, m.Input{Expr: "$V([1, 2]).dup()"}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[1,2,1,2]}`, got.Value)

	_, err = runner.Invoke(ctx, m.Input{Expr: "$V(("}, nil)
	require.Error(t, err)
}

func TestGojaSandbox_Assertion(t *testing.T) {
	sandbox := newTestSandbox(t, SandboxOptions{})

	runner, err := sandbox.Compile(context.Background(), "function f(x) { __assert__(x > 0, 'positive'); return x; }")
	require.NoError(t, err)

	ok, err := runner.Invoke(context.Background(), m.Input{Args: []any{1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "1", ok.String())

	failed, err := runner.Invoke(context.Background(), m.Input{Args: []any{-1}}, nil)
	require.NoError(t, err)
	assert.True(t, failed.Threw)
	assert.Contains(t, failed.String(), "AssertionError: positive")
}

func TestGojaSandbox_Tracker(t *testing.T) {
	sandbox := newTestSandbox(t, SandboxOptions{})

	src := "function f(x) { __cov__.func.add(0); __cov__.stmt.add(3); __cov__.branch.add(1); return x; }"
	runner, err := sandbox.Compile(context.Background(), src)
	require.NoError(t, err)

	tracker := &recordingTracker{}
	_, err = runner.Invoke(context.Background(), m.Input{Args: []any{1}}, tracker)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, tracker.seen[syntax.SpaceFunc])
	assert.Equal(t, []int{3}, tracker.seen[syntax.SpaceStmt])
	assert.Equal(t, []int{1}, tracker.seen[syntax.SpaceBranch])
}

func TestGojaSandbox_Timeout(t *testing.T) {
	sandbox := newTestSandbox(t, SandboxOptions{Timeout: 50 * time.Millisecond})

	runner, err := sandbox.Compile(context.Background(), "function f() { while (true) {} }")
	require.NoError(t, err)

	_, err = runner.Invoke(context.Background(), m.Input{}, nil)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestGojaSandbox_StackOverflow(t *testing.T) {
	sandbox := newTestSandbox(t, SandboxOptions{MaxCallStackSize: 64})

	runner, err := sandbox.Compile(context.Background(), "function f(n) { return f(n + 1); }")
	require.NoError(t, err)

	got, err := runner.Invoke(context.Background(), m.Input{Args: []any{0}}, nil)
	require.NoError(t, err)
	assert.True(t, got.Threw)
}

func TestGojaSandbox_CompileError(t *testing.T) {
	sandbox := newTestSandbox(t, SandboxOptions{})

	_, err := sandbox.Compile(context.Background(), "function (")
	require.Error(t, err)

	var parseErr *syntax.ParseError
	require.ErrorAs(t, err, &parseErr)
}
