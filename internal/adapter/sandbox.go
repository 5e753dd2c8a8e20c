package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dop251/goja"
	"github.com/dop251/goja/ast"
	lru "github.com/hashicorp/golang-lru/v2"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
	"jsprobe.dev/pkg/jsprobe/internal/syntax"
)

// ErrTimeout is returned when an invocation runs past the sandbox timeout.
var ErrTimeout = errors.New("execution timed out")

// DefaultAssertIdent is the name the assertion helper is bound to.
const DefaultAssertIdent = "__assert__"

const (
	defaultTimeout   = 2 * time.Second
	defaultCacheSize = 128
	defaultMaxStack  = 4096
	assertionPrefix  = "AssertionError: "
)

// Tracker receives the ids an instrumented program reports through the
// tracking handle.
type Tracker interface {
	Track(space syntax.Space, id int)
}

// Outcome is the observable result of one invocation: the JSON rendering of
// the returned value, or the message of the thrown value.
type Outcome struct {
	Value string
	Threw bool
}

func (o Outcome) String() string {
	if o.Threw {
		return "throw: " + o.Value
	}

	return o.Value
}

// Compiler turns program source into a Runner.
type Compiler interface {
	Compile(ctx context.Context, src string) (Runner, error)
}

// Runner invokes a compiled program against one input. A fault raised by the
// program is part of the Outcome; the error return is reserved for timeouts,
// cancellation and inputs that do not compile.
type Runner interface {
	Invoke(ctx context.Context, input m.Input, tracker Tracker) (Outcome, error)
}

// SandboxOptions configures a GojaSandbox. Zero fields take defaults.
type SandboxOptions struct {
	Timeout          time.Duration
	CacheSize        int
	AssertIdent      string
	MaxCallStackSize int
}

// GojaSandbox compiles and runs programs in fresh goja runtimes. Compiled
// programs are shared between runtimes through a bounded cache keyed by the
// hash of their text.
type GojaSandbox struct {
	opts  SandboxOptions
	cache *lru.Cache[string, *goja.Program]
}

// NewGojaSandbox creates a sandbox.
func NewGojaSandbox(opts SandboxOptions) (*GojaSandbox, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}

	if opts.AssertIdent == "" {
		opts.AssertIdent = DefaultAssertIdent
	}

	if opts.MaxCallStackSize <= 0 {
		opts.MaxCallStackSize = defaultMaxStack
	}

	cache, err := lru.New[string, *goja.Program](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create program cache: %w", err)
	}

	return &GojaSandbox{opts: opts, cache: cache}, nil
}

// Compile prepares src for invocation. The value of the program's last
// statement becomes the unit that argument inputs are applied to: a trailing
// function or class declaration yields its binding, a trailing expression
// statement yields its value.
func (s *GojaSandbox) Compile(ctx context.Context, src string) (Runner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	program, err := syntax.Parse(src)
	if err != nil {
		return nil, err
	}

	r := &gojaRunner{sandbox: s, body: syntax.Generate(program)}

	unitBody := append([]ast.Statement(nil), program.Body...)
	if n := len(unitBody); n > 0 {
		switch last := unitBody[n-1].(type) {
		case *ast.ExpressionStatement:
			unitBody[n-1] = syntax.Return(last.Expression)
		case *ast.FunctionDeclaration:
			unitBody = append(unitBody, returnName(last.Function.Name))
		case *ast.ClassDeclaration:
			unitBody = append(unitBody, returnName(last.Class.Name))
		}
	}

	r.unit, err = s.compile(s.wrap(syntax.Generate(&ast.Program{Body: unitBody})))
	if err != nil {
		return nil, err
	}

	return r, nil
}

func returnName(name *ast.Identifier) ast.Statement {
	if name == nil {
		return &ast.EmptyStatement{}
	}

	return syntax.Return(syntax.Ident(string(name.Name)))
}

// wrap makes body the body of an entry function taking the tracking handle
// and the assertion helper as parameters.
func (s *GojaSandbox) wrap(body string) string {
	return fmt.Sprintf("(function (%s, %s) {\n%s\n})", syntax.TrackingHandle, s.opts.AssertIdent, body)
}

func (s *GojaSandbox) compile(text string) (*goja.Program, error) {
	sum := sha256.Sum256([]byte(text))
	key := hex.EncodeToString(sum[:])

	if program, ok := s.cache.Get(key); ok {
		return program, nil
	}

	program, err := goja.Compile("", text, false)
	if err != nil {
		return nil, fmt.Errorf("failed to compile program: %w", err)
	}

	s.cache.Add(key, program)

	return program, nil
}

type gojaRunner struct {
	sandbox *GojaSandbox
	body    string
	unit    *goja.Program
}

func (r *gojaRunner) Invoke(ctx context.Context, input m.Input, tracker Tracker) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	program := r.unit

	if input.IsExpr() {
		var err error

		program, err = r.sandbox.compile(r.sandbox.wrap(r.body + "\nreturn (" + input.Expr + ");"))
		if err != nil {
			return Outcome{}, fmt.Errorf("input %q: %w", input.Expr, err)
		}
	}

	vm := goja.New()
	vm.SetMaxCallStackSize(r.sandbox.opts.MaxCallStackSize)

	timer := time.AfterFunc(r.sandbox.opts.Timeout, func() {
		vm.Interrupt(ErrTimeout)
	})
	defer timer.Stop()

	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	value, err := r.run(vm, program, input, tracker)
	if err != nil {
		return describeFault(err)
	}

	return Outcome{Value: stringify(vm, value)}, nil
}

func (r *gojaRunner) run(vm *goja.Runtime, program *goja.Program, input m.Input, tracker Tracker) (goja.Value, error) {
	entry, err := vm.RunProgram(program)
	if err != nil {
		return nil, err
	}

	call, ok := goja.AssertFunction(entry)
	if !ok {
		return nil, errors.New("entry is not a function")
	}

	value, err := call(goja.Undefined(), trackingHandle(vm, tracker), vm.ToValue(assertion(vm)))
	if err != nil || input.IsExpr() {
		return value, err
	}

	unit, ok := goja.AssertFunction(value)
	if !ok {
		return value, nil
	}

	args := make([]goja.Value, len(input.Args))
	for i, arg := range input.Args {
		args[i] = vm.ToValue(arg)
	}

	return unit(goja.Undefined(), args...)
}

func trackingHandle(vm *goja.Runtime, tracker Tracker) *goja.Object {
	handle := vm.NewObject()

	for _, space := range []syntax.Space{syntax.SpaceFunc, syntax.SpaceStmt, syntax.SpaceBranch} {
		set := vm.NewObject()
		_ = set.Set("add", func(id int) {
			if tracker != nil {
				tracker.Track(space, id)
			}
		})
		_ = handle.Set(string(space), set)
	}

	return handle
}

func assertion(vm *goja.Runtime) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if call.Argument(0).ToBoolean() {
			return goja.Undefined()
		}

		msg := "assertion failed"
		if arg := call.Argument(1); !goja.IsUndefined(arg) {
			msg = arg.String()
		}

		errObj, err := vm.New(vm.Get("Error"), vm.ToValue(assertionPrefix+msg))
		if err != nil {
			panic(vm.NewTypeError(assertionPrefix + msg))
		}

		panic(errObj)
	}
}

func describeFault(err error) (Outcome, error) {
	var (
		interrupted *goja.InterruptedError
		overflow    *goja.StackOverflowError
		exception   *goja.Exception
	)

	switch {
	case errors.As(err, &interrupted):
		if errors.Is(err, ErrTimeout) {
			return Outcome{}, ErrTimeout
		}

		return Outcome{}, fmt.Errorf("execution interrupted: %w", err)
	case errors.As(err, &overflow):
		return Outcome{Value: "RangeError: Maximum call stack size exceeded", Threw: true}, nil
	case errors.As(err, &exception):
		if v := exception.Value(); v != nil {
			return Outcome{Value: v.String(), Threw: true}, nil
		}

		return Outcome{Value: exception.Error(), Threw: true}, nil
	}

	slog.Debug("Unexpected sandbox fault", "error", err)

	return Outcome{Value: err.Error(), Threw: true}, nil
}

// stringify renders a value the way JSON.stringify does, keeping primitives
// JSON cannot express (undefined, NaN, Infinity) distinguishable.
func stringify(vm *goja.Runtime, v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}

	if _, ok := goja.AssertFunction(v); ok {
		return "[function]"
	}

	obj, isObject := v.(*goja.Object)
	if _, isString := v.Export().(string); !isObject && !isString {
		return v.String()
	}

	stringifyFn, ok := goja.AssertFunction(vm.Get("JSON").ToObject(vm).Get("stringify"))
	if !ok {
		return v.String()
	}

	out, err := stringifyFn(goja.Undefined(), v)
	if err != nil || goja.IsUndefined(out) {
		if obj != nil {
			return obj.String()
		}

		return v.String()
	}

	return out.String()
}
