// Package starlark evaluates Starlark expressions over the sets and
// relations of a registry.
//
// Every set and relation whose name is a valid identifier becomes a global:
//
//	A | B
//	compose(R, E) == R * E
//	reflexive(R, A) and symmetric(R)
//	len(complement(A))
//
// A name bound both as a set and as a relation, or one that starts with a
// digit, is reachable only through get_set("name") and get_relation("name").
package starlark

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"unicode"
	"unicode/utf8"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/leapstack-labs/relcalc/internal/registry"
)

// ExecutionContext holds the globals for evaluating expressions against one
// registry. Globals are rebuilt on every evaluation so that definitions
// made between evaluations are visible.
type ExecutionContext struct {
	reg    *registry.Registry
	logger *slog.Logger

	// print receives the output of print(); nil discards it
	print func(msg string)

	maxSteps uint64
}

// ContextOption is a functional option for configuring ExecutionContext.
type ContextOption func(*ExecutionContext)

// WithPrint routes print() output to fn.
func WithPrint(fn func(msg string)) ContextOption {
	return func(ctx *ExecutionContext) {
		ctx.print = fn
	}
}

// WithLogger sets the logger used for evaluation diagnostics.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(ctx *ExecutionContext) {
		if logger != nil {
			ctx.logger = logger
		}
	}
}

// WithMaxSteps bounds the computation steps of a single evaluation.
func WithMaxSteps(n uint64) ContextOption {
	return func(ctx *ExecutionContext) {
		ctx.maxSteps = n
	}
}

// DefaultMaxSteps bounds evaluation when no WithMaxSteps option is given.
const DefaultMaxSteps = 1_000_000

// NewContext creates an execution context over reg.
func NewContext(reg *registry.Registry, opts ...ContextOption) *ExecutionContext {
	ctx := &ExecutionContext{
		reg:      reg,
		logger:   slog.New(slog.DiscardHandler),
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// Globals returns the predeclared names: the builtins, U, and every
// registry entry with an unambiguous identifier name.
func (ctx *ExecutionContext) Globals() starlark.StringDict {
	globals := builtins(ctx.reg)
	entries := make(starlark.StringDict)

	setNames := ctx.reg.SetNames()
	relNames := ctx.reg.RelationNames()
	both := make(map[string]bool)
	for _, name := range relNames {
		if ctx.reg.Exists(registry.KindSet, name) {
			both[name] = true
		}
	}

	for _, name := range setNames {
		if both[name] || !isIdentifier(name) {
			continue
		}
		s, _ := ctx.reg.Set(name)
		entries[name] = SetValue{s}
	}
	for _, name := range relNames {
		if both[name] || !isIdentifier(name) {
			continue
		}
		r, _ := ctx.reg.Relation(name)
		entries[name] = RelationValue{r}
	}
	if len(both) > 0 {
		ctx.logger.Debug("names bound as both set and relation are not globals", "names", slices.Sorted(maps.Keys(both)))
	}

	// Registry names are upper case and builtins lower case, so they never collide.
	maps.Copy(globals, entries)
	return globals
}

// Eval evaluates a single expression. Cancelling ctx interrupts evaluation.
func (ctx *ExecutionContext) Eval(c context.Context, expr string) (starlark.Value, error) {
	if c != nil {
		if err := c.Err(); err != nil {
			return nil, err
		}
	}
	thread := ctx.newThread("expr")
	stop := cancelOnDone(c, thread)
	defer stop()

	ctx.logger.Debug("evaluating expression", "expr", expr)
	v, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "<expr>", expr, ctx.Globals())
	if err != nil {
		return nil, &EvalError{Expr: expr, Err: err}
	}
	return v, nil
}

// isIdentifier reports whether a valid registry name can be used as a
// Starlark identifier, i.e. it does not start with a digit.
func isIdentifier(name string) bool {
	c, _ := utf8.DecodeRuneInString(name)
	return c == '_' || unicode.IsLetter(c)
}
