package starlark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"

	"github.com/leapstack-labs/relcalc/internal/registry"
	"github.com/leapstack-labs/relcalc/internal/testutil"
	"github.com/leapstack-labs/relcalc/pkg/algebra"
)

func newTestContext(t *testing.T, opts ...ContextOption) (*ExecutionContext, *registry.Registry) {
	t.Helper()
	reg := registry.New(testutil.NewTestLogger(t))
	opts = append([]ContextOption{WithLogger(testutil.NewTestLogger(t))}, opts...)
	return NewContext(reg, opts...), reg
}

func TestEval_Expressions(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"union", "A | B", "{1, a, b, c}"},
		{"intersection", "A & C", "{1}"},
		{"difference", "A - B", "{1}"},
		{"complement default universe", "complement(A)", "{2, 3, 4, 5, c, d, e, f, g, h, i, j, k}"},
		{"complement explicit universe", "complement(A, A | B)", "{c}"},
		{"product size", "len(A * B)", "9"},
		{"product builtin", "product(C, C) == C * C", "True"},
		{"composition operator", "R * E == compose(R, E)", "True"},
		{"composition order matters", "E * R == R * E", "False"},
		{"power", "power(R, 3) == R", "True"},
		{"bin defaults", "bin() == E", "True"},
		{"bin explicit", "bin(E, set(1), B)", "{(1,a)}"},
		{"reflexive", "reflexive(R, A)", "True"},
		{"symmetric", "symmetric(E)", "False"},
		{"transitive", "transitive(R)", "True"},
		{"int membership", "1 in A", "True"},
		{"string membership", `"c" in A`, "False"},
		{"pair membership", `(1, "a") in E`, "True"},
		{"list pair membership", `[2, "b"] in E`, "True"},
		{"iteration order", "[x for x in C]", "[1, 2, 3]"},
		{"relation iteration", "[p for p in E][0]", `(1, "a")`},
		{"set from notation", `set("{1, 2.5, x}")`, "{1, 2.5, x}"},
		{"set from values", `set(1, "a") <= A`, "True"},
		{"set from list", `set([3, 3, 1])`, "{1, 3}"},
		{"proper subset", "A < A", "False"},
		{"relation ordering unsupported", `relation("(1,a),(2,b)") <= E`, ""},
		{"relation from pairs", `relation((1, "a"), (2, "b")) | relation("(3,c)") == E`, "True"},
		{"relation union builtin", "union(E, E) == E", "True"},
		{"set difference builtin", "difference(B, A)", "{c}"},
		{"lookup builtin", `get_set("a") == A`, "True"},
		{"lookup relation builtin", `len(get_relation("R"))`, "9"},
		{"empty set is falsy", "bool(A & set())", "False"},
		{"equal numbers are one element", "set(1, 1.0)", "{1}"},
		{"float membership", "1.0 in A", "True"},
		{"float reflexive pair", `reflexive(relation("(1.0,1.0)"), set(1))`, "True"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(t)
			got, err := ctx.Eval(context.Background(), tt.expr)
			if tt.want == "" {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		target error
		substr string
	}{
		{name: "unknown name", expr: `get_set("nope")`, target: registry.ErrNotFound},
		{name: "bad exponent", expr: "power(R, 0)", target: algebra.ErrInvalidArgument},
		{name: "mixed kinds", expr: "A | E", substr: "unknown binary op"},
		{name: "mixed kinds builtin", expr: "union(A, E)", substr: "operands must both be sets"},
		{name: "syntax", expr: "A |", substr: "syntax error"},
		{name: "undefined", expr: "NOPE | A", substr: "undefined: NOPE"},
		{name: "wrong argument type", expr: "compose(A, E)", substr: "want relation"},
		{name: "bad notation", expr: `relation("1,2")`, substr: "ordered pairs"},
		{name: "unhashable", expr: "{A: 1}", substr: "unhashable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(t)
			_, err := ctx.Eval(context.Background(), tt.expr)
			require.Error(t, err)

			var evalErr *EvalError
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, tt.expr, evalErr.Expr)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if tt.substr != "" {
				assert.Contains(t, err.Error(), tt.substr)
			}
		})
	}
}

func TestEval_SeesLaterDefinitions(t *testing.T) {
	ctx, reg := newTestContext(t)

	_, err := ctx.Eval(context.Background(), "X")
	require.Error(t, err)

	require.NoError(t, reg.DefineSet("x", testutil.MustSet(t, "7, 8")))
	got, err := ctx.Eval(context.Background(), "X | C")
	require.NoError(t, err)
	assert.Equal(t, "{1, 2, 3, 7, 8}", got.String())
}

func TestGlobals_AmbiguousAndNonIdentifierNames(t *testing.T) {
	ctx, reg := newTestContext(t)
	require.NoError(t, reg.DefineSet("Q", testutil.MustSet(t, "1")))
	require.NoError(t, reg.DefineRelation("Q", testutil.MustRelation(t, "(1,1)")))
	require.NoError(t, reg.DefineSet("1X", testutil.MustSet(t, "2")))

	globals := ctx.Globals()
	assert.NotContains(t, globals, "Q")
	assert.NotContains(t, globals, "1X")
	assert.Contains(t, globals, "A")
	assert.Contains(t, globals, "U")
	assert.Contains(t, globals, "E")
	for _, name := range BuiltinNames {
		assert.Contains(t, globals, name)
	}

	got, err := ctx.Eval(context.Background(), `get_set("Q") * get_set("1x")`)
	require.NoError(t, err)
	assert.Equal(t, "{(1,2)}", got.String())
}

func TestEval_Print(t *testing.T) {
	var printed []string
	ctx, _ := newTestContext(t, WithPrint(func(msg string) { printed = append(printed, msg) }))

	got, err := ctx.Eval(context.Background(), "print(A & B)")
	require.NoError(t, err)
	assert.Equal(t, starlark.None, got)
	assert.Equal(t, []string{"{a, b}"}, printed)
}

func TestEval_StepLimit(t *testing.T) {
	ctx, _ := newTestContext(t, WithMaxSteps(1000))
	_, err := ctx.Eval(context.Background(), "len([x for x in range(100000)])")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many steps")
}

func TestEval_CancelledContext(t *testing.T) {
	ctx, _ := newTestContext(t)
	c, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ctx.Eval(c, "A")
	require.ErrorIs(t, err, context.Canceled)
}
