package starlark

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/leapstack-labs/relcalc/internal/registry"
	"github.com/leapstack-labs/relcalc/pkg/algebra"
	"github.com/leapstack-labs/relcalc/pkg/notation"
)

// BuiltinNames lists the functions available to every expression.
var BuiltinNames = []string{
	"set", "relation", "union", "intersection", "difference", "complement",
	"product", "compose", "power", "bin", "reflexive", "symmetric",
	"transitive", "get_set", "get_relation",
}

type builtinFunc = func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

// builtins returns the builtin functions bound to reg.
func builtins(reg *registry.Registry) starlark.StringDict {
	b := starlark.NewBuiltin
	return starlark.StringDict{
		"set":          b("set", makeSet),
		"relation":     b("relation", makeRelation),
		"union":        b("union", binaryOp(syntax.PIPE)),
		"intersection": b("intersection", binaryOp(syntax.AMP)),
		"difference":   b("difference", binaryOp(syntax.MINUS)),
		"complement":   b("complement", complementFn(reg)),
		"product":      b("product", productFn),
		"compose":      b("compose", composeFn),
		"power":        b("power", powerFn),
		"bin":          b("bin", binFn(reg)),
		"reflexive":    b("reflexive", reflexiveFn),
		"symmetric":    b("symmetric", relationCheck(algebra.IsSymmetric)),
		"transitive":   b("transitive", relationCheck(algebra.IsTransitive)),
		"get_set":      b("get_set", getSetFn(reg)),
		"get_relation": b("get_relation", getRelationFn(reg)),
	}
}

// makeSet builds a set from set notation, from its arguments, or from one
// iterable argument: set("{1, a}"), set(1, "a"), set([1, "a"]).
func makeSet(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}
	if len(args) == 1 {
		switch x := args[0].(type) {
		case starlark.String:
			s, err := notation.ParseSet(string(x))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fn.Name(), err)
			}
			return SetValue{s}, nil
		case starlark.Iterable:
			args = collect(x)
		}
	}
	var s algebra.Set
	for _, v := range args {
		a, err := ToAtom(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		s.Add(a)
	}
	return SetValue{s}, nil
}

// makeRelation builds a relation from relation notation, from pair
// arguments, or from one iterable of pairs.
func makeRelation(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}
	if len(args) == 1 {
		switch x := args[0].(type) {
		case starlark.String:
			r, err := notation.ParseRelation(string(x))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fn.Name(), err)
			}
			return RelationValue{r}, nil
		case *starlark.List, RelationValue:
			args = collect(x.(starlark.Iterable))
		}
	}
	var r algebra.Relation
	for _, v := range args {
		p, err := ToPair(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		r.Add(p)
	}
	return RelationValue{r}, nil
}

func collect(it starlark.Iterable) starlark.Tuple {
	iter := it.Iterate()
	defer iter.Done()
	var out starlark.Tuple
	var v starlark.Value
	for iter.Next(&v) {
		out = append(out, v)
	}
	return out
}

// binaryOp returns a builtin applying the set or relation operator op to
// two operands of the same kind.
func binaryOp(op syntax.Token) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var x, y starlark.Value
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &x, &y); err != nil {
			return nil, err
		}
		switch x.(type) {
		case SetValue, RelationValue:
		default:
			return nil, fmt.Errorf("%s: want set or relation, got %s", fn.Name(), x.Type())
		}
		if x.Type() != y.Type() {
			return nil, fmt.Errorf("%s: operands must both be %ss, got %s", fn.Name(), x.Type(), y.Type())
		}
		return starlark.Binary(op, x, y)
	}
}

func complementFn(reg *registry.Registry) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var s SetValue
		u := SetValue{reg.Universe()}
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "s", &s, "u?", &u); err != nil {
			return nil, err
		}
		return SetValue{algebra.Complement(s.Set, u.Set)}, nil
	}
}

func productFn(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var a, b SetValue
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &a, &b); err != nil {
		return nil, err
	}
	return RelationValue{algebra.CartesianProduct(a.Set, b.Set)}, nil
}

func composeFn(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var r1, r2 RelationValue
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &r1, &r2); err != nil {
		return nil, err
	}
	return RelationValue{algebra.Compose(r1.Relation, r2.Relation)}, nil
}

func powerFn(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var r RelationValue
	var n int
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "r", &r, "n", &n); err != nil {
		return nil, err
	}
	out, err := algebra.Power(r.Relation, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	return RelationValue{out}, nil
}

// binFn computes bin(e, c, b); omitted arguments default to the
// registry's E, C and B.
func binFn(reg *registry.Registry) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var e RelationValue
		var c, b SetValue
		var err error
		if e.Relation, err = reg.Relation(registry.RelE); err != nil {
			return nil, err
		}
		if c.Set, err = reg.Set(registry.SetC); err != nil {
			return nil, err
		}
		if b.Set, err = reg.Set(registry.SetB); err != nil {
			return nil, err
		}
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "e?", &e, "c?", &c, "b?", &b); err != nil {
			return nil, err
		}
		return RelationValue{algebra.Bin(e.Relation, c.Set, b.Set)}, nil
	}
}

func reflexiveFn(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var r RelationValue
	var s SetValue
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "r", &r, "s", &s); err != nil {
		return nil, err
	}
	return starlark.Bool(algebra.IsReflexive(r.Relation, s.Set)), nil
}

func relationCheck(check func(algebra.Relation) bool) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var r RelationValue
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "r", &r); err != nil {
			return nil, err
		}
		return starlark.Bool(check(r.Relation)), nil
	}
}

func getSetFn(reg *registry.Registry) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
			return nil, err
		}
		s, err := reg.Set(name)
		if err != nil {
			return nil, err
		}
		return SetValue{s}, nil
	}
}

func getRelationFn(reg *registry.Registry) builtinFunc {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
			return nil, err
		}
		r, err := reg.Relation(name)
		if err != nil {
			return nil, err
		}
		return RelationValue{r}, nil
	}
}
