package starlark

import (
	"errors"
	"fmt"
	"math"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/leapstack-labs/relcalc/pkg/algebra"
	"github.com/leapstack-labs/relcalc/pkg/notation"
)

// SetValue exposes an algebra.Set to Starlark. It is immutable.
//
//	A | B   union
//	A & B   intersection
//	A - B   difference
//	A * B   cartesian product (a relation)
//	A <= B  subset
type SetValue struct {
	Set algebra.Set
}

var (
	_ starlark.Value      = SetValue{}
	_ starlark.HasBinary  = SetValue{}
	_ starlark.Comparable = SetValue{}
	_ starlark.Sequence   = SetValue{}
)

func (s SetValue) String() string        { return notation.FormatSet(s.Set) }
func (s SetValue) Type() string          { return "set" }
func (s SetValue) Freeze()               {}
func (s SetValue) Truth() starlark.Bool  { return starlark.Bool(!s.Set.IsEmpty()) }
func (s SetValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: set") }
func (s SetValue) Len() int              { return s.Set.Len() }

// Iterate yields the members in display order.
func (s SetValue) Iterate() starlark.Iterator {
	atoms := s.Set.Sorted()
	vals := make([]starlark.Value, len(atoms))
	for i, a := range atoms {
		vals[i] = FromAtom(a)
	}
	return &sliceIterator{vals: vals}
}

// CompareSameType orders sets by inclusion.
func (s SetValue) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	other, ok := y.(SetValue)
	if !ok {
		return false, fmt.Errorf("cannot compare set with %s", y.Type())
	}
	t := other.Set
	switch op {
	case syntax.EQL:
		return s.Set.Equal(t), nil
	case syntax.NEQ:
		return !s.Set.Equal(t), nil
	case syntax.LE:
		return s.Set.SubsetOf(t), nil
	case syntax.LT:
		return s.Set.SubsetOf(t) && !s.Set.Equal(t), nil
	case syntax.GE:
		return t.SubsetOf(s.Set), nil
	case syntax.GT:
		return t.SubsetOf(s.Set) && !s.Set.Equal(t), nil
	}
	return false, fmt.Errorf("%s not supported for sets", op)
}

// Binary implements the set operators and membership.
func (s SetValue) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	if op == syntax.IN {
		if side != starlark.Right {
			return nil, nil
		}
		a, err := ToAtom(y)
		if err != nil {
			return starlark.False, nil
		}
		return starlark.Bool(s.Set.Contains(a)), nil
	}

	other, ok := y.(SetValue)
	if !ok {
		return nil, nil
	}
	l, r := s.Set, other.Set
	if side == starlark.Right {
		l, r = r, l
	}
	switch op {
	case syntax.PIPE:
		return SetValue{algebra.Union(l, r)}, nil
	case syntax.AMP:
		return SetValue{algebra.Intersection(l, r)}, nil
	case syntax.MINUS:
		return SetValue{algebra.Difference(l, r)}, nil
	case syntax.STAR:
		return RelationValue{algebra.CartesianProduct(l, r)}, nil
	}
	return nil, nil
}

// RelationValue exposes an algebra.Relation to Starlark. It is immutable.
//
//	R | S   union
//	R & S   intersection
//	R - S   difference
//	R * S   composition, R first
type RelationValue struct {
	Relation algebra.Relation
}

var (
	_ starlark.Value      = RelationValue{}
	_ starlark.HasBinary  = RelationValue{}
	_ starlark.Comparable = RelationValue{}
	_ starlark.Sequence   = RelationValue{}
)

func (r RelationValue) String() string        { return notation.FormatRelation(r.Relation) }
func (r RelationValue) Type() string          { return "relation" }
func (r RelationValue) Freeze()               {}
func (r RelationValue) Truth() starlark.Bool  { return starlark.Bool(!r.Relation.IsEmpty()) }
func (r RelationValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: relation") }
func (r RelationValue) Len() int              { return r.Relation.Len() }

// Iterate yields (first, second) tuples in display order.
func (r RelationValue) Iterate() starlark.Iterator {
	pairs := r.Relation.Sorted()
	vals := make([]starlark.Value, len(pairs))
	for i, p := range pairs {
		vals[i] = FromPair(p)
	}
	return &sliceIterator{vals: vals}
}

// CompareSameType supports equality only.
func (r RelationValue) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	other, ok := y.(RelationValue)
	if !ok {
		return false, fmt.Errorf("cannot compare relation with %s", y.Type())
	}
	t := other.Relation
	switch op {
	case syntax.EQL:
		return r.Relation.Equal(t), nil
	case syntax.NEQ:
		return !r.Relation.Equal(t), nil
	}
	return false, fmt.Errorf("%s not supported for relations", op)
}

// Binary implements the relation operators and pair membership.
func (r RelationValue) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	if op == syntax.IN {
		if side != starlark.Right {
			return nil, nil
		}
		p, err := ToPair(y)
		if err != nil {
			return starlark.False, nil
		}
		return starlark.Bool(r.Relation.Contains(p)), nil
	}

	other, ok := y.(RelationValue)
	if !ok {
		return nil, nil
	}
	l, rr := r.Relation, other.Relation
	if side == starlark.Right {
		l, rr = rr, l
	}
	switch op {
	case syntax.PIPE:
		return RelationValue{algebra.UnionRelations(l, rr)}, nil
	case syntax.AMP:
		return RelationValue{algebra.IntersectRelations(l, rr)}, nil
	case syntax.MINUS:
		return RelationValue{algebra.DifferenceRelations(l, rr)}, nil
	case syntax.STAR:
		return RelationValue{algebra.Compose(l, rr)}, nil
	}
	return nil, nil
}

type sliceIterator struct {
	vals []starlark.Value
	i    int
}

func (it *sliceIterator) Next(p *starlark.Value) bool {
	if it.i >= len(it.vals) {
		return false
	}
	*p = it.vals[it.i]
	it.i++
	return true
}

func (it *sliceIterator) Done() {}

// FromAtom converts an atom to the matching Starlark scalar.
func FromAtom(a algebra.Atom) starlark.Value {
	switch a.Kind() {
	case algebra.KindInt:
		v, _ := a.IntValue()
		return starlark.MakeInt64(v)
	case algebra.KindFloat:
		v, _ := a.FloatValue()
		return starlark.Float(v)
	default:
		v, _ := a.StringValue()
		return starlark.String(v)
	}
}

// FromPair converts a pair to a 2-tuple.
func FromPair(p algebra.Pair) starlark.Value {
	return starlark.Tuple{FromAtom(p.First), FromAtom(p.Second)}
}

// ToAtom converts a Starlark int, float or string to an atom. Strings are
// taken verbatim, not parsed.
func ToAtom(v starlark.Value) (algebra.Atom, error) {
	switch x := v.(type) {
	case starlark.Int:
		i, ok := x.Int64()
		if !ok {
			return algebra.Atom{}, fmt.Errorf("integer %s out of range", x)
		}
		return algebra.Int(i), nil
	case starlark.Float:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return algebra.Atom{}, fmt.Errorf("element must be finite, got %s", x)
		}
		return algebra.Float(f), nil
	case starlark.String:
		if string(x) == "" {
			return algebra.Atom{}, errors.New(notation.MsgEmptyElement)
		}
		return algebra.Str(string(x)), nil
	}
	return algebra.Atom{}, fmt.Errorf("element must be int, float or string, not %s", v.Type())
}

// ToPair converts a 2-element tuple or list to a pair.
func ToPair(v starlark.Value) (algebra.Pair, error) {
	seq, ok := v.(starlark.Indexable)
	if !ok || seq.Len() != 2 {
		return algebra.Pair{}, fmt.Errorf("pair must be a 2-element tuple, not %s", v.Type())
	}
	if _, isString := v.(starlark.String); isString {
		return algebra.Pair{}, fmt.Errorf("pair must be a 2-element tuple, not string")
	}
	first, err := ToAtom(seq.Index(0))
	if err != nil {
		return algebra.Pair{}, err
	}
	second, err := ToAtom(seq.Index(1))
	if err != nil {
		return algebra.Pair{}, err
	}
	return algebra.P(first, second), nil
}
