package notation

import (
	"strings"

	"github.com/leapstack-labs/relcalc/pkg/algebra"
)

// FormatAtom renders a single atom; floats always carry a decimal point.
func FormatAtom(a algebra.Atom) string { return a.String() }

// FormatPair renders p as "(a,b)".
func FormatPair(p algebra.Pair) string { return p.String() }

// FormatSet renders s as "{1, 2.5, a}" in display order.
func FormatSet(s algebra.Set) string {
	atoms := s.Sorted()
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		parts[i] = FormatAtom(a)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FormatRelation renders r as "{(1,a), (2,b)}" in display order.
func FormatRelation(r algebra.Relation) string {
	pairs := r.Sorted()
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = FormatPair(p)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SetValues returns the members of s in display order as plain Go values,
// suitable for JSON or YAML encoding.
func SetValues(s algebra.Set) []any {
	atoms := s.Sorted()
	out := make([]any, len(atoms))
	for i, a := range atoms {
		out[i] = a.Value()
	}
	return out
}

// RelationValues returns the pairs of r in display order as two-element
// slices of plain Go values.
func RelationValues(r algebra.Relation) [][]any {
	pairs := r.Sorted()
	out := make([][]any, len(pairs))
	for i, p := range pairs {
		out[i] = []any{p.First.Value(), p.Second.Value()}
	}
	return out
}
