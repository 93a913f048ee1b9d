package algebra

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Pair is an ordered 2-tuple of atoms.
type Pair struct {
	First  Atom
	Second Atom
}

// P is shorthand for Pair{First: a, Second: b}.
func P(a, b Atom) Pair { return Pair{First: a, Second: b} }

// Inverse returns (Second, First).
func (p Pair) Inverse() Pair { return Pair{First: p.Second, Second: p.First} }

// String formats the pair as "(a,b)".
func (p Pair) String() string {
	return "(" + p.First.String() + "," + p.Second.String() + ")"
}

// key returns the canonical map key of p (see Atom.key).
func (p Pair) key() Pair { return Pair{First: p.First.key(), Second: p.Second.key()} }

// Relation is an unordered collection of unique pairs.
// The zero value is an empty relation ready to use.
type Relation struct {
	// pairs maps each canonical key to the pair stored for it.
	pairs map[Pair]Pair
}

// NewRelation returns a relation holding the given pairs.
func NewRelation(pairs ...Pair) Relation {
	r := Relation{pairs: make(map[Pair]Pair, len(pairs))}
	for _, p := range pairs {
		r.put(p)
	}
	return r
}

func (r Relation) put(p Pair) {
	k := p.key()
	if _, ok := r.pairs[k]; !ok {
		r.pairs[k] = p
	}
}

// Add inserts a pair into the relation.
func (r *Relation) Add(p Pair) {
	if r.pairs == nil {
		r.pairs = make(map[Pair]Pair)
	}
	r.put(p)
}

// Contains reports whether p is in r.
func (r Relation) Contains(p Pair) bool {
	_, ok := r.pairs[p.key()]
	return ok
}

// Len returns the number of pairs in r.
func (r Relation) Len() int { return len(r.pairs) }

// IsEmpty reports whether r has no pairs.
func (r Relation) IsEmpty() bool { return len(r.pairs) == 0 }

// All iterates over the pairs of r in unspecified order.
func (r Relation) All() iter.Seq[Pair] {
	return maps.Values(r.pairs)
}

// Sorted returns the pairs of r ordered by the display form of the first
// element, then of the second.
func (r Relation) Sorted() []Pair {
	return slices.SortedFunc(maps.Values(r.pairs), func(a, b Pair) int {
		if c := cmp.Compare(a.First.String(), b.First.String()); c != 0 {
			return c
		}
		return cmp.Compare(a.Second.String(), b.Second.String())
	})
}

// Clone returns an independent copy of r.
func (r Relation) Clone() Relation {
	return Relation{pairs: maps.Clone(r.pairs)}
}

// Equal reports whether r and s hold exactly the same pairs.
func (r Relation) Equal(s Relation) bool {
	if len(r.pairs) != len(s.pairs) {
		return false
	}
	for k := range r.pairs {
		if _, ok := s.pairs[k]; !ok {
			return false
		}
	}
	return true
}

// IntersectRelations returns the pairs of r1 that are also in r2.
func IntersectRelations(r1, r2 Relation) Relation {
	out := Relation{pairs: make(map[Pair]Pair)}
	for k, p := range r1.pairs {
		if _, ok := r2.pairs[k]; ok {
			out.pairs[k] = p
		}
	}
	return out
}

// UnionRelations returns the pairs present in r1 or r2.
func UnionRelations(r1, r2 Relation) Relation {
	out := Relation{pairs: make(map[Pair]Pair, len(r1.pairs)+len(r2.pairs))}
	for _, p := range r1.pairs {
		out.put(p)
	}
	for _, p := range r2.pairs {
		out.put(p)
	}
	return out
}

// DifferenceRelations returns the pairs of r1 that are not in r2.
func DifferenceRelations(r1, r2 Relation) Relation {
	out := Relation{pairs: make(map[Pair]Pair)}
	for k, p := range r1.pairs {
		if _, ok := r2.pairs[k]; !ok {
			out.pairs[k] = p
		}
	}
	return out
}

// IsReflexive reports whether (a,a) is in r for every a in s.
func IsReflexive(r Relation, s Set) bool {
	for k := range s.items {
		if _, ok := r.pairs[Pair{First: k, Second: k}]; !ok {
			return false
		}
	}
	return true
}

// IsSymmetric reports whether (b,a) is in r for every (a,b) in r.
func IsSymmetric(r Relation) bool {
	for k := range r.pairs {
		if _, ok := r.pairs[k.Inverse()]; !ok {
			return false
		}
	}
	return true
}

// IsTransitive reports whether (a,c) is in r whenever (a,b) and (b,c) are.
func IsTransitive(r Relation) bool {
	for p := range r.pairs {
		for q := range r.pairs {
			if p.Second != q.First {
				continue
			}
			if _, ok := r.pairs[Pair{First: p.First, Second: q.Second}]; !ok {
				return false
			}
		}
	}
	return true
}

// Compose returns r1 ∘ r2: the pairs (a,c) for which some b has (a,b) in r1
// and (b,c) in r2. Middle atoms match by value.
func Compose(r1, r2 Relation) Relation {
	out := Relation{pairs: make(map[Pair]Pair)}
	for pk, p := range r1.pairs {
		for qk, q := range r2.pairs {
			if pk.Second == qk.First {
				out.put(Pair{First: p.First, Second: q.Second})
			}
		}
	}
	return out
}

// Power returns r composed with itself n-1 times, so Power(r, 1) is a copy
// of r and Power(r, k) = Power(r, k-1) ∘ r. n must be at least 1.
func Power(r Relation, n int) (Relation, error) {
	if n < 1 {
		return Relation{}, fmt.Errorf("%w: power exponent must be a positive integer, got %d", ErrInvalidArgument, n)
	}
	out := r.Clone()
	for range n - 1 {
		out = Compose(out, r)
	}
	return out, nil
}

// Bin returns (c × b) ∩ e.
func Bin(e Relation, c, b Set) Relation {
	return IntersectRelations(CartesianProduct(c, b), e)
}

// Witness returns an intermediate atom b such that (p.First, b) is in r1
// and (b, p.Second) is in r2, i.e. a reason why p is in Compose(r1, r2).
// When several witnesses exist the smallest in display order is returned.
func Witness(r1, r2 Relation, p Pair) (Atom, bool) {
	pk := p.key()
	var found []Atom
	for qk, q := range r1.pairs {
		if qk.First != pk.First {
			continue
		}
		if _, ok := r2.pairs[Pair{First: qk.Second, Second: pk.Second}]; ok {
			found = append(found, q.Second)
		}
	}
	if len(found) == 0 {
		return Atom{}, false
	}
	return slices.MinFunc(found, Compare), true
}
