package algebra

import (
	"iter"
	"maps"
	"slices"
)

// Set is an unordered collection of unique atoms.
// The zero value is an empty set ready to use.
type Set struct {
	// items maps each canonical key to the atom stored for it.
	items map[Atom]Atom
}

// NewSet returns a set holding the given atoms. Duplicates collapse, and
// the first of several numerically equal atoms is kept.
func NewSet(atoms ...Atom) Set {
	s := Set{items: make(map[Atom]Atom, len(atoms))}
	for _, a := range atoms {
		s.put(a)
	}
	return s
}

func (s Set) put(a Atom) {
	k := a.key()
	if _, ok := s.items[k]; !ok {
		s.items[k] = a
	}
}

// Add inserts an atom into the set. Adding an atom equal to a member is a
// no-op.
func (s *Set) Add(a Atom) {
	if s.items == nil {
		s.items = make(map[Atom]Atom)
	}
	s.put(a)
}

// Contains reports whether a is a member of s.
func (s Set) Contains(a Atom) bool {
	_, ok := s.items[a.key()]
	return ok
}

// Len returns the number of atoms in s.
func (s Set) Len() int { return len(s.items) }

// IsEmpty reports whether s has no members.
func (s Set) IsEmpty() bool { return len(s.items) == 0 }

// All iterates over the members of s in unspecified order.
func (s Set) All() iter.Seq[Atom] {
	return maps.Values(s.items)
}

// Sorted returns the members of s in display order (see Compare).
func (s Set) Sorted() []Atom {
	return slices.SortedFunc(maps.Values(s.items), Compare)
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	return Set{items: maps.Clone(s.items)}
}

// Equal reports whether s and t hold exactly the same atoms.
func (s Set) Equal(t Set) bool {
	if len(s.items) != len(t.items) {
		return false
	}
	return s.SubsetOf(t)
}

// SubsetOf reports whether every member of s is in t.
func (s Set) SubsetOf(t Set) bool {
	for k := range s.items {
		if _, ok := t.items[k]; !ok {
			return false
		}
	}
	return true
}

// Union returns the atoms in s1 or s2. Members of s1 win over equal
// members of s2.
func Union(s1, s2 Set) Set {
	out := Set{items: make(map[Atom]Atom, len(s1.items)+len(s2.items))}
	for _, a := range s1.items {
		out.put(a)
	}
	for _, a := range s2.items {
		out.put(a)
	}
	return out
}

// Intersection returns the atoms of s1 that are also in s2.
func Intersection(s1, s2 Set) Set {
	out := Set{items: make(map[Atom]Atom)}
	for k, a := range s1.items {
		if _, ok := s2.items[k]; ok {
			out.items[k] = a
		}
	}
	return out
}

// Difference returns the atoms in s1 that are not in s2.
func Difference(s1, s2 Set) Set {
	out := Set{items: make(map[Atom]Atom)}
	for k, a := range s1.items {
		if _, ok := s2.items[k]; !ok {
			out.items[k] = a
		}
	}
	return out
}

// Complement returns the atoms of the universe u that are not in s.
// Members of s outside u are ignored.
func Complement(s, u Set) Set {
	return Difference(u, s)
}

// CartesianProduct returns every pair (a, b) with a in s1 and b in s2.
func CartesianProduct(s1, s2 Set) Relation {
	out := Relation{pairs: make(map[Pair]Pair, len(s1.items)*len(s2.items))}
	for _, a := range s1.items {
		for _, b := range s2.items {
			out.put(Pair{First: a, Second: b})
		}
	}
	return out
}
