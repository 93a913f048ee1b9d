// Package algebra implements finite-set and binary-relation algebra over
// typed atoms.
//
// Sets and relations are value types backed by hash maps. Every operation
// returns a fresh value and never mutates its inputs, so results can be
// shared freely between registry entries.
package algebra

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of an Atom.
type Kind uint8

// Atom kinds.
const (
	KindInvalid Kind = iota // zero Atom
	KindInt                 // 64-bit signed integer
	KindFloat               // 64-bit float
	KindString              // text token
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Atom is a set element: an integer, a float or a string.
// Numeric atoms compare by value, so Int(1) and Float(1) are the same
// element; sets and relations key their members by that value and keep the
// representation that was inserted first.
type Atom struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int returns an integer atom.
func Int(v int64) Atom { return Atom{kind: KindInt, i: v} }

// Float returns a float atom.
func Float(v float64) Atom { return Atom{kind: KindFloat, f: v} }

// Str returns a string atom.
func Str(v string) Atom { return Atom{kind: KindString, s: v} }

// Kind returns the atom's kind.
func (a Atom) Kind() Kind { return a.kind }

// IsNumeric reports whether the atom is an int or a float.
func (a Atom) IsNumeric() bool { return a.kind == KindInt || a.kind == KindFloat }

// IntValue returns the integer payload and whether the atom is an int.
func (a Atom) IntValue() (int64, bool) { return a.i, a.kind == KindInt }

// FloatValue returns the float payload and whether the atom is a float.
func (a Atom) FloatValue() (float64, bool) { return a.f, a.kind == KindFloat }

// StringValue returns the string payload and whether the atom is a string.
func (a Atom) StringValue() (string, bool) { return a.s, a.kind == KindString }

// Value returns the payload as a plain Go value (int64, float64 or string),
// or nil for the zero Atom. Encoders use it to serialize atoms.
func (a Atom) Value() any {
	switch a.kind {
	case KindInt:
		return a.i
	case KindFloat:
		return a.f
	case KindString:
		return a.s
	default:
		return nil
	}
}

// String formats the atom for display. Floats always carry a decimal point
// or exponent so they stay distinguishable from integers.
func (a Atom) String() string {
	switch a.kind {
	case KindInt:
		return strconv.FormatInt(a.i, 10)
	case KindFloat:
		s := strconv.FormatFloat(a.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case KindString:
		return a.s
	default:
		return "<invalid>"
	}
}

// Equal reports whether a and b are the same element. Numbers compare by
// value regardless of kind; strings never equal numbers.
func (a Atom) Equal(b Atom) bool { return a.key() == b.key() }

// key returns the canonical map key of a: a float with an integral value
// that fits in an int64 becomes the equivalent int.
func (a Atom) key() Atom {
	if a.kind == KindFloat && a.f == math.Trunc(a.f) && a.f >= math.MinInt64 && a.f < math.MaxInt64 {
		return Int(int64(a.f))
	}
	return a
}

func (a Atom) number() float64 {
	if a.kind == KindInt {
		return float64(a.i)
	}
	return a.f
}

// Compare orders atoms for display: numeric atoms first by value (an int
// sorts before a float of equal value), then strings in byte order.
func Compare(a, b Atom) int {
	an, bn := a.IsNumeric(), b.IsNumeric()
	switch {
	case an && bn:
		if a.kind == KindInt && b.kind == KindInt {
			return cmp.Compare(a.i, b.i)
		}
		if c := cmp.Compare(a.number(), b.number()); c != 0 {
			return c
		}
		return cmp.Compare(a.kind, b.kind)
	case an:
		return -1
	case bn:
		return 1
	default:
		return strings.Compare(a.s, b.s)
	}
}
