// Package notation converts between the textual set/relation grammar used by
// the shell and the algebra types.
//
// Grammar:
//
//	set      = [ "{" ] [ atom { "," atom } ] [ "}" ]
//	relation = [ "{" ] [ pair { "," pair } ] [ "}" ]
//	pair     = "(" atom "," atom ")"
//
// An atom is parsed as an integer if possible, then as a finite decimal
// float, and otherwise kept as a trimmed text token. Numbers compare by value,
// so "1" and "1.0" name the same element.
package notation

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/relcalc/pkg/algebra"
)

var (
	braceStripper = strings.NewReplacer("{", "", "}", "")
	pairPattern   = regexp.MustCompile(`\(([^,()]*),([^,()]*)\)`)
)

// ParseAtom parses a single atom. Surrounding whitespace is ignored.
func ParseAtom(s string) algebra.Atom {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return algebra.Int(i)
	}
	if !decimalOnly(s) {
		return algebra.Str(s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return algebra.Float(f)
	}
	return algebra.Str(s)
}

// decimalOnly rejects the hexadecimal float forms ("0x1p4") that
// strconv.ParseFloat accepts; only decimal notation makes a number.
func decimalOnly(s string) bool {
	return !strings.ContainsAny(s, "xXpP")
}

// ParseSet parses a comma-separated list of atoms, optionally wrapped in
// braces. Blank input yields the empty set.
func ParseSet(input string) (algebra.Set, error) {
	body := strings.TrimSpace(braceStripper.Replace(input))
	var s algebra.Set
	if body == "" {
		return s, nil
	}
	for _, part := range strings.Split(body, ",") {
		if strings.TrimSpace(part) == "" {
			return algebra.Set{}, invalid(input, MsgEmptyElement)
		}
		s.Add(ParseAtom(part))
	}
	return s, nil
}

// ParseRelation parses a comma-separated list of "(x,y)" pairs, optionally
// wrapped in braces. Blank input yields the empty relation. Any text outside
// the pairs other than braces, commas and whitespace is rejected.
func ParseRelation(input string) (algebra.Relation, error) {
	var r algebra.Relation
	if strings.TrimSpace(input) == "" {
		return r, nil
	}

	matches := pairPattern.FindAllStringSubmatch(input, -1)
	if len(matches) == 0 {
		return algebra.Relation{}, invalid(input, MsgNoPairs)
	}

	rest := pairPattern.ReplaceAllString(input, "")
	rest = strings.Map(func(c rune) rune {
		switch c {
		case '{', '}', ',', ' ', '\t', '\r', '\n':
			return -1
		}
		return c
	}, rest)
	if rest != "" {
		return algebra.Relation{}, invalid(input, MsgStrayText)
	}

	for _, m := range matches {
		if strings.TrimSpace(m[1]) == "" || strings.TrimSpace(m[2]) == "" {
			return algebra.Relation{}, invalid(input, MsgEmptyElement)
		}
		r.Add(algebra.P(ParseAtom(m[1]), ParseAtom(m[2])))
	}
	return r, nil
}

// ParseExponent parses a relation power exponent, which must be a positive
// integer.
func ParseExponent(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, invalid(input, MsgNotInteger)
	}
	if n <= 0 {
		return 0, invalid(input, MsgNotPositive)
	}
	return n, nil
}
