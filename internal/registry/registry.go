// Package registry provides named storage for sets and relations.
// It resolves operand names typed at the shell to their values and guards a
// fixed group of default entries against being overwritten.
package registry

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/leapstack-labs/relcalc/pkg/algebra"
)

// Kind distinguishes the two namespaces of the registry.
type Kind int

// Registry namespaces.
const (
	KindSet Kind = iota
	KindRelation
)

func (k Kind) String() string {
	if k == KindRelation {
		return "relation"
	}
	return "set"
}

// Default names. They are seeded at construction and can never be redefined.
const (
	Universe = "U"
	SetA     = "A"
	SetB     = "B"
	SetC     = "C"
	RelE     = "E"
	RelR     = "R"
)

var protected = map[Kind][]string{
	KindSet:      {Universe, SetA, SetB, SetC},
	KindRelation: {RelE, RelR},
}

// Registry maps names to sets and, separately, to relations.
// Names are case-insensitive: they are stored upper-cased.
type Registry struct {
	logger *slog.Logger

	// sets maps normalized names to sets: "A" → {1, a, b}
	sets map[string]algebra.Set

	// relations maps normalized names to relations: "E" → {(1,a), (2,b), (3,c)}
	relations map[string]algebra.Relation
}

// New creates a registry seeded with the default sets U, A, B, C and
// relations E, R. A nil logger discards log output.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Registry{
		logger:    logger,
		sets:      defaultSets(),
		relations: defaultRelations(),
	}
	logger.Debug("registry initialized", "sets", len(r.sets), "relations", len(r.relations))
	return r
}

// IsProtected reports whether name is a reserved default of the given kind.
func IsProtected(kind Kind, name string) bool {
	return slices.Contains(protected[kind], Normalize(name))
}

// CheckDefine reports whether name could be defined as the given kind,
// without storing anything. It returns a validation error for malformed
// names and a *ProtectedNameError for reserved ones.
func (r *Registry) CheckDefine(kind Kind, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if IsProtected(kind, name) {
		return &ProtectedNameError{Kind: kind, Name: Normalize(name)}
	}
	return nil
}

// DefineSet stores s under name, replacing any previous set of that name.
func (r *Registry) DefineSet(name string, s algebra.Set) error {
	if err := r.CheckDefine(KindSet, name); err != nil {
		return err
	}
	key := Normalize(name)
	_, existed := r.sets[key]
	r.sets[key] = s
	r.logger.Debug("set defined", "name", key, "size", s.Len(), "replaced", existed)
	return nil
}

// DefineRelation stores rel under name, replacing any previous relation of
// that name.
func (r *Registry) DefineRelation(name string, rel algebra.Relation) error {
	if err := r.CheckDefine(KindRelation, name); err != nil {
		return err
	}
	key := Normalize(name)
	_, existed := r.relations[key]
	r.relations[key] = rel
	r.logger.Debug("relation defined", "name", key, "size", rel.Len(), "replaced", existed)
	return nil
}

// Set returns the set stored under name.
func (r *Registry) Set(name string) (algebra.Set, error) {
	s, ok := r.sets[Normalize(name)]
	if !ok {
		return algebra.Set{}, fmt.Errorf("%w: set %q", ErrNotFound, Normalize(name))
	}
	return s, nil
}

// Relation returns the relation stored under name.
func (r *Registry) Relation(name string) (algebra.Relation, error) {
	rel, ok := r.relations[Normalize(name)]
	if !ok {
		return algebra.Relation{}, fmt.Errorf("%w: relation %q", ErrNotFound, Normalize(name))
	}
	return rel, nil
}

// Exists reports whether name is defined for the given kind.
func (r *Registry) Exists(kind Kind, name string) bool {
	key := Normalize(name)
	if kind == KindRelation {
		_, ok := r.relations[key]
		return ok
	}
	_, ok := r.sets[key]
	return ok
}

// Universe returns the universe set U used as the default complement base.
func (r *Registry) Universe() algebra.Set {
	return r.sets[Universe]
}

// SetNames returns all set names in sorted order.
func (r *Registry) SetNames() []string {
	return slices.Sorted(maps.Keys(r.sets))
}

// RelationNames returns all relation names in sorted order.
func (r *Registry) RelationNames() []string {
	return slices.Sorted(maps.Keys(r.relations))
}

// Count returns the number of entries of the given kind.
func (r *Registry) Count(kind Kind) int {
	if kind == KindRelation {
		return len(r.relations)
	}
	return len(r.sets)
}

func defaultSets() map[string]algebra.Set {
	u := algebra.NewSet(algebra.Int(1), algebra.Int(2), algebra.Int(3), algebra.Int(4), algebra.Int(5))
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		u.Add(algebra.Str(s))
	}
	return map[string]algebra.Set{
		Universe: u,
		SetA:     algebra.NewSet(algebra.Int(1), algebra.Str("a"), algebra.Str("b")),
		SetB:     algebra.NewSet(algebra.Str("a"), algebra.Str("b"), algebra.Str("c")),
		SetC:     algebra.NewSet(algebra.Int(1), algebra.Int(2), algebra.Int(3)),
	}
}

func defaultRelations() map[string]algebra.Relation {
	one, a, b := algebra.Int(1), algebra.Str("a"), algebra.Str("b")
	return map[string]algebra.Relation{
		RelE: algebra.NewRelation(
			algebra.P(one, a),
			algebra.P(algebra.Int(2), b),
			algebra.P(algebra.Int(3), algebra.Str("c")),
		),
		RelR: algebra.NewRelation(
			algebra.P(one, one), algebra.P(a, a), algebra.P(b, b),
			algebra.P(one, a), algebra.P(a, one),
			algebra.P(a, b), algebra.P(b, a),
			algebra.P(one, b), algebra.P(b, one),
		),
	}
}
