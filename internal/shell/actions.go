package shell

import (
	"context"
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/relcalc/internal/cli/output"
	"github.com/leapstack-labs/relcalc/internal/demo"
	"github.com/leapstack-labs/relcalc/internal/registry"
	starctx "github.com/leapstack-labs/relcalc/internal/starlark"
	"github.com/leapstack-labs/relcalc/pkg/algebra"
	"github.com/leapstack-labs/relcalc/pkg/notation"
)

type menuItem struct {
	label string
	run   func(s *Session, c context.Context) error
}

// menu is indexed by option number.
var menu = []menuItem{
	{label: "Exit"},
	{label: "Create set", run: func(s *Session, _ context.Context) error {
		_, _, err := s.createSet("")
		return err
	}},
	{label: "Create relation", run: func(s *Session, _ context.Context) error {
		_, _, err := s.createRelation("")
		return err
	}},
	{label: "Show current sets and relations", run: func(s *Session, _ context.Context) error {
		return s.r.Catalog(s.reg)
	}},
	{label: "Union (A ∪ B)", run: setOperation("∪", "union", algebra.Union)},
	{label: "Intersection (A ∩ B)", run: setOperation("∩", "intersection", algebra.Intersection)},
	{label: "Difference (A − B)", run: setOperation("−", "difference", algebra.Difference)},
	{label: "Complement (A^c, universe U)", run: (*Session).complement},
	{label: "Cartesian product (A × B)", run: (*Session).product},
	{label: "Is the relation reflexive?", run: (*Session).reflexive},
	{label: "Is the relation symmetric?", run: relationCheck("sim", algebra.IsSymmetric)},
	{label: "Is the relation transitive?", run: relationCheck("tra", algebra.IsTransitive)},
	{label: "Relation power (R^n)", run: (*Session).power},
	{label: "Composition (R1 ∘ R2)", run: (*Session).compose},
	{label: "bin(E,C,B)", run: (*Session).bin},
	{label: "Run demonstration examples", run: func(s *Session, _ context.Context) error {
		return demo.Run(s.r, s.reg)
	}},
	{label: "Evaluate expression", run: (*Session).evaluate},
}

func setOperation(symbol, what string, op func(a, b algebra.Set) algebra.Set) func(*Session, context.Context) error {
	return func(s *Session, _ context.Context) error {
		a, name1, err := s.pickSet("Select the first set:")
		if err != nil {
			return err
		}
		b, name2, err := s.pickSet("Select the second set:")
		if err != nil {
			return err
		}
		res := op(a, b)
		if err := s.r.Emit(output.SetResult(fmt.Sprintf("%s %s %s", name1, symbol, name2), res)); err != nil {
			return err
		}
		return s.offerSaveSet(res, what)
	}
}

func relationCheck(prefix string, check func(algebra.Relation) bool) func(*Session, context.Context) error {
	return func(s *Session, _ context.Context) error {
		rel, name, err := s.pickRelation("Select the relation:")
		if err != nil {
			return err
		}
		return s.r.Emit(output.CheckResult(fmt.Sprintf("%s(%s)", prefix, name), check(rel)))
	}
}

func (s *Session) complement(_ context.Context) error {
	set, name, err := s.pickSet("Select the set to complement:")
	if err != nil {
		return err
	}
	res := algebra.Complement(set, s.reg.Universe())
	if err := s.r.Emit(output.SetResult(name+"^c", res)); err != nil {
		return err
	}
	return s.offerSaveSet(res, "complement")
}

func (s *Session) product(_ context.Context) error {
	a, name1, err := s.pickSet("Select the first set:")
	if err != nil {
		return err
	}
	b, name2, err := s.pickSet("Select the second set:")
	if err != nil {
		return err
	}
	res := algebra.CartesianProduct(a, b)
	if err := s.r.Emit(output.RelationResult(fmt.Sprintf("%s × %s", name1, name2), res)); err != nil {
		return err
	}
	return s.offerSaveRelation(res, "cartesian product")
}

func (s *Session) reflexive(_ context.Context) error {
	rel, relName, err := s.pickRelation("Select the relation:")
	if err != nil {
		return err
	}
	set, setName, err := s.pickSet("Select the set to check reflexivity on:")
	if err != nil {
		return err
	}
	label := fmt.Sprintf("ref(%s,%s)", relName, setName)
	return s.r.Emit(output.CheckResult(label, algebra.IsReflexive(rel, set)))
}

func (s *Session) power(_ context.Context) error {
	rel, name, err := s.pickRelation("Select the relation:")
	if err != nil {
		return err
	}
	n, err := askValid(s, "Power (positive integer): ", notation.ParseExponent)
	if err != nil {
		return err
	}
	res, err := algebra.Power(rel, n)
	if err != nil {
		return err
	}
	if err := s.r.Emit(output.RelationResult(fmt.Sprintf("%s^%d", name, n), res)); err != nil {
		return err
	}
	return s.offerSaveRelation(res, fmt.Sprintf("power %d", n))
}

func (s *Session) compose(_ context.Context) error {
	r1, name1, err := s.pickRelation("Select the first relation:")
	if err != nil {
		return err
	}
	r2, name2, err := s.pickRelation("Select the second relation:")
	if err != nil {
		return err
	}
	res := algebra.Compose(r1, r2)
	if err := s.r.Emit(output.RelationResult(fmt.Sprintf("%s∘%s", name1, name2), res)); err != nil {
		return err
	}
	return s.offerSaveRelation(res, "composition")
}

func (s *Session) bin(_ context.Context) error {
	e, nameE, err := s.pickRelation("Select the relation E:")
	if err != nil {
		return err
	}
	c, nameC, err := s.pickSet("Select the set C:")
	if err != nil {
		return err
	}
	b, nameB, err := s.pickSet("Select the set B:")
	if err != nil {
		return err
	}
	s.r.Note("bin(%s,%s,%s) = (%s × %s) ∩ %s", nameE, nameC, nameB, nameC, nameB, nameE)
	res := algebra.Bin(e, c, b)
	if err := s.r.Emit(output.RelationResult(fmt.Sprintf("bin(%s,%s,%s)", nameE, nameC, nameB), res)); err != nil {
		return err
	}
	return s.offerSaveRelation(res, "bin")
}

// evaluate runs one Starlark expression. Set and relation results may be
// saved like any other result.
func (s *Session) evaluate(c context.Context) error {
	s.r.Note("Expression over the current sets and relations, e.g. (A | B) - C or compose(R, E):")
	expr, err := s.readLine("expr> ")
	if err != nil {
		return err
	}
	if expr == "" {
		return errDeclined
	}
	v, err := s.eval.Eval(c, expr)
	if err != nil {
		return err
	}
	if v == starlark.None {
		return nil
	}
	if err := s.r.Emit(starctx.ResultOf(expr, v)); err != nil {
		return err
	}
	switch x := v.(type) {
	case starctx.SetValue:
		return s.offerSaveSet(x.Set, "expression")
	case starctx.RelationValue:
		return s.offerSaveRelation(x.Relation, "expression")
	}
	return nil
}

// pickSet asks for a set name. An unknown name may be created on the spot.
func (s *Session) pickSet(title string) (algebra.Set, string, error) {
	s.r.Println("")
	s.r.Println(title)
	s.listNames("Available sets", s.reg.SetNames())

	name, err := askValid(s, "Set name: ", validName)
	if err != nil {
		return algebra.Set{}, "", err
	}
	if set, err := s.reg.Set(name); err == nil {
		return set, name, nil
	}

	s.r.Warn("Set %s does not exist.", name)
	ok, err := s.confirm("Create it now?")
	if err != nil {
		return algebra.Set{}, "", err
	}
	if !ok {
		return algebra.Set{}, "", errDeclined
	}
	return s.createSet(name)
}

// pickRelation asks for a relation name. An unknown name may be created on
// the spot.
func (s *Session) pickRelation(title string) (algebra.Relation, string, error) {
	s.r.Println("")
	s.r.Println(title)
	s.listNames("Available relations", s.reg.RelationNames())

	name, err := askValid(s, "Relation name: ", validName)
	if err != nil {
		return algebra.Relation{}, "", err
	}
	if rel, err := s.reg.Relation(name); err == nil {
		return rel, name, nil
	}

	s.r.Warn("Relation %s does not exist.", name)
	ok, err := s.confirm("Create it now?")
	if err != nil {
		return algebra.Relation{}, "", err
	}
	if !ok {
		return algebra.Relation{}, "", errDeclined
	}
	return s.createRelation(name)
}

func (s *Session) listNames(title string, names []string) {
	if len(names) == 0 {
		return
	}
	s.r.Note("%s: %s", title, strings.Join(names, ", "))
}

// createSet asks for the elements of a new set and stores it. An empty
// name is asked for first.
func (s *Session) createSet(name string) (algebra.Set, string, error) {
	name, err := s.nameFor(registry.KindSet, name, "Name: ")
	if err != nil {
		return algebra.Set{}, "", err
	}

	s.r.Note("Elements (e.g. a,b,c,1,2):")
	set, err := askValid(s, "> ", notation.ParseSet)
	if err != nil {
		return algebra.Set{}, "", err
	}
	if err := s.reg.DefineSet(name, set); err != nil {
		return algebra.Set{}, "", err
	}
	s.r.Success("Set %s created", name)
	if err := s.r.Emit(output.SetResult(name, set)); err != nil {
		return algebra.Set{}, "", err
	}
	return set, name, nil
}

// createRelation asks for the pairs of a new relation and stores it.
func (s *Session) createRelation(name string) (algebra.Relation, string, error) {
	name, err := s.nameFor(registry.KindRelation, name, "Name: ")
	if err != nil {
		return algebra.Relation{}, "", err
	}

	s.r.Note("Pairs (e.g. (1,a),(2,b)):")
	rel, err := askValid(s, "> ", notation.ParseRelation)
	if err != nil {
		return algebra.Relation{}, "", err
	}
	if err := s.reg.DefineRelation(name, rel); err != nil {
		return algebra.Relation{}, "", err
	}
	s.r.Success("Relation %s created", name)
	if err := s.r.Emit(output.RelationResult(name, rel)); err != nil {
		return algebra.Relation{}, "", err
	}
	return rel, name, nil
}

// nameFor resolves the name a new entry will be stored under. Protected
// names abort; existing names need confirmation.
func (s *Session) nameFor(kind registry.Kind, name, prompt string) (string, error) {
	if name == "" {
		var err error
		if name, err = askValid(s, prompt, validName); err != nil {
			return "", err
		}
	}
	if err := s.reg.CheckDefine(kind, name); err != nil {
		return "", err
	}
	if s.reg.Exists(kind, name) {
		ok, err := s.confirm(fmt.Sprintf("The %s %s already exists. Overwrite?", kind, name))
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errDeclined
		}
	}
	return registry.Normalize(name), nil
}

func (s *Session) offerSaveSet(res algebra.Set, what string) error {
	if res.IsEmpty() {
		s.r.Note("The result is the empty set; it will not be saved.")
		return nil
	}
	ok, err := s.confirm(fmt.Sprintf("Save this %s result as a new set?", what))
	if err != nil || !ok {
		return err
	}
	name, err := s.nameFor(registry.KindSet, "", "Name for the new set: ")
	if err != nil {
		return err
	}
	if err := s.reg.DefineSet(name, res); err != nil {
		return err
	}
	s.r.Success("Set %s saved", name)
	return nil
}

func (s *Session) offerSaveRelation(res algebra.Relation, what string) error {
	if res.IsEmpty() {
		s.r.Note("The result is the empty relation; it will not be saved.")
		return nil
	}
	ok, err := s.confirm(fmt.Sprintf("Save this %s result as a new relation?", what))
	if err != nil || !ok {
		return err
	}
	name, err := s.nameFor(registry.KindRelation, "", "Name for the new relation: ")
	if err != nil {
		return err
	}
	if err := s.reg.DefineRelation(name, res); err != nil {
		return err
	}
	s.r.Success("Relation %s saved", name)
	return nil
}
