// Package demo runs the built-in demonstration over the default sets and
// relations: bin(E,C,B), the properties of R on A, R^2 and R^3, R∘E with
// witnesses, and a few basic set operations.
package demo

import (
	"fmt"

	"github.com/leapstack-labs/relcalc/internal/cli/output"
	"github.com/leapstack-labs/relcalc/internal/registry"
	"github.com/leapstack-labs/relcalc/pkg/algebra"
	"github.com/leapstack-labs/relcalc/pkg/notation"
)

// MaxWitnesses is how many pairs of R∘E are explained.
const MaxWitnesses = 3

type operands struct {
	u, a, b, c algebra.Set
	e, r       algebra.Relation
}

func load(reg *registry.Registry) (*operands, error) {
	var ops operands
	var err error
	for name, dst := range map[string]*algebra.Set{
		registry.Universe: &ops.u,
		registry.SetA:     &ops.a,
		registry.SetB:     &ops.b,
		registry.SetC:     &ops.c,
	} {
		if *dst, err = reg.Set(name); err != nil {
			return nil, err
		}
	}
	if ops.e, err = reg.Relation(registry.RelE); err != nil {
		return nil, err
	}
	if ops.r, err = reg.Relation(registry.RelR); err != nil {
		return nil, err
	}
	return &ops, nil
}

// Run prints every demonstration section to r.
func Run(r *output.Renderer, reg *registry.Registry) error {
	ops, err := load(reg)
	if err != nil {
		return fmt.Errorf("loading demo operands: %w", err)
	}

	r.Header(1, "Demonstration examples")
	r.Note("Covers bin(E,C,B); ref(R,A), sim(R), tra(R); R^3; R∘E.")
	r.Note("")

	steps := []func(*output.Renderer, *operands) error{
		initialData,
		binExample,
		properties,
		powers,
		composition,
		additional,
	}
	for _, step := range steps {
		if err := step(r, ops); err != nil {
			return err
		}
		r.Note("")
	}
	r.Success("Examples completed")
	return nil
}

func emitAll(r *output.Renderer, results ...output.Result) error {
	for _, res := range results {
		if err := r.Emit(res); err != nil {
			return err
		}
	}
	return nil
}

func initialData(r *output.Renderer, ops *operands) error {
	r.Header(2, "1. Initial sets and relations")
	return emitAll(r,
		output.SetResult("U", ops.u),
		output.SetResult("A", ops.a),
		output.SetResult("B", ops.b),
		output.SetResult("C", ops.c),
		output.RelationResult("E", ops.e),
		output.RelationResult("R", ops.r),
	)
}

func binExample(r *output.Renderer, ops *operands) error {
	r.Header(2, "2. bin(E,C,B)")
	r.Note("bin(E,C,B) = (C × B) ∩ E")
	return emitAll(r,
		output.RelationResult("C × B", algebra.CartesianProduct(ops.c, ops.b)),
		output.RelationResult("bin(E,C,B)", algebra.Bin(ops.e, ops.c, ops.b)),
	)
}

func properties(r *output.Renderer, ops *operands) error {
	r.Header(2, "3. Properties of R on A")
	r.Note("Reflexive: (x,x) ∈ R for every x ∈ A.")
	r.Note("Symmetric: (x,y) ∈ R implies (y,x) ∈ R.")
	r.Note("Transitive: (x,y) ∈ R and (y,z) ∈ R imply (x,z) ∈ R.")
	return emitAll(r,
		output.CheckResult("ref(R,A)", algebra.IsReflexive(ops.r, ops.a)),
		output.CheckResult("sim(R)", algebra.IsSymmetric(ops.r)),
		output.CheckResult("tra(R)", algebra.IsTransitive(ops.r)),
	)
}

func powers(r *output.Renderer, ops *operands) error {
	r.Header(2, "4. Powers of R")
	r.Note("R^n = R^(n-1) ∘ R")
	r2, err := algebra.Power(ops.r, 2)
	if err != nil {
		return err
	}
	r3, err := algebra.Power(ops.r, 3)
	if err != nil {
		return err
	}
	return emitAll(r,
		output.RelationResult("R^2", r2),
		output.RelationResult("R^3", r3),
	)
}

func composition(r *output.Renderer, ops *operands) error {
	r.Header(2, "5. Composition R∘E")
	r.Note("(x,z) ∈ R∘E when some y has (x,y) ∈ R and (y,z) ∈ E.")
	re := algebra.Compose(ops.r, ops.e)
	if err := r.Emit(output.RelationResult("R∘E", re)); err != nil {
		return err
	}

	pairs := re.Sorted()
	if len(pairs) > MaxWitnesses {
		pairs = pairs[:MaxWitnesses]
	}
	for _, p := range pairs {
		y, ok := algebra.Witness(ops.r, ops.e, p)
		if !ok {
			continue
		}
		if r.EffectiveMode().IsStructured() {
			if err := r.Emit(output.ValueResult("witness "+notation.FormatPair(p), notation.FormatAtom(y))); err != nil {
				return err
			}
			continue
		}
		r.Note("  %s because %s ∈ R and %s ∈ E",
			notation.FormatPair(p),
			notation.FormatPair(algebra.P(p.First, y)),
			notation.FormatPair(algebra.P(y, p.Second)))
	}
	return nil
}

func additional(r *output.Renderer, ops *operands) error {
	r.Header(2, "6. Additional cases")
	return emitAll(r,
		output.SetResult("A ∪ B", algebra.Union(ops.a, ops.b)),
		output.SetResult("A ∩ C", algebra.Intersection(ops.a, ops.c)),
		output.SetResult("A − B", algebra.Difference(ops.a, ops.b)),
		output.SetResult("A^c", algebra.Complement(ops.a, ops.u)),
	)
}
