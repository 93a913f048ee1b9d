package starlark

import (
	"go.starlark.net/starlark"

	"github.com/leapstack-labs/relcalc/internal/cli/output"
)

// ResultOf converts an evaluated value to a renderable result labelled
// with the expression text.
func ResultOf(label string, v starlark.Value) output.Result {
	switch x := v.(type) {
	case SetValue:
		return output.SetResult(label, x.Set)
	case RelationValue:
		return output.RelationResult(label, x.Relation)
	case starlark.Bool:
		return output.CheckResult(label, bool(x))
	case starlark.String:
		return output.ValueResult(label, string(x))
	default:
		return output.ValueResult(label, v.String())
	}
}
