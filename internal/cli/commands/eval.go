package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.starlark.net/starlark"

	starctx "github.com/leapstack-labs/relcalc/internal/starlark"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a set or relation expression",
		Long: `Evaluate one Starlark expression over the defined sets and relations.

Sets and relations are globals named after their entries. Operators:
  |  union          &  intersection     -  difference
  *  cartesian product of sets, composition of relations
  in membership     == equality         <= subset (sets)

Builtins: set, relation, union, intersection, difference, complement,
product, compose, power, bin, reflexive, symmetric, transitive,
get_set, get_relation.`,
		Example: `  relcalc eval 'A | B'
  relcalc eval 'power(R, 3) == R'
  relcalc eval 'reflexive(R, A) and symmetric(R)'
  relcalc eval --output json 'compose(R, E)'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, strings.Join(args, " "))
		},
	}

	return cmd
}

func runEval(cmd *cobra.Command, expr string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	ctx := starctx.NewContext(cmdCtx.Registry,
		starctx.WithLogger(cmdCtx.Logger),
		starctx.WithPrint(func(msg string) { r.Note("%s", msg) }),
	)
	v, err := ctx.Eval(cmd.Context(), expr)
	if err != nil {
		return err
	}
	if v == starlark.None {
		return nil
	}
	return r.Emit(starctx.ResultOf(expr, v))
}
