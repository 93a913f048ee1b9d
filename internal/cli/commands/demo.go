package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/relcalc/internal/demo"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the demonstration examples",
		Long: `Run the built-in examples over the default sets and relations:
bin(E,C,B), the properties of R on A, R^2 and R^3, R∘E with witnesses,
and a few set operations.

With --output json or yaml every computed value is written as one document.`,
		Example: `  relcalc demo
  relcalc demo --output json | jq -s 'map(select(.kind == "check"))'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return demo.Run(cmdCtx.Renderer, cmdCtx.Registry)
		},
	}
}
