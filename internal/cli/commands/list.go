package commands

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the defined sets and relations",
		Long: `List every set and relation known at startup: the built-in examples
U, A, B, C, E and R plus any definitions from the config file.

Output adapts to environment:
  - Terminal: Styled tables
  - Piped/Scripted: Markdown tables (agent-friendly)

Use --output to override: auto, text, markdown, json, yaml`,
		Example: `  # List everything (auto-detect output format)
  relcalc list

  # List as JSON
  relcalc list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.Catalog(cmdCtx.Registry)
		},
	}

	return cmd
}
