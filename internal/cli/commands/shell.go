package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/relcalc/internal/shell"
)

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menu",
		Long: `Start the numbered menu for creating sets and relations and combining them.

On a terminal the menu has line editing, history and tab completion of
names. Piped input is read line by line, so a session can be scripted:

  printf '4\na\nb\nn\n0\n' | relcalc shell`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunShell(cmd)
		},
	}

	return cmd
}

// RunShell runs the interactive menu on the command's input and output.
// The root command uses it as its default action.
func RunShell(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer.Interactive()

	var in shell.LineReader
	if shell.IsTerminal(cmd.InOrStdin()) {
		rl, err := shell.NewReader(shell.ReaderConfig{
			Prompt:      cfg.Prompt,
			HistoryFile: cfg.HistoryFile,
		}, cmdCtx.Registry)
		if err != nil {
			return err
		}
		in = rl
	} else {
		in = shell.NewPipeReader(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	s := shell.New(in, r, cmdCtx.Registry,
		shell.WithPrompt(cfg.Prompt),
		shell.WithPause(cfg.Pause),
		shell.WithLogger(cmdCtx.Logger),
	)
	return s.Run(cmd.Context())
}
