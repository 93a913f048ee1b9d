// Package commands implements the relcalc subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/relcalc/internal/cli/config"
	"github.com/leapstack-labs/relcalc/internal/cli/output"
	"github.com/leapstack-labs/relcalc/internal/registry"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Registry *registry.Registry
}

// NewCommandContext creates a CommandContext with a renderer bound to the
// command's writers and a registry seeded with the defaults and the
// configured definitions.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	reg := registry.New(logger)
	if err := cfg.ApplyDefinitions(reg); err != nil {
		return nil, fmt.Errorf("failed to load definitions: %w", err)
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Output),
		Registry: reg,
	}, nil
}

// getConfig returns the current configuration, or the defaults when none
// was loaded (commands run without the root command).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}
