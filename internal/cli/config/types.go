// Package config provides configuration management for the relcalc CLI.
//
// Values are layered with koanf: built-in defaults, then a YAML config file,
// then RELCALC_* environment variables, then explicitly set flags.
package config

import (
	"github.com/leapstack-labs/relcalc/internal/cli/output"
)

// Config holds all CLI configuration options.
type Config struct {
	Output      output.OutputMode `koanf:"output"`
	Verbose     bool              `koanf:"verbose"`
	LogLevel    string            `koanf:"log_level"`
	HistoryFile string            `koanf:"history_file"`
	Prompt      string            `koanf:"prompt"`
	Pause       bool              `koanf:"pause"`

	// Sets and Relations are extra definitions loaded into the registry at
	// startup, keyed by name, in set or relation notation.
	Sets      map[string]string `koanf:"sets"`
	Relations map[string]string `koanf:"relations"`
}

// Default configuration values.
const (
	DefaultOutput   = output.ModeAuto // TTY=text, non-TTY=markdown
	DefaultLogLevel = "warn"
	DefaultPrompt   = "Choose an option: "
	DefaultHistory  = ".relcalc/history"
)

// Default returns a Config holding only the built-in defaults.
func Default() *Config {
	return &Config{
		Output:   DefaultOutput,
		LogLevel: DefaultLogLevel,
		Prompt:   DefaultPrompt,
	}
}
