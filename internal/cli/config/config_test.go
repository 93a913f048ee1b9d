package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/relcalc/internal/cli/output"
	"github.com/leapstack-labs/relcalc/internal/registry"
	"github.com/leapstack-labs/relcalc/pkg/notation"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "config file")
	flags.StringP("output", "o", "", "output format")
	flags.BoolP("verbose", "v", false, "verbose")
	flags.String("log-level", "", "log level")
	flags.String("history-file", "", "history file")
	flags.Bool("pause", false, "pause")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, output.ModeAuto, cfg.Output)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.False(t, cfg.Pause)
	assert.False(t, cfg.Verbose)
	assert.True(t, filepath.IsAbs(cfg.HistoryFile), "history path should be resolved: %s", cfg.HistoryFile)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, `output: json
pause: true
history_file: /tmp/relcalc-history
sets:
  X: "{1, 2, 3}"
relations:
  Q: "(1,2),(2,3)"
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, output.ModeJSON, cfg.Output)
	assert.True(t, cfg.Pause)
	assert.Equal(t, "/tmp/relcalc-history", cfg.HistoryFile)
	assert.Equal(t, "{1, 2, 3}", cfg.Sets["X"])
	assert.Equal(t, "(1,2),(2,3)", cfg.Relations["Q"])
}

func TestLoadConfig_FindsFileInWorkingDir(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "relcalc.yml"), []byte("output: yaml\n"), 0600))
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "relcalc.yml", GetConfigFileUsed())
	assert.Equal(t, output.ModeYAML, cfg.Output)
}

func TestLoadConfig_InvalidOutput(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "output: xml\n")

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "log_level: loud\n")

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "output: text\n")
	t.Setenv("RELCALC_OUTPUT", "markdown")

	flags := testFlags()
	require.NoError(t, flags.Set("output", "json"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, output.ModeJSON, cfg.Output, "flag value should override config file and env var")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "output: text\nlog_level: error\n")
	t.Setenv("RELCALC_OUTPUT", "markdown")
	t.Setenv("RELCALC_LOG_LEVEL", "debug")
	t.Setenv("RELCALC_PAUSE", "true")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, output.ModeMarkdown, cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Pause)
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "log_level: error\n")
	t.Setenv("RELCALC_LOG_LEVEL", "info")

	cfg, err := LoadConfig(path, testFlags())
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel, "env var should be used when flag is not set")
}

func TestLoadConfig_KebabFlagsMapToKeys(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "pause: false\n")

	flags := testFlags()
	require.NoError(t, flags.Set("log-level", "error"))
	require.NoError(t, flags.Set("history-file", "/tmp/h"))
	require.NoError(t, flags.Set("pause", "true"))
	require.NoError(t, flags.Set("config", path))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "/tmp/h", cfg.HistoryFile)
	assert.True(t, cfg.Pause)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{LogLevel: "warn"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logger = NewLogger(&Config{LogLevel: "error", Verbose: true}, &buf)
	logger.Debug("verbose wins")
	assert.Contains(t, buf.String(), "verbose wins")
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "fallback logger expected")

	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestApplyDefinitions(t *testing.T) {
	reg := registry.New(nil)
	cfg := &Config{
		Sets:      map[string]string{"x": "{1, 2}", "y": ""},
		Relations: map[string]string{"q": "(1,2)"},
	}
	require.NoError(t, cfg.ApplyDefinitions(reg))

	x, err := reg.Set("X")
	require.NoError(t, err)
	assert.Equal(t, "{1, 2}", notation.FormatSet(x))

	y, err := reg.Set("Y")
	require.NoError(t, err)
	assert.True(t, y.IsEmpty())

	q, err := reg.Relation("Q")
	require.NoError(t, err)
	assert.Equal(t, 1, q.Len())
}

func TestApplyDefinitions_Errors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *Config
		target error
		substr string
	}{
		{
			name:   "protected set",
			cfg:    &Config{Sets: map[string]string{"a": "1"}},
			target: registry.ErrProtectedName,
			substr: "sets.a",
		},
		{
			name:   "protected relation",
			cfg:    &Config{Relations: map[string]string{"R": "(1,1)"}},
			target: registry.ErrProtectedName,
			substr: "relations.R",
		},
		{
			name:   "malformed relation",
			cfg:    &Config{Relations: map[string]string{"Q": "1,2"}},
			target: notation.ErrValidation,
			substr: "relations.Q",
		},
		{
			name:   "bad name",
			cfg:    &Config{Sets: map[string]string{"bad-name": "1"}},
			target: notation.ErrValidation,
			substr: "sets.bad-name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ApplyDefinitions(registry.New(nil))
			require.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}
