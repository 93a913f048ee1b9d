package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/relcalc/internal/cli/config"
	"github.com/leapstack-labs/relcalc/internal/cli/output"
	clitestutil "github.com/leapstack-labs/relcalc/internal/cli/testutil"
)

// useConfig loads contents as the current configuration for one test.
// Empty contents leave the defaults in place.
func useConfig(t *testing.T, contents string) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	if contents == "" {
		return
	}
	_, err := config.LoadConfig(clitestutil.WriteConfig(t, contents), nil)
	require.NoError(t, err)
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		use  string
		long bool
	}{
		{NewVersionCommand("test"), "version", true},
		{NewListCommand(), "list", true},
		{NewDemoCommand(), "demo", true},
		{NewEvalCommand(), "eval <expression>", true},
		{NewShellCommand(), "shell", true},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			if tt.long {
				assert.NotEmpty(t, tt.cmd.Long, "Long should not be empty")
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	for _, version := range []string{"0.1.0", "dev"} {
		out, _, err := execute(t, NewVersionCommand(version), "")
		require.NoError(t, err)
		assert.Contains(t, out, "relcalc v"+version)
	}
}

func TestListCommand(t *testing.T) {
	t.Run("markdown by default off a terminal", func(t *testing.T) {
		useConfig(t, "")
		out, _, err := execute(t, NewListCommand(), "")
		require.NoError(t, err)
		assert.Contains(t, out, "## Sets")
		assert.Contains(t, out, "## Relations")
		assert.Contains(t, out, "{1, a, b}")
		clitestutil.AssertValidMarkdown(t, out)
	})

	t.Run("json with configured definitions", func(t *testing.T) {
		useConfig(t, "output: json\nsets:\n  x: \"{7, 8}\"\nrelations:\n  q: \"(7,8)\"\n")
		out, _, err := execute(t, NewListCommand(), "")
		require.NoError(t, err)

		var cat output.Catalog
		require.NoError(t, json.Unmarshal([]byte(out), &cat))
		require.Len(t, cat.Sets, 5)
		assert.Equal(t, "X", cat.Sets[4].Name)
		assert.False(t, cat.Sets[4].BuiltIn)
		require.Len(t, cat.Relations, 3)
		assert.Equal(t, "Q", cat.Relations[1].Name)
	})

	t.Run("bad definition", func(t *testing.T) {
		useConfig(t, "sets:\n  a: \"1\"\n")
		_, _, err := execute(t, NewListCommand(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config sets.a")
	})

	t.Run("rejects arguments", func(t *testing.T) {
		useConfig(t, "")
		_, _, err := execute(t, NewListCommand(), "", "extra")
		assert.Error(t, err)
	})
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		args    []string
		want    string
		wantErr string
	}{
		{name: "set expression", args: []string{"A | B"}, want: "**A | B** = `{1, a, b, c}`"},
		{name: "joined arguments", args: []string{"A", "&", "C"}, want: "**A & C** = `{1}`"},
		{name: "check", args: []string{"transitive(R)"}, want: "**transitive(R)**: true"},
		{name: "print", args: []string{`print(len(E))`}, want: "3\n"},
		{name: "configured set", config: "sets:\n  x: \"1, 9\"\n", args: []string{"X - A"}, want: "`{9}`"},
		{name: "syntax error", args: []string{"A |"}, wantErr: "syntax error"},
		{name: "bad exponent", args: []string{"power(R, 0)"}, wantErr: "positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfig(t, tt.config)
			out, _, err := execute(t, NewEvalCommand(), "", tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestEvalCommand_JSON(t *testing.T) {
	useConfig(t, "output: json\n")
	out, _, err := execute(t, NewEvalCommand(), "", "compose(R, E)")
	require.NoError(t, err)

	var res output.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, output.KindRelation, res.Kind)
	assert.Equal(t, "{(1,a), (a,a), (b,a)}", res.Text)
	assert.Len(t, res.Pairs, 3)
}

func TestEvalCommand_RequiresExpression(t *testing.T) {
	useConfig(t, "")
	_, _, err := execute(t, NewEvalCommand(), "")
	assert.Error(t, err)
}

func TestDemoCommand(t *testing.T) {
	useConfig(t, "output: text\n")
	out, _, err := execute(t, NewDemoCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Demonstration examples")
	assert.Contains(t, out, "R∘E = {(1,a), (a,a), (b,a)}")
	clitestutil.AssertNoANSI(t, out)
}

func TestShellCommand_PipedInput(t *testing.T) {
	useConfig(t, "")
	out, errOut, err := execute(t, NewShellCommand(), "4\na\nb\nn\n99\n0\n")
	require.NoError(t, err)

	assert.Contains(t, out, "A ∪ B = {1, a, b, c}")
	assert.Contains(t, out, "Goodbye!")
	assert.Contains(t, out, config.DefaultPrompt)
	assert.Contains(t, errOut, "Error: invalid option")
}

func TestShellCommand_EndOfInput(t *testing.T) {
	useConfig(t, "output: json\n")
	out, _, err := execute(t, NewShellCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Operations menu")
	assert.Contains(t, out, "Goodbye!")
}

func TestShellCommand_ConfiguredPrompt(t *testing.T) {
	useConfig(t, "prompt: \"relcalc> \"\n")
	out, _, err := execute(t, NewShellCommand(), "0\n")
	require.NoError(t, err)
	assert.Contains(t, out, "relcalc> ")
}
