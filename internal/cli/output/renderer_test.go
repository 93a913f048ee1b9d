package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/relcalc/internal/registry"
	"github.com/leapstack-labs/relcalc/pkg/algebra"
)

func newTestRenderer(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputMode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"TEXT", ModeText, false},
		{"md", ModeMarkdown, false},
		{"markdown", ModeMarkdown, false},
		{"json", ModeJSON, false},
		{"yml", ModeYAML, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown output format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, ModeAuto, Mode("bogus"))

	var m OutputMode
	require.NoError(t, m.UnmarshalText([]byte("yaml")))
	assert.Equal(t, ModeYAML, m)
	require.Error(t, m.UnmarshalText([]byte("xml")))
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{"auto on tty", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"explicit text piped", ModeText, false, ModeText},
		{"json", ModeJSON, true, ModeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestInteractive(t *testing.T) {
	r, _, _ := newTestRenderer(ModeJSON, false)
	assert.Equal(t, ModeText, r.Interactive().EffectiveMode())

	r, _, _ = newTestRenderer(ModeMarkdown, false)
	assert.Same(t, r, r.Interactive())
}

func TestHeader(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown, false)
	r.Header(1, "Demo")
	r.Header(2, "Sets")
	assert.Equal(t, "# Demo\n\n## Sets\n\n", out.String())

	r, out, _ = newTestRenderer(ModeText, false)
	r.Header(2, "Sets")
	assert.Equal(t, "Sets\n"+strings.Repeat("-", ruleWidth)+"\n", out.String())

	r, out, _ = newTestRenderer(ModeJSON, false)
	r.Header(1, "Demo")
	r.Note("hidden")
	r.Success("hidden")
	assert.Empty(t, out.String())
}

func TestErrorGoesToErrWriter(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeJSON, false)
	r.Error("name %q not found", "X")
	assert.Empty(t, out.String())
	assert.Equal(t, "Error: name \"X\" not found\n", errOut.String())
}

func TestEmitText(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, false)
	s := algebra.NewSet(algebra.Int(1), algebra.Str("a"))
	require.NoError(t, r.Emit(SetResult("A ∪ B", s)))
	require.NoError(t, r.Emit(CheckResult("R is symmetric", true)))
	assert.Equal(t, "A ∪ B = {1, a}\nR is symmetric: true\n", out.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestEmitMarkdown(t *testing.T) {
	r, out, _ := newTestRenderer(ModeAuto, false)
	rel := algebra.NewRelation(algebra.P(algebra.Int(1), algebra.Str("a")))
	require.NoError(t, r.Emit(RelationResult("E", rel)))
	require.NoError(t, r.Emit(CheckResult("E is reflexive on A", false)))
	assert.Equal(t, "**E** = `{(1,a)}`\n**E is reflexive on A**: false\n", out.String())
}

func TestEmitJSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)
	s := algebra.NewSet(algebra.Str("b"), algebra.Int(2), algebra.Float(1.5))
	require.NoError(t, r.Emit(SetResult("S", s)))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "S", got["label"])
	assert.Equal(t, "set", got["kind"])
	assert.Equal(t, "{1.5, 2, b}", got["text"])
	assert.Equal(t, float64(3), got["size"])
	assert.Equal(t, []any{1.5, float64(2), "b"}, got["elements"])
	assert.NotContains(t, got, "holds")
}

func TestEmitYAMLSeparatesDocuments(t *testing.T) {
	r, out, _ := newTestRenderer(ModeYAML, false)
	require.NoError(t, r.Emit(CheckResult("first", true)))
	require.NoError(t, r.Emit(ValueResult("second", "3")))

	docs := strings.Split(out.String(), "---\n")
	require.Len(t, docs, 2)

	var first, second Result
	require.NoError(t, yaml.Unmarshal([]byte(docs[0]), &first))
	require.NoError(t, yaml.Unmarshal([]byte(docs[1]), &second))
	require.NotNil(t, first.Holds)
	assert.True(t, *first.Holds)
	assert.Equal(t, "3", second.Text)
	assert.Equal(t, KindValue, second.Kind)
}

func TestCatalog(t *testing.T) {
	reg := registry.New(nil)
	require.NoError(t, reg.DefineSet("X", algebra.NewSet(algebra.Int(9))))

	t.Run("json", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeJSON, false)
		require.NoError(t, r.Catalog(reg))

		var c Catalog
		require.NoError(t, json.Unmarshal(out.Bytes(), &c))
		require.Len(t, c.Sets, 5)
		require.Len(t, c.Relations, 2)
		assert.Equal(t, "A", c.Sets[0].Name)
		assert.True(t, c.Sets[0].BuiltIn)
		assert.Equal(t, "X", c.Sets[4].Name)
		assert.False(t, c.Sets[4].BuiltIn)
		assert.Equal(t, "{9}", c.Sets[4].Text)
		assert.Equal(t, 9, c.Relations[1].Size)
	})

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		require.NoError(t, r.Catalog(reg))
		s := out.String()
		assert.Contains(t, s, "## Sets")
		assert.Contains(t, s, "## Relations")
		assert.Contains(t, s, "| Name |")
		assert.Contains(t, s, "{(1,a), (2,b), (3,c)}")
		assert.NotContains(t, s, "\x1b[")
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		require.NoError(t, r.Catalog(reg))
		assert.Contains(t, out.String(), "┌")
		assert.Contains(t, out.String(), "{1, a, b}")
	})
}
