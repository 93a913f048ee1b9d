package output

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/relcalc/pkg/algebra"
	"github.com/leapstack-labs/relcalc/pkg/notation"
)

// Result kinds.
const (
	KindSet      = "set"
	KindRelation = "relation"
	KindCheck    = "check"
	KindValue    = "value"
)

// Result is one computed value, shaped for every output mode.
type Result struct {
	Label    string  `json:"label" yaml:"label"`
	Kind     string  `json:"kind" yaml:"kind"`
	Text     string  `json:"text" yaml:"text"`
	Size     *int    `json:"size,omitempty" yaml:"size,omitempty"`
	Elements []any   `json:"elements,omitempty" yaml:"elements,omitempty"`
	Pairs    [][]any `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	Holds    *bool   `json:"holds,omitempty" yaml:"holds,omitempty"`
}

// SetResult describes a set labelled by the expression that produced it.
func SetResult(label string, s algebra.Set) Result {
	n := s.Len()
	return Result{
		Label:    label,
		Kind:     KindSet,
		Text:     notation.FormatSet(s),
		Size:     &n,
		Elements: notation.SetValues(s),
	}
}

// RelationResult describes a relation.
func RelationResult(label string, r algebra.Relation) Result {
	n := r.Len()
	return Result{
		Label: label,
		Kind:  KindRelation,
		Text:  notation.FormatRelation(r),
		Size:  &n,
		Pairs: notation.RelationValues(r),
	}
}

// CheckResult describes a property check such as "R is reflexive on A".
func CheckResult(label string, holds bool) Result {
	return Result{
		Label: label,
		Kind:  KindCheck,
		Text:  fmt.Sprintf("%t", holds),
		Holds: &holds,
	}
}

// ValueResult describes any other value by its display text.
func ValueResult(label, text string) Result {
	return Result{Label: label, Kind: KindValue, Text: text}
}

// Emit writes a result in the effective output mode.
func (r *Renderer) Emit(res Result) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.encodeJSON(res)
	case ModeYAML:
		return r.encodeYAML(res)
	case ModeMarkdown:
		if res.Kind == KindCheck {
			r.Printf("**%s**: %s\n", res.Label, res.Text)
		} else {
			r.Printf("**%s** = `%s`\n", res.Label, res.Text)
		}
	default:
		label := r.styles.Label.Render(res.Label)
		if res.Kind == KindCheck {
			style := r.styles.False
			if res.Holds != nil && *res.Holds {
				style = r.styles.True
			}
			r.Printf("%s: %s\n", label, style.Render(res.Text))
		} else {
			r.Printf("%s = %s\n", label, r.styles.Value.Render(res.Text))
		}
	}
	return nil
}

func (r *Renderer) encodeJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	r.emitted++
	return nil
}

// encodeYAML writes one YAML document, separating consecutive documents.
func (r *Renderer) encodeYAML(v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	if r.emitted > 0 {
		r.Println("---")
	}
	if _, err := r.out.Write(b); err != nil {
		return err
	}
	r.emitted++
	return nil
}
