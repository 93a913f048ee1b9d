package output

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/relcalc/internal/registry"
	"github.com/leapstack-labs/relcalc/pkg/notation"
)

// CatalogEntry is one named set or relation in structured output.
type CatalogEntry struct {
	Name     string  `json:"name" yaml:"name"`
	Size     int     `json:"size" yaml:"size"`
	BuiltIn  bool    `json:"built_in" yaml:"built_in"`
	Text     string  `json:"text" yaml:"text"`
	Elements []any   `json:"elements,omitempty" yaml:"elements,omitempty"`
	Pairs    [][]any `json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

// Catalog lists every set and relation of a registry.
type Catalog struct {
	Sets      []CatalogEntry `json:"sets" yaml:"sets"`
	Relations []CatalogEntry `json:"relations" yaml:"relations"`
}

// NewCatalog snapshots the registry contents in name order.
func NewCatalog(reg *registry.Registry) Catalog {
	c := Catalog{Sets: []CatalogEntry{}, Relations: []CatalogEntry{}}
	for _, name := range reg.SetNames() {
		s, _ := reg.Set(name)
		c.Sets = append(c.Sets, CatalogEntry{
			Name:     name,
			Size:     s.Len(),
			BuiltIn:  registry.IsProtected(registry.KindSet, name),
			Text:     notation.FormatSet(s),
			Elements: notation.SetValues(s),
		})
	}
	for _, name := range reg.RelationNames() {
		rel, _ := reg.Relation(name)
		c.Relations = append(c.Relations, CatalogEntry{
			Name:    name,
			Size:    rel.Len(),
			BuiltIn: registry.IsProtected(registry.KindRelation, name),
			Text:    notation.FormatRelation(rel),
			Pairs:   notation.RelationValues(rel),
		})
	}
	return c
}

// Catalog prints the registry contents: a table for text and markdown,
// a single document for json and yaml.
func (r *Renderer) Catalog(reg *registry.Registry) error {
	c := NewCatalog(reg)
	switch mode := r.EffectiveMode(); mode {
	case ModeJSON:
		return r.encodeJSON(c)
	case ModeYAML:
		return r.encodeYAML(c)
	default:
		r.catalogTable("Sets", c.Sets, mode)
		r.Println("")
		r.catalogTable("Relations", c.Relations, mode)
		return nil
	}
}

func (r *Renderer) catalogTable(title string, entries []CatalogEntry, mode OutputMode) {
	r.Header(2, title)
	if len(entries) == 0 {
		r.Println(r.styles.Muted.Render("(none)"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(table.Row{"Name", "Size", "Built-in", "Contents"})
	for _, e := range entries {
		builtIn := ""
		if e.BuiltIn {
			builtIn = "yes"
		}
		t.AppendRow(table.Row{e.Name, e.Size, builtIn, e.Text})
	}

	if mode == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
