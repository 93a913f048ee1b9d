package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/relcalc/internal/cli/config"
	"github.com/leapstack-labs/relcalc/internal/registry"
)

// ConfigField documents one relcalc.yaml key.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Env         string
	Flag        string
	Description string
}

// configFields mirrors the koanf tags of config.Config.
func configFields() []ConfigField {
	scalar := func(name, typ, def, flag, desc string) ConfigField {
		return ConfigField{
			Name:        name,
			Type:        typ,
			Default:     def,
			Env:         "RELCALC_" + strings.ToUpper(name),
			Flag:        flag,
			Description: desc,
		}
	}
	return []ConfigField{
		scalar("output", "string", string(config.DefaultOutput), "--output", "Output format: auto, text, markdown, json or yaml"),
		scalar("verbose", "bool", "false", "--verbose", "Enable debug logging"),
		scalar("log_level", "string", config.DefaultLogLevel, "--log-level", "Log level: debug, info, warn or error"),
		scalar("history_file", "string", "~/"+config.DefaultHistory, "--history-file", "Menu input history file"),
		scalar("prompt", "string", config.DefaultPrompt, "", "Prompt shown under the operations menu"),
		scalar("pause", "bool", "false", "--pause", "Wait for Enter after each menu action"),
		{Name: "sets", Type: "map", Description: "Extra sets by name, in set notation"},
		{Name: "relations", Type: "map", Description: "Extra relations by name, in relation notation"},
	}
}

// generateConfigDocs writes configuration.md.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "relcalc.yaml reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("relcalc reads " + InlineCode("./relcalc.yaml") + ", then " + InlineCode("./relcalc.yml") +
		", then " + InlineCode("~/.relcalc/relcalc.yaml") + ". The first file found is used; " +
		InlineCode("--config") + " names one explicitly.")

	w.Header(2, "Keys")
	headers := []string{"Key", "Type", "Default", "Environment", "Flag", "Description"}
	var rows [][]string
	for _, f := range configFields() {
		def, env, flag := "-", "-", "-"
		if f.Default != "" {
			def = InlineCode(f.Default)
		}
		if f.Env != "" {
			env = InlineCode(f.Env)
		}
		if f.Flag != "" {
			flag = InlineCode(f.Flag)
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, def, env, flag, f.Description})
	}
	w.Table(headers, rows)

	w.Header(2, "Definitions")
	w.Paragraph("Names are case-insensitive and stored upper-case. The built-in examples " +
		protectedList() + " cannot be redefined. Quote values that start with a brace.")
	w.CodeBlock("yaml", `output: text
pause: true

sets:
  evens: "{2, 4}"
  letters: "a, b, c"

relations:
  lt: "{(2,4)}"`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}

func protectedList() string {
	reg := registry.New(nil)
	var names []string
	for _, n := range reg.SetNames() {
		names = append(names, InlineCode(n))
	}
	for _, n := range reg.RelationNames() {
		names = append(names, InlineCode(n))
	}
	return strings.Join(names, ", ")
}
