// Package output renders command results for terminals, markdown consumers
// and machine readers.
package output

import (
	"fmt"
	"strings"
)

// OutputMode selects how results are rendered.
type OutputMode string //nolint:revive // output.OutputMode reads better at call sites than output.Mode

// Output modes.
const (
	ModeAuto     OutputMode = "auto"     // text on a TTY, markdown otherwise
	ModeText     OutputMode = "text"     // styled, human readable
	ModeMarkdown OutputMode = "markdown" // plain markdown, no ANSI codes
	ModeJSON     OutputMode = "json"     // one JSON document per result
	ModeYAML     OutputMode = "yaml"     // one YAML document per result
)

// Modes lists every accepted mode name, for flag completion and errors.
var Modes = []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON), string(ModeYAML)}

// Mode converts a user-supplied string to an OutputMode. Unknown or empty
// values fall back to ModeAuto; "md" is accepted for markdown.
func Mode(s string) OutputMode {
	m, err := ParseMode(s)
	if err != nil {
		return ModeAuto
	}
	return m
}

// ParseMode converts s to an OutputMode, rejecting unknown names.
func ParseMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "text":
		return ModeText, nil
	case "markdown", "md":
		return ModeMarkdown, nil
	case "json":
		return ModeJSON, nil
	case "yaml", "yml":
		return ModeYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected one of: %s)", s, strings.Join(Modes, ", "))
}

// UnmarshalText validates the mode while configuration is decoded.
func (m *OutputMode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// IsStructured reports whether the mode is a machine-readable encoding.
func (m OutputMode) IsStructured() bool {
	return m == ModeJSON || m == ModeYAML
}
