package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/leapstack-labs/relcalc/internal/registry"
)

// ReaderConfig configures the production line reader.
type ReaderConfig struct {
	Prompt      string
	HistoryFile string
}

// NewReader creates a readline instance with input history and tab
// completion of the names currently in reg.
func NewReader(cfg ReaderConfig, reg *registry.Registry) (*readline.Instance, error) {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.HistoryFile), 0o750); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cfg.Prompt,
		HistoryFile:       cfg.HistoryFile,
		AutoComplete:      newNameCompleter(reg),
		InterruptPrompt:   "^C",
		EOFPrompt:         "0",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize line reader: %w", err)
	}
	return rl, nil
}

// newNameCompleter completes set and relation names. Names are read at
// completion time so that entries created during the session are offered.
func newNameCompleter(reg *registry.Registry) *readline.PrefixCompleter {
	names := func(string) []string {
		return append(reg.SetNames(), reg.RelationNames()...)
	}
	return readline.NewPrefixCompleter(readline.PcItemDynamic(names))
}

// PipeReader reads plain lines from a non-terminal input, echoing each
// prompt to the output the way a terminal would show it.
type PipeReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

// NewPipeReader creates a PipeReader over in.
func NewPipeReader(in io.Reader, out io.Writer) *PipeReader {
	return &PipeReader{scanner: bufio.NewScanner(in), out: out}
}

// Readline returns the next line without its terminator, or io.EOF.
// The prompt is followed by a newline since the input is not echoed.
func (p *PipeReader) Readline() (string, error) {
	if p.prompt != "" {
		defer func() { _, _ = io.WriteString(p.out, "\n") }()
		_, _ = io.WriteString(p.out, p.prompt)
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}

// SetPrompt sets the prompt written before the next read.
func (p *PipeReader) SetPrompt(prompt string) { p.prompt = prompt }

// Close is a no-op; the input belongs to the caller.
func (p *PipeReader) Close() error { return nil }

// IsTerminal reports whether in is an interactive terminal.
func IsTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
