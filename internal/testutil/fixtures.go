package testutil

import (
	"io"
	"testing"

	"github.com/chzyer/readline"

	"github.com/leapstack-labs/relcalc/pkg/algebra"
	"github.com/leapstack-labs/relcalc/pkg/notation"
)

// MustSet parses set notation or fails the test.
func MustSet(t testing.TB, input string) algebra.Set {
	t.Helper()
	s, err := notation.ParseSet(input)
	if err != nil {
		t.Fatalf("parse set %q: %v", input, err)
	}
	return s
}

// MustRelation parses relation notation or fails the test.
func MustRelation(t testing.TB, input string) algebra.Relation {
	t.Helper()
	r, err := notation.ParseRelation(input)
	if err != nil {
		t.Fatalf("parse relation %q: %v", input, err)
	}
	return r
}

// Script is a line reader that replays canned input. Once the lines are
// exhausted every read returns io.EOF. Prompts are recorded so tests can
// check what the user was asked.
type Script struct {
	lines   []string
	pos     int
	prompt  string
	Prompts []string
	closed  bool
}

// NewScript returns a Script that yields lines in order. A line equal to
// "^C" yields readline.ErrInterrupt instead, as Ctrl-C would.
func NewScript(lines ...string) *Script {
	return &Script{lines: lines}
}

// Readline returns the next scripted line.
func (s *Script) Readline() (string, error) {
	s.Prompts = append(s.Prompts, s.prompt)
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	if line == "^C" {
		return "", readline.ErrInterrupt
	}
	return line, nil
}

// SetPrompt records the prompt shown before the next read.
func (s *Script) SetPrompt(p string) { s.prompt = p }

// Close marks the script as closed.
func (s *Script) Close() error {
	s.closed = true
	return nil
}

// Remaining returns how many scripted lines were not consumed.
func (s *Script) Remaining() int { return len(s.lines) - s.pos }

// Closed reports whether Close was called.
func (s *Script) Closed() bool { return s.closed }
