// Package shell implements the numbered interactive menu.
//
// A Session reads one line at a time from a LineReader, so the same loop
// serves a readline terminal and piped or scripted input. Every error is
// recovered at the menu boundary: malformed input is re-prompted in place,
// other failures abort the current action and the menu is shown again.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/leapstack-labs/relcalc/internal/cli/output"
	"github.com/leapstack-labs/relcalc/internal/registry"
	starctx "github.com/leapstack-labs/relcalc/internal/starlark"
	"github.com/leapstack-labs/relcalc/pkg/notation"
)

// DefaultPrompt is the menu prompt used when none is configured.
const DefaultPrompt = "Choose an option: "

// PausePrompt is shown after each action when pausing is enabled.
const PausePrompt = "Press Enter to continue..."

// LineReader is the input side of a session. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

var (
	// errInterrupted is returned by reads cancelled with Ctrl-C.
	errInterrupted = errors.New("interrupted")

	// errDeclined ends an action the user chose not to continue.
	errDeclined = errors.New("declined")
)

// Session is one run of the interactive menu over a registry.
type Session struct {
	in     LineReader
	r      *output.Renderer
	reg    *registry.Registry
	eval   *starctx.ExecutionContext
	logger *slog.Logger
	prompt string
	pause  bool
}

// Option configures a Session.
type Option func(*Session)

// WithPrompt sets the menu prompt.
func WithPrompt(prompt string) Option {
	return func(s *Session) {
		if prompt != "" {
			s.prompt = prompt
		}
	}
}

// WithPause makes the session wait for Enter after every action.
func WithPause(pause bool) Option {
	return func(s *Session) { s.pause = pause }
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a session reading from in and writing through r.
func New(in LineReader, r *output.Renderer, reg *registry.Registry, opts ...Option) *Session {
	s := &Session{
		in:     in,
		r:      r,
		reg:    reg,
		logger: slog.New(slog.DiscardHandler),
		prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.eval = starctx.NewContext(reg,
		starctx.WithLogger(s.logger),
		starctx.WithPrint(func(msg string) { s.r.Println(msg) }),
	)
	return s
}

// Run shows the menu until the user exits, input ends, or c is done.
// Ending input is a normal exit. The line reader is closed on return.
func (s *Session) Run(c context.Context) error {
	defer func() { _ = s.in.Close() }()

	s.r.Header(1, "Set and relation calculator")
	s.r.Note("Create sets and relations and combine them. Enter 0 to exit.")

	for {
		if err := c.Err(); err != nil {
			return err
		}
		s.showMenu()

		choice, err := askValid(s, s.prompt, parseChoice)
		switch {
		case errors.Is(err, errInterrupted):
			continue
		case errors.Is(err, io.EOF):
			s.goodbye()
			return nil
		case err != nil:
			return err
		}
		if choice == 0 {
			s.goodbye()
			return nil
		}

		item := menu[choice]
		s.logger.Debug("menu action", "option", choice, "action", item.label)
		if err := item.run(s, c); err != nil {
			if s.recover(err) {
				s.goodbye()
				return nil
			}
		}

		if s.pause {
			if _, err := s.readLine(PausePrompt); errors.Is(err, io.EOF) {
				s.goodbye()
				return nil
			}
		}
	}
}

// recover reports an action error and returns true when input has ended.
func (s *Session) recover(err error) bool {
	switch {
	case errors.Is(err, io.EOF):
		return true
	case errors.Is(err, errInterrupted):
		s.r.Warn("Cancelled")
	case errors.Is(err, errDeclined):
	default:
		s.logger.Debug("action failed", "error", err)
		s.r.Error("%v", err)
	}
	return false
}

func (s *Session) showMenu() {
	s.r.Println("")
	s.r.Header(2, "Operations menu")
	for i, item := range menu {
		if i == 0 {
			continue
		}
		s.r.Printf("%-4s%s\n", strconv.Itoa(i)+".", item.label)
	}
	s.r.Printf("%-4s%s\n", "0.", menu[0].label)
	s.r.Rule()
}

func (s *Session) goodbye() {
	s.r.Println("")
	s.r.Success("Goodbye!")
}

func parseChoice(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 0 || n >= len(menu) {
		return 0, &notation.ValidationError{
			Input:   input,
			Message: fmt.Sprintf("invalid option, choose a number from 0 to %d", len(menu)-1),
		}
	}
	return n, nil
}

// readLine reads one trimmed line after showing prompt. Ctrl-C is reported
// as errInterrupted and end of input as io.EOF.
func (s *Session) readLine(prompt string) (string, error) {
	s.in.SetPrompt(prompt)
	line, err := s.in.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", errInterrupted
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askValid reads lines until parse accepts one, printing each rejection.
func askValid[T any](s *Session, prompt string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		s.r.Error("%v", err)
	}
}

// confirm asks a yes/no question. Only an explicit yes counts.
func (s *Session) confirm(question string) (bool, error) {
	answer, err := s.readLine(question + " (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	}
	return false, nil
}

// validName accepts a well-formed name and returns its normalized form.
func validName(input string) (string, error) {
	if err := registry.ValidateName(input); err != nil {
		return "", err
	}
	return registry.Normalize(input), nil
}
