package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ruleWidth is the width of the separator lines under text headers.
const ruleWidth = 50

// Renderer writes human and machine output for one command invocation.
type Renderer struct {
	out     io.Writer
	errOut  io.Writer
	mode    OutputMode
	isTTY   bool
	styles  *Styles
	emitted int
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Colors are only emitted for text output on a TTY.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
	}
	lr := lipgloss.NewRenderer(out)
	if !isTTY || r.EffectiveMode() != ModeText {
		lr.SetColorProfile(termenv.Ascii)
	}
	r.styles = newStyles(lr)
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Mode returns the configured mode, which may be ModeAuto.
func (r *Renderer) Mode() OutputMode { return r.mode }

// EffectiveMode resolves ModeAuto: text on a TTY, markdown otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode == ModeAuto || r.mode == "" {
		if r.isTTY {
			return ModeText
		}
		return ModeMarkdown
	}
	return r.mode
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Interactive returns a renderer for conversational use (the menu shell).
// Auto and structured modes become text; markdown is kept if requested.
func (r *Renderer) Interactive() *Renderer {
	if r.mode == ModeMarkdown || r.mode == ModeText {
		return r
	}
	return NewRendererWithTTY(r.out, r.errOut, r.isTTY, ModeText)
}

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the lipgloss styles bound to this renderer.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header prints a level 1 or 2 heading. Structured modes print nothing.
func (r *Renderer) Header(level int, title string) {
	switch r.EffectiveMode() {
	case ModeJSON, ModeYAML:
		return
	case ModeMarkdown:
		r.Println(FormatHeader(level, title))
		r.Println("")
	default:
		if level <= 1 {
			r.Println(r.styles.Muted.Render(strings.Repeat("=", ruleWidth)))
			r.Println(r.styles.Header1.Render(title))
			r.Println(r.styles.Muted.Render(strings.Repeat("=", ruleWidth)))
			return
		}
		r.Println(r.styles.Header2.Render(title))
		r.Println(r.styles.Muted.Render(strings.Repeat("-", ruleWidth)))
	}
}

// Rule prints a separator line in text mode.
func (r *Renderer) Rule() {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Muted.Render(strings.Repeat("-", ruleWidth)))
	}
}

// Note prints explanatory text. Structured modes print nothing.
func (r *Renderer) Note(format string, a ...any) {
	if r.EffectiveMode().IsStructured() {
		return
	}
	r.Printf(format+"\n", a...)
}

// Success prints a confirmation line.
func (r *Renderer) Success(format string, a ...any) {
	if r.EffectiveMode().IsStructured() {
		return
	}
	r.Println(r.styles.Success.Render("✓ " + fmt.Sprintf(format, a...)))
}

// Warn prints a warning line to standard output.
func (r *Renderer) Warn(format string, a ...any) {
	if r.EffectiveMode().IsStructured() {
		return
	}
	r.Println(r.styles.Warning.Render(fmt.Sprintf(format, a...)))
}

// Error prints "Error: <msg>" to the error writer in every mode.
func (r *Renderer) Error(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("Error: "+fmt.Sprintf(format, a...)))
}

// FormatHeader returns a markdown heading of the given level.
func FormatHeader(level int, title string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + title
}
