package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/ports"
)

const defaultWrapWidth = 100

// ConsoleOptions configures a Console.
type ConsoleOptions struct {
	Out     io.Writer
	Err     io.Writer
	Styles  Styles
	Spinner bool
	// Markdown renders explanations through glamour at the given wrap width.
	Markdown       bool
	Width          int
	MaxOutputBytes int
}

// Console implements ports.Console for a terminal.
type Console struct {
	out       io.Writer
	errOut    io.Writer
	styles    Styles
	spinner   bool
	markdown  *glamour.TermRenderer
	maxOutput int
}

// NewConsole builds a console from explicit options.
func NewConsole(opts ConsoleOptions) *Console {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Err == nil {
		opts.Err = opts.Out
	}
	c := &Console{
		out:       opts.Out,
		errOut:    opts.Err,
		styles:    opts.Styles,
		spinner:   opts.Spinner,
		maxOutput: opts.MaxOutputBytes,
	}
	if opts.Markdown {
		width := opts.Width
		if width <= 0 {
			width = defaultWrapWidth
		}
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width)); err == nil {
			c.markdown = r
		}
	}
	return c
}

// NewTerminalConsole styles output only when stdout is a terminal and
// NO_COLOR is unset; the spinner runs only when stderr is a terminal.
func NewTerminalConsole(maxOutput int) *Console {
	stdoutTTY := isTerminal(os.Stdout)
	color := stdoutTTY && os.Getenv("NO_COLOR") == ""

	opts := ConsoleOptions{
		Out:            os.Stdout,
		Err:            os.Stderr,
		Styles:         PlainStyles(),
		Spinner:        isTerminal(os.Stderr),
		Markdown:       color,
		MaxOutputBytes: maxOutput,
	}
	if color {
		opts.Styles = DefaultStyles()
	}
	if stdoutTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			opts.Width = min(w-4, defaultWrapWidth)
		}
	}
	return NewConsole(opts)
}

// Styles exposes the active theme so the confirmer matches the console.
func (c *Console) Styles() Styles {
	return c.styles
}

// Assistant prints the model's explanation.
func (c *Console) Assistant(explanation string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.Assistant.Render("ShellBuddy:"))
	if strings.TrimSpace(explanation) == "" {
		return
	}
	if c.markdown != nil {
		if rendered, err := c.markdown.Render(explanation); err == nil {
			fmt.Fprint(c.out, rendered)
			return
		}
	}
	fmt.Fprintln(c.out, explanation)
}

// Commands lists the proposed batch.
func (c *Console) Commands(commands []domain.ProposedCommand) {
	fmt.Fprintln(c.out, c.styles.Heading.Render("Proposed commands:"))
	for _, cmd := range commands {
		fmt.Fprintf(c.out, "  %s %s\n", c.styles.Index.Render(fmt.Sprintf("%d.", cmd.Index)), c.styles.Command.Render(cmd.Text))
	}
}

// Executing announces a command that is about to run.
func (c *Console) Executing(cmd domain.ProposedCommand) {
	fmt.Fprintf(c.out, "\n%s %s\n", c.styles.Heading.Render("> running:"), c.styles.Command.Render(cmd.Text))
}

// Result prints captured output and the exit status.
func (c *Console) Result(res domain.ExecutionResult) {
	if res.Stdout != "" {
		fmt.Fprint(c.out, withNewline(res.Stdout))
	}
	if res.Stderr != "" && !res.Failed {
		fmt.Fprintln(c.out, c.styles.Warning.Render(strings.TrimSuffix(res.Stderr, "\n")))
	}
	if res.StdoutTruncated || res.StderrTruncated {
		fmt.Fprintln(c.out, c.styles.Muted.Render(fmt.Sprintf("[output truncated at %s per stream]", humanize.IBytes(uint64(c.maxOutput)))))
	}

	elapsed := res.Duration().Round(time.Millisecond)
	switch {
	case res.Failed:
		fmt.Fprintln(c.out, c.styles.Error.Render("could not be started"))
	case res.TimedOut:
		fmt.Fprintln(c.out, c.styles.Error.Render(fmt.Sprintf("timed out after %s", elapsed)))
	case res.ExitCode == 0:
		fmt.Fprintln(c.out, c.styles.Success.Render(fmt.Sprintf("exit 0 in %s", elapsed)))
	default:
		fmt.Fprintln(c.out, c.styles.Error.Render(fmt.Sprintf("exit %d in %s", res.ExitCode, elapsed)))
	}
}

// Info prints a neutral message.
func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, c.styles.Info.Render(msg))
}

// Warn prints a warning.
func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.errOut, c.styles.Warning.Render("warning: "+msg))
}

// Error prints an error without ending the session.
func (c *Console) Error(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(c.errOut, c.styles.Error.Render("error: "+err.Error()))
}

// Thinking shows a spinner until the returned func is called.
func (c *Console) Thinking() func() {
	if !c.spinner {
		return func() {}
	}
	s := NewSpinner(c.errOut, "thinking...")
	s.Start()
	return s.Stop
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

var _ ports.Console = (*Console)(nil)
