package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/doeshing/shellbuddy/internal/ports"
)

// InputReader is a ports.LineReader that must be closed to restore the terminal.
type InputReader interface {
	ports.LineReader
	io.Closer
}

// NewLineReader returns a line-editing reader with history when stdin is a
// terminal and a plain buffered reader otherwise (pipes, tests).
func NewLineReader(in *os.File, out io.Writer) InputReader {
	if in != nil && isTerminal(in) {
		return newLinerReader()
	}
	var r io.Reader = os.Stdin
	if in != nil {
		r = in
	}
	return NewPlainReader(r, out)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// LinerReader wraps peterh/liner.
type LinerReader struct {
	state *liner.State
}

func newLinerReader() *LinerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &LinerReader{state: state}
}

// ReadLine implements ports.LineReader. Non-empty lines are added to the
// in-memory history.
func (r *LinerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ports.ErrInputAborted
	case err != nil:
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal mode.
func (r *LinerReader) Close() error {
	return r.state.Close()
}

// PlainReader reads newline-terminated input without line editing.
type PlainReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlainReader builds a reader over in that writes prompts to out.
func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	if out == nil {
		out = io.Discard
	}
	return &PlainReader{in: bufio.NewReader(in), out: out}
}

// ReadLine implements ports.LineReader. A final line without a newline is
// returned before io.EOF.
func (r *PlainReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close is a no-op.
func (r *PlainReader) Close() error {
	return nil
}
