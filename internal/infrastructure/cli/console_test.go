package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/shellbuddy/internal/domain"
)

func newTestConsole() (*Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	c := NewConsole(ConsoleOptions{Out: &out, Err: &errOut, Styles: PlainStyles(), MaxOutputBytes: 1024})
	return c, &out, &errOut
}

func TestConsoleAssistantAndCommands(t *testing.T) {
	c, out, _ := newTestConsole()

	c.Assistant("List the files.")
	c.Commands([]domain.ProposedCommand{{Index: 1, Text: "ls -la"}, {Index: 2, Text: "pwd"}})

	got := out.String()
	assert.Contains(t, got, "ShellBuddy:\nList the files.\n")
	assert.Contains(t, got, "Proposed commands:\n")
	assert.Contains(t, got, "1. ls -la\n")
	assert.Contains(t, got, "2. pwd\n")
}

func TestConsoleAssistantEmptyExplanation(t *testing.T) {
	c, out, _ := newTestConsole()
	c.Assistant("  ")
	assert.Equal(t, "\nShellBuddy:\n", out.String())
}

func TestConsoleResult(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		res  domain.ExecutionResult
		want []string
		skip []string
	}{
		{
			name: "success",
			res:  domain.ExecutionResult{Stdout: "a.txt", StartedAt: start, EndedAt: start.Add(12 * time.Millisecond)},
			want: []string{"a.txt\n", "exit 0 in 12ms"},
		},
		{
			name: "non-zero exit with stderr",
			res:  domain.ExecutionResult{ExitCode: 2, Stderr: "no such file\n", StartedAt: start, EndedAt: start},
			want: []string{"no such file\n", "exit 2 in 0s"},
		},
		{
			name: "timeout",
			res:  domain.ExecutionResult{TimedOut: true, ExitCode: -1, StartedAt: start, EndedAt: start.Add(time.Second)},
			want: []string{"timed out after 1s"},
		},
		{
			name: "spawn failure hides stderr",
			res:  domain.ExecutionResult{Failed: true, ExitCode: -1, Stderr: "fork/exec: no such file"},
			want: []string{"could not be started"},
			skip: []string{"fork/exec"},
		},
		{
			name: "truncated",
			res:  domain.ExecutionResult{Stdout: "yyyy", StdoutTruncated: true},
			want: []string{"[output truncated at 1.0 KiB per stream]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out, _ := newTestConsole()
			c.Result(tt.res)
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
			for _, skip := range tt.skip {
				assert.NotContains(t, out.String(), skip)
			}
		})
	}
}

func TestConsoleMessagesGoToTheRightStream(t *testing.T) {
	c, out, errOut := newTestConsole()

	c.Executing(domain.ProposedCommand{Index: 1, Text: "ls"})
	c.Info("Type exit to quit.")
	c.Warn("session log unavailable")
	c.Error(errors.New("gemini: timeout"))
	c.Error(nil)

	assert.Contains(t, out.String(), "> running: ls\n")
	assert.Contains(t, out.String(), "Type exit to quit.\n")
	assert.Equal(t, "warning: session log unavailable\nerror: gemini: timeout\n", errOut.String())
}

func TestConsoleThinkingWithoutSpinner(t *testing.T) {
	c, _, errOut := newTestConsole()
	stop := c.Thinking()
	stop()
	assert.Empty(t, errOut.String())
}
