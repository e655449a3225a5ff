package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProposedCommand is one shell command extracted from a model reply.
// Index is 1-based and follows source order.
type ProposedCommand struct {
	Index int
	Text  string
}

// Decision is the user's answer for a proposed command.
type Decision int

const (
	DecisionRun Decision = iota + 1
	DecisionSkip
	DecisionRunAll
	DecisionAbort
)

func (d Decision) String() string {
	switch d {
	case DecisionRun:
		return "run"
	case DecisionSkip:
		return "skip"
	case DecisionRunAll:
		return "run-all"
	case DecisionAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Approved reports whether the decision allows execution.
func (d Decision) Approved() bool {
	return d == DecisionRun || d == DecisionRunAll
}

// ExecutionResult wraps details from the command executor.
type ExecutionResult struct {
	Command         string
	WorkDir         string
	ExitCode        int
	Stdout          string
	Stderr          string
	StdoutTruncated bool
	StderrTruncated bool
	TimedOut        bool
	// Failed is set when the command could not be spawned at all.
	Failed    bool
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns the wall time of the execution.
func (r ExecutionResult) Duration() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Succeeded reports a zero exit status from a command that actually ran.
func (r ExecutionResult) Succeeded() bool {
	return !r.Failed && !r.TimedOut && r.ExitCode == 0
}

// ToolOutputPrefix marks transcript turns that carry command results.
const ToolOutputPrefix = "TOOL_OUTPUT:"

// Notes fed back to the model when nothing ran.
const (
	NoteSkipped = "(Commands skipped by user)"
	NoteAborted = "(Remaining commands aborted by user)"
)

// FormatToolOutput renders executed results as the text of a transcript turn.
// Command text and captured output are copied verbatim.
func FormatToolOutput(results []ExecutionResult, note string) string {
	var b strings.Builder
	b.WriteString(ToolOutputPrefix)
	b.WriteString("\n")
	for _, res := range results {
		fmt.Fprintf(&b, "$ %s\n", res.Command)
		switch {
		case res.Failed:
			b.WriteString("exit code: -1 (command could not be started)\n")
		case res.TimedOut:
			b.WriteString("exit code: -1 (timed out)\n")
		default:
			fmt.Fprintf(&b, "exit code: %d\n", res.ExitCode)
		}
		if res.Stdout == "" && res.Stderr == "" {
			b.WriteString("(no output)\n")
			continue
		}
		writeStream(&b, "stdout", res.Stdout, res.StdoutTruncated)
		writeStream(&b, "stderr", res.Stderr, res.StderrTruncated)
	}
	if note != "" {
		b.WriteString(note)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeStream(b *strings.Builder, name, content string, truncated bool) {
	if content == "" {
		return
	}
	fmt.Fprintf(b, "%s:\n%s", name, content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	if truncated {
		fmt.Fprintf(b, "[%s truncated]\n", name)
	}
}
