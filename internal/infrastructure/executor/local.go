// Package executor runs approved commands through a shell interpreter.
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/pkg/filesystem"
	"github.com/doeshing/shellbuddy/internal/ports"
)

// Options configures a LocalExecutor.
type Options struct {
	Shell          string
	WorkDir        string
	Timeout        time.Duration
	MaxOutputBytes int
}

// LocalExecutor runs commands on the host shell. It owns the session working
// directory, which the cd builtin changes.
type LocalExecutor struct {
	shell     string
	dir       string
	timeout   time.Duration
	maxOutput int
	now       func() time.Time
}

// NewLocalExecutor builds a new executor, shell defaults to $SHELL then /bin/sh.
func NewLocalExecutor(opts Options) *LocalExecutor {
	shell := opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	dir := opts.WorkDir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	maxOutput := opts.MaxOutputBytes
	if maxOutput <= 0 {
		maxOutput = domain.DefaultMaxOutputBytes
	}
	return &LocalExecutor{
		shell:     shell,
		dir:       dir,
		timeout:   opts.Timeout,
		maxOutput: maxOutput,
		now:       time.Now,
	}
}

// WorkDir implements ports.CommandExecutor.
func (e *LocalExecutor) WorkDir() string {
	return e.dir
}

// Shell returns the interpreter used for commands.
func (e *LocalExecutor) Shell() string {
	return e.shell
}

// Execute implements ports.CommandExecutor.
func (e *LocalExecutor) Execute(ctx context.Context, command string) (domain.ExecutionResult, error) {
	command = strings.TrimSpace(command)
	if target, ok := parseChangeDir(command); ok {
		return e.changeDir(command, target), nil
	}

	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	c := exec.CommandContext(runCtx, e.shell, "-c", command)
	c.Dir = e.dir
	configureCommandProcess(c)
	c.Cancel = func() error {
		terminateCommandProcess(c)
		return nil
	}
	c.WaitDelay = time.Second

	stdout := newBoundedBuffer(e.maxOutput)
	stderr := newBoundedBuffer(e.maxOutput)
	c.Stdout = stdout
	c.Stderr = stderr

	start := e.now()
	err := c.Run()
	result := domain.ExecutionResult{
		Command:         command,
		WorkDir:         e.dir,
		Stdout:          stdout.String(),
		Stderr:          stderr.String(),
		StdoutTruncated: stdout.Truncated(),
		StderrTruncated: stderr.Truncated(),
		StartedAt:       start,
		EndedAt:         e.now(),
	}
	if err == nil {
		return result, nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		result.TimedOut = true
		result.ExitCode = -1
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.Failed = true
	result.ExitCode = -1
	result.Stderr = err.Error()
	return result, &domain.ExecutionError{Command: command, Err: err}
}

func (e *LocalExecutor) changeDir(command, target string) domain.ExecutionResult {
	start := e.now()
	result := domain.ExecutionResult{Command: command, WorkDir: e.dir, StartedAt: start}

	if target == "" {
		target = "~"
	}
	path := filesystem.ExpandPath(target, e.dir)
	info, err := os.Stat(path)
	switch {
	case err != nil:
		result.ExitCode = 1
		result.Stderr = fmt.Sprintf("cd: %s: no such file or directory\n", target)
	case !info.IsDir():
		result.ExitCode = 1
		result.Stderr = fmt.Sprintf("cd: %s: not a directory\n", target)
	default:
		e.dir = path
		result.Stdout = fmt.Sprintf("working directory changed to %s\n", path)
	}
	result.EndedAt = e.now()
	return result
}

// parseChangeDir recognises a lone `cd [dir]`. Anything with shell operators
// runs through the shell, where the directory change cannot persist.
func parseChangeDir(command string) (string, bool) {
	if command != "cd" && !strings.HasPrefix(command, "cd ") && !strings.HasPrefix(command, "cd\t") {
		return "", false
	}
	rest := strings.TrimSpace(command[2:])
	if strings.ContainsAny(rest, ";&|<>`()$") {
		return "", false
	}
	if rest == "-" || strings.Contains(rest, " ") && !isQuoted(rest) {
		return "", false
	}
	return strings.Trim(rest, `"'`), true
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
