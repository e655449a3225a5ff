// Package sessionlog appends a plain-text record of every executed command.
package sessionlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/ports"
)

// WarnFunc receives write failures. The session keeps going regardless.
type WarnFunc func(err error)

// FileLogger writes to <dir>/session_log.txt. The file is opened in append
// mode for every entry, so a directory removed mid-session is recreated.
type FileLogger struct {
	mu        sync.Mutex
	path      string
	sessionID string
	warn      WarnFunc
	now       func() time.Time
	maxOutput int
}

// Open prepares the log under dir and writes a session header.
func Open(dir, sessionID string, maxOutput int, warn WarnFunc) *FileLogger {
	if warn == nil {
		warn = func(error) {}
	}
	l := &FileLogger{
		path:      filepath.Join(dir, domain.SessionLogFile),
		sessionID: sessionID,
		warn:      warn,
		now:       time.Now,
		maxOutput: maxOutput,
	}
	l.write(fmt.Sprintf("=== session %s started %s ===\n", sessionID, l.now().Format(domain.TimestampFormat)))
	return l
}

// Path returns the log file location.
func (l *FileLogger) Path() string {
	return l.path
}

// Record implements ports.SessionLogger.
func (l *FileLogger) Record(res domain.ExecutionResult) {
	l.write(l.format(res))
}

// Close writes the session footer.
func (l *FileLogger) Close() {
	l.write(fmt.Sprintf("=== session %s ended %s ===\n\n", l.sessionID, l.now().Format(domain.TimestampFormat)))
}

func (l *FileLogger) format(res domain.ExecutionResult) string {
	ts := res.StartedAt
	if ts.IsZero() {
		ts = l.now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", ts.Format(domain.TimestampFormat), res.WorkDir)
	fmt.Fprintf(&b, "$ %s\n", res.Command)
	switch {
	case res.Failed:
		b.WriteString("status: could not be started\n")
	case res.TimedOut:
		b.WriteString("status: timed out\n")
	default:
		fmt.Fprintf(&b, "exit code: %d\n", res.ExitCode)
	}
	fmt.Fprintf(&b, "duration: %s\n", res.Duration().Round(time.Millisecond))
	l.writeStream(&b, "stdout", res.Stdout, res.StdoutTruncated)
	l.writeStream(&b, "stderr", res.Stderr, res.StderrTruncated)
	b.WriteString("---\n")
	return b.String()
}

func (l *FileLogger) writeStream(b *strings.Builder, name, text string, truncated bool) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, "%s:\n%s", name, text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
	if truncated {
		fmt.Fprintf(b, "[%s truncated after %s]\n", name, humanize.IBytes(uint64(l.maxOutput)))
	}
}

func (l *FileLogger) write(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), domain.DirectoryPermissions); err != nil {
		l.warn(fmt.Errorf("session log: %w", err))
		return
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.LogFilePermissions)
	if err != nil {
		l.warn(fmt.Errorf("session log: %w", err))
		return
	}
	if _, err := file.WriteString(entry); err != nil {
		l.warn(fmt.Errorf("session log: %w", err))
	}
	if err := file.Close(); err != nil {
		l.warn(fmt.Errorf("session log: %w", err))
	}
}

var _ ports.SessionLogger = (*FileLogger)(nil)
