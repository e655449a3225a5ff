// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the session core and external
// adapters (infrastructure). The orchestrator only sees these interfaces, so the
// command-proposal loop can be driven in tests without a terminal, a network or
// a real shell.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Provider, Confirmer)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"errors"

	"github.com/doeshing/shellbuddy/internal/domain"
)

// ConfigProvider loads the configuration from persistent storage.
// Implementations typically read config.json in the working directory.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// EnvironmentCollector gathers facts about the host (distro, shell, cwd)
// that are rendered into the system prompt.
type EnvironmentCollector interface {
	Collect(context.Context) domain.Environment
}

// ProviderFactory builds the provider selected by configuration.
type ProviderFactory interface {
	ForConfig(domain.Config) (Provider, error)
}

// Provider sends the ordered transcript to a hosted model and returns its raw reply.
// Failures are reported as *domain.ProviderError. A single attempt is made.
type Provider interface {
	Name() string
	Model() string
	Send(ctx context.Context, turns []domain.Turn) (string, error)
}

// SecurityService evaluates commands against advisory risk rules.
type SecurityService interface {
	Evaluate(command string) (domain.RiskAssessment, error)
}

// Confirmer asks the user what to do with each proposed command.
// The returned decisions are parallel to the commands.
type Confirmer interface {
	Confirm(ctx context.Context, commands []domain.ProposedCommand) ([]domain.Decision, error)
}

// CommandExecutor runs shell commands in the configured shell environment.
// Non-zero exit status is data; only spawn failures return *domain.ExecutionError.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) (domain.ExecutionResult, error)
	WorkDir() string
}

// ErrInputAborted is returned by a LineReader when the user interrupts the
// prompt (Ctrl-C) without ending the input stream.
var ErrInputAborted = errors.New("input aborted")

// LineReader reads one line of user input after printing a prompt.
// io.EOF signals the end of input.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Console renders session output for the user.
type Console interface {
	Assistant(explanation string)
	Commands(commands []domain.ProposedCommand)
	Executing(command domain.ProposedCommand)
	Result(result domain.ExecutionResult)
	Info(msg string)
	Warn(msg string)
	Error(err error)
	// Thinking shows progress while the model is working; the returned func stops it.
	Thinking() (stop func())
}

// SessionLogger appends executed commands and their output to the session log.
// It never returns errors: failures are reported through its own warning hook.
type SessionLogger interface {
	Record(result domain.ExecutionResult)
	Close()
}

// HistoryRepository stores executed-command metadata across sessions.
type HistoryRepository interface {
	Save(record domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
