// Package session drives the conversation between the user, the model and
// the shell.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/shellbuddy/internal/domain"
)

// State is the position of a session in its loop.
type State int

const (
	StateAwaitingUserInput State = iota
	StateAwaitingModelReply
	StateAwaitingConfirmation
	StateExecuting
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAwaitingUserInput:
		return "awaiting-user-input"
	case StateAwaitingModelReply:
		return "awaiting-model-reply"
	case StateAwaitingConfirmation:
		return "awaiting-confirmation"
	case StateExecuting:
		return "executing"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Session is the mutable state of one conversation. It is passed explicitly
// to every Service call.
type Session struct {
	ID         string
	Transcript *domain.Transcript
	State      State
	StartedAt  time.Time
	// Prompt is the latest user message, stamped on history records.
	Prompt string
	// Executed counts commands run during the session.
	Executed int
}

// New starts a session whose transcript opens with systemPrompt.
func New(systemPrompt string) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Transcript: domain.NewTranscript(systemPrompt),
		State:      StateAwaitingUserInput,
		StartedAt:  time.Now(),
	}
}
