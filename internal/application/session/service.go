package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/ports"
)

// HelpText lists the commands understood at the prompt.
const HelpText = `Describe what you want to do and ShellBuddy proposes shell commands.
For every proposed command answer:
  y  run it          n  skip it
  a  run it and the rest of the batch (risky commands are still asked)
  q  abort the rest of the batch
After a batch runs, the output goes back to the model, which proposes the
next step until the task is done (auto-continue).
Type /help for this text, exit or quit to leave.`

// Service orchestrates the session loop end-to-end.
type Service struct {
	Provider   ports.Provider
	Confirmer  ports.Confirmer
	Executor   ports.CommandExecutor
	Console    ports.Console
	Input      ports.LineReader
	SessionLog ports.SessionLogger
	// History is optional.
	History ports.HistoryRepository
	Logger  ports.Logger

	AutoContinue   bool
	MaxSteps       int
	RequestTimeout time.Duration
}

func (s *Service) check() error {
	if s.Provider == nil || s.Confirmer == nil || s.Executor == nil ||
		s.Console == nil || s.Input == nil || s.SessionLog == nil || s.Logger == nil {
		return errors.New("session.Service dependencies not satisfied")
	}
	return nil
}

// Run reads user input until exit, quit, end of input or cancellation.
// Provider and execution failures are reported and never end the loop.
func (s *Service) Run(ctx context.Context, sess *Session) error {
	if err := s.check(); err != nil {
		return err
	}
	defer s.terminate(sess)

	s.Console.Info(fmt.Sprintf("Using %s (%s). Type /help for help, exit to quit.", s.Provider.Name(), s.Provider.Model()))
	s.Logger.Info("session started", map[string]interface{}{
		"session":  sess.ID,
		"provider": s.Provider.Name(),
		"model":    s.Provider.Model(),
	})

	for {
		if ctx.Err() != nil {
			return nil
		}
		sess.State = StateAwaitingUserInput
		line, err := s.Input.ReadLine(fmt.Sprintf("(%s) you> ", s.Executor.WorkDir()))
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, ports.ErrInputAborted):
			s.Console.Info("Type exit to quit.")
			continue
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}

		keepGoing, err := s.HandleInput(ctx, sess, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if !keepGoing {
			return nil
		}
	}
}

// HandleInput processes one line typed at the prompt. It returns false when
// the session should end.
func (s *Service) HandleInput(ctx context.Context, sess *Session, line string) (bool, error) {
	input := strings.TrimSpace(line)
	switch strings.ToLower(input) {
	case "":
		return true, nil
	case "exit", "quit":
		s.Console.Info("See you later!")
		return false, nil
	case "/help":
		s.Console.Info(HelpText)
		return true, nil
	}
	return true, s.Respond(ctx, sess, input)
}

// Respond appends message as a user turn and runs model rounds until the
// model stops proposing commands, the user aborts or skips everything, or
// MaxSteps rounds have been made. Only cancellation and confirmer failures
// are returned.
func (s *Service) Respond(ctx context.Context, sess *Session, message string) error {
	if err := s.check(); err != nil {
		return err
	}
	sess.Prompt = message
	sess.Transcript.Append(domain.RoleUser, message)

	maxSteps := s.MaxSteps
	if maxSteps <= 0 {
		maxSteps = domain.DefaultMaxSteps
	}

	for step := 1; ; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		sess.State = StateAwaitingModelReply
		reply, err := s.ask(ctx, sess)
		if err != nil {
			s.Console.Error(err)
			s.Logger.Error("provider call failed", err, map[string]interface{}{"session": sess.ID, "step": step})
			sess.State = StateAwaitingUserInput
			return nil
		}
		sess.Transcript.Append(domain.RoleAssistant, reply)

		extraction := ExtractCommands(reply)
		s.Console.Assistant(extraction.Explanation)
		if len(extraction.Commands) == 0 {
			sess.State = StateAwaitingUserInput
			return nil
		}
		s.Console.Commands(extraction.Commands)

		sess.State = StateAwaitingConfirmation
		decisions, err := s.Confirmer.Confirm(ctx, extraction.Commands)
		if err != nil {
			return fmt.Errorf("confirm commands: %w", err)
		}

		sess.State = StateExecuting
		results, aborted := s.runBatch(ctx, sess, extraction.Commands, decisions)

		switch {
		case aborted:
			sess.Transcript.Append(domain.RoleUser, domain.FormatToolOutput(results, domain.NoteAborted))
			sess.State = StateAwaitingUserInput
			return nil
		case len(results) == 0:
			sess.Transcript.Append(domain.RoleUser, domain.FormatToolOutput(nil, domain.NoteSkipped))
			sess.State = StateAwaitingUserInput
			return nil
		}
		sess.Transcript.Append(domain.RoleUser, domain.FormatToolOutput(results, ""))

		if !s.AutoContinue {
			sess.State = StateAwaitingUserInput
			return nil
		}
		if step >= maxSteps {
			s.Console.Warn(fmt.Sprintf("Paused after %d automatic steps. Send a message to continue.", maxSteps))
			sess.State = StateAwaitingUserInput
			return nil
		}
	}
}

func (s *Service) ask(ctx context.Context, sess *Session) (string, error) {
	reqCtx := ctx
	if s.RequestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()
	}

	stop := s.Console.Thinking()
	reply, err := s.Provider.Send(reqCtx, sess.Transcript.Turns())
	stop()
	if err != nil {
		if !domain.IsProviderError(err) {
			err = &domain.ProviderError{Provider: s.Provider.Name(), Err: err}
		}
		return "", err
	}
	return reply, nil
}

// runBatch executes the approved commands in order. Execution stops at the
// first Abort; commands after it get no result.
func (s *Service) runBatch(ctx context.Context, sess *Session, commands []domain.ProposedCommand, decisions []domain.Decision) ([]domain.ExecutionResult, bool) {
	var results []domain.ExecutionResult
	for i, cmd := range commands {
		decision := domain.DecisionAbort
		if i < len(decisions) {
			decision = decisions[i]
		}
		if decision == domain.DecisionAbort {
			return results, true
		}
		if !decision.Approved() {
			continue
		}
		if ctx.Err() != nil {
			return results, true
		}

		s.Console.Executing(cmd)
		res, err := s.Executor.Execute(ctx, cmd.Text)
		if err != nil {
			s.Console.Error(err)
			s.Logger.Warn("command could not be started", map[string]interface{}{
				"command": cmd.Text,
				"error":   err.Error(),
			})
			res.Failed = true
			res.ExitCode = -1
			if res.Command == "" {
				res.Command = cmd.Text
			}
			if res.Stderr == "" {
				res.Stderr = err.Error()
			}
		}
		s.Console.Result(res)
		s.record(sess, res)
		results = append(results, res)
	}
	return results, false
}

func (s *Service) record(sess *Session, res domain.ExecutionResult) {
	sess.Executed++
	s.SessionLog.Record(res)
	if s.History == nil {
		return
	}
	rec := domain.NewHistoryRecord(sess.ID, sess.Prompt, s.Provider.Name(), s.Provider.Model(), res)
	if err := s.History.Save(rec); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) terminate(sess *Session) {
	sess.State = StateTerminated
	s.SessionLog.Close()
	s.Logger.Info("session ended", map[string]interface{}{
		"session":  sess.ID,
		"executed": sess.Executed,
		"turns":    sess.Transcript.Len(),
		"replies":  sess.Transcript.CountRole(domain.RoleAssistant),
	})
}
