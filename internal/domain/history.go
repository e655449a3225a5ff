package domain

import "time"

// HistoryRecord captures metadata of one executed command.
type HistoryRecord struct {
	Timestamp       time.Time `json:"timestamp"`
	SessionID       string    `json:"session_id"`
	Prompt          string    `json:"prompt"`
	Command         string    `json:"command"`
	WorkDir         string    `json:"work_dir"`
	Provider        string    `json:"provider"`
	Model           string    `json:"model"`
	Success         bool      `json:"success"`
	ExitCode        int       `json:"exit_code"`
	Truncated       bool      `json:"truncated"`
	ExecutionTimeMS int64     `json:"execution_time_ms"`
}

// NewHistoryRecord builds a record from an execution result.
func NewHistoryRecord(sessionID, prompt, provider, model string, res ExecutionResult) HistoryRecord {
	return HistoryRecord{
		Timestamp:       res.StartedAt,
		SessionID:       sessionID,
		Prompt:          prompt,
		Command:         res.Command,
		WorkDir:         res.WorkDir,
		Provider:        provider,
		Model:           model,
		Success:         res.Succeeded(),
		ExitCode:        res.ExitCode,
		Truncated:       res.StdoutTruncated || res.StderrTruncated,
		ExecutionTimeMS: res.Duration().Milliseconds(),
	}
}
