package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/infrastructure/history"
)

func TestWriteHistoryTable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []domain.HistoryRecord{
		{
			Timestamp:       now.Add(-2 * time.Hour),
			Prompt:          "list\nfiles",
			Command:         "ls -la",
			Model:           "gemini-2.5-flash",
			ExitCode:        0,
			ExecutionTimeMS: 12,
		},
		{
			Timestamp: now.Add(-time.Minute),
			Command:   "yes",
			Model:     "gpt-4o-mini",
			ExitCode:  141,
			Truncated: true,
		},
	}

	var out bytes.Buffer
	writeHistoryTable(&out, records, now)

	got := out.String()
	assert.Contains(t, got, "When")
	assert.Contains(t, got, "ls -la")
	assert.Contains(t, got, "list files")
	assert.Contains(t, got, "2 hours ago")
	assert.Contains(t, got, "12ms")
	assert.Contains(t, got, "141*")
}

func TestWriteHistoryTableEmpty(t *testing.T) {
	var out bytes.Buffer
	writeHistoryTable(&out, nil, time.Now())
	assert.Equal(t, MsgNoHistoryRecorded+"\n", out.String())
}

func TestDisplayHistoryStatistics(t *testing.T) {
	stats := history.Stats{
		Total:         1200,
		Succeeded:     900,
		Sessions:      3,
		Truncated:     2,
		TotalDuration: 1500 * time.Millisecond,
		Top:           []history.CommandCount{{Command: "ls", Count: 7}},
	}

	var out bytes.Buffer
	displayHistoryStatistics(&out, stats)

	got := out.String()
	assert.Contains(t, got, "Entries analyzed: 1,200\n")
	assert.Contains(t, got, "Success rate: 75.0%\n")
	assert.Contains(t, got, "Total run time: 1.5s\n")
	assert.Contains(t, got, "  ls (7)\n")
}

func TestDisplayDoctorReport(t *testing.T) {
	report := domain.HealthReport{Checks: []domain.HealthCheck{
		{Name: "Config file", Status: domain.HealthOK, Details: "config.json"},
		{Name: "API key", Status: domain.HealthError, Details: "GEMINI_API_KEY not set"},
	}}

	var out bytes.Buffer
	displayDoctorReport(&out, report)

	assert.Equal(t, "[OK   ] Config file - config.json\n[ERROR] API key - GEMINI_API_KEY not set\n", out.String())
}
