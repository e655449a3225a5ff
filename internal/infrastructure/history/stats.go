package history

import (
	"sort"
	"time"

	"github.com/doeshing/shellbuddy/internal/domain"
)

// CommandCount pairs a command with how often it ran.
type CommandCount struct {
	Command string
	Count   int
}

// Stats summarises a set of history records.
type Stats struct {
	Total         int
	Succeeded     int
	Failed        int
	Truncated     int
	Sessions      int
	TotalDuration time.Duration
	Top           []CommandCount
}

// SuccessRate returns the share of successful commands in [0,1].
func (s Stats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Total)
}

// Summarize aggregates records and keeps the top most frequent commands.
func Summarize(records []domain.HistoryRecord, top int) Stats {
	stats := Stats{Total: len(records)}
	sessions := map[string]struct{}{}
	counts := map[string]int{}

	for _, rec := range records {
		if rec.Success {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
		if rec.Truncated {
			stats.Truncated++
		}
		if rec.SessionID != "" {
			sessions[rec.SessionID] = struct{}{}
		}
		stats.TotalDuration += time.Duration(rec.ExecutionTimeMS) * time.Millisecond
		counts[rec.Command]++
	}
	stats.Sessions = len(sessions)

	for cmd, n := range counts {
		stats.Top = append(stats.Top, CommandCount{Command: cmd, Count: n})
	}
	sort.Slice(stats.Top, func(i, j int) bool {
		if stats.Top[i].Count != stats.Top[j].Count {
			return stats.Top[i].Count > stats.Top[j].Count
		}
		return stats.Top[i].Command < stats.Top[j].Command
	})
	if top >= 0 && len(stats.Top) > top {
		stats.Top = stats.Top[:top]
	}
	return stats
}
