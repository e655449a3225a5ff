package history

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/ports"
)

func sampleRecords() []domain.HistoryRecord {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []domain.HistoryRecord{
		{Timestamp: base, SessionID: "s1", Prompt: "disk usage", Command: "df -h", Success: true, ExecutionTimeMS: 20},
		{Timestamp: base.Add(time.Minute), SessionID: "s1", Prompt: "disk usage", Command: "du -sh .", Success: true, ExecutionTimeMS: 300},
		{Timestamp: base.Add(2 * time.Minute), SessionID: "s2", Prompt: "logs", Command: "journalctl -n 5", ExitCode: 1, Truncated: true, ExecutionTimeMS: 80},
	}
}

func storesUnderTest(t *testing.T) map[string]ports.HistoryRepository {
	dir := t.TempDir()
	sqlite, err := NewSQLiteStore(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]ports.HistoryRepository{
		"sqlite": sqlite,
		"jsonl":  NewFileStore(filepath.Join(dir, "nested", "history.jsonl")),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			for _, rec := range sampleRecords() {
				require.NoError(t, store.Save(rec))
			}

			all, err := store.Records(0, "")
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "journalctl -n 5", all[0].Command, "newest first")
			assert.True(t, all[0].Truncated)
			assert.Equal(t, 1, all[0].ExitCode)
			assert.Equal(t, "s2", all[0].SessionID)

			limited, err := store.Records(1, "")
			require.NoError(t, err)
			assert.Len(t, limited, 1)

			found, err := store.Records(0, "disk")
			require.NoError(t, err)
			assert.Len(t, found, 2)

			dest := filepath.Join(t.TempDir(), "export.jsonl")
			require.NoError(t, store.ExportJSON(dest))
			assert.Equal(t, 3, countLines(t, dest))

			require.NoError(t, store.Clear())
			empty, err := store.Records(0, "")
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestOpenFallsBackToFileStore(t *testing.T) {
	dir := t.TempDir()
	// A directory where the database file should be makes sqlite fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, domain.HistoryDBFile), 0o755))

	store := Open(dir)
	_, ok := store.(*FileStore)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, domain.HistoryJSONLFile), store.Path())
}

func TestFileStoreSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"command\":\"ls\"}\nnot json\n"), 0o644))

	records, err := NewFileStore(path).Records(0, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ls", records[0].Command)
}

func TestSummarize(t *testing.T) {
	records := append(sampleRecords(), domain.HistoryRecord{SessionID: "s2", Command: "df -h", Success: true})
	stats := Summarize(records, 1)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Succeeded)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Truncated)
	assert.Equal(t, 2, stats.Sessions)
	assert.Equal(t, 400*time.Millisecond, stats.TotalDuration)
	assert.InDelta(t, 0.75, stats.SuccessRate(), 1e-9)
	require.Len(t, stats.Top, 1)
	assert.Equal(t, CommandCount{Command: "df -h", Count: 2}, stats.Top[0])
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
	}
	return n
}
