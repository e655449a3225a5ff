package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// LogFilePermissions is the permission for session log files (rw-r--r--)
	LogFilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Config defaults
const (
	DefaultProvider     = ProviderGemini
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultOpenAIModel  = "gpt-4o-mini"
	DefaultLogDir       = "logs"
	DefaultTemperature  = 0.7
	DefaultConfigFile   = "config.json"
	AlternateConfigFile = "config.yaml"
)

// Timeout and duration constants
const (
	// DefaultRequestTimeoutSeconds bounds a single model call
	DefaultRequestTimeoutSeconds = 60
	// DefaultCommandTimeoutSeconds bounds a single command execution
	DefaultCommandTimeoutSeconds = 30
	// DefaultProbeTimeout is the timeout for short helper commands (git, uname)
	DefaultProbeTimeout = 2 * time.Second
)

// Limit constants
const (
	// DefaultMaxOutputBytes is the capture ceiling per output stream
	DefaultMaxOutputBytes = 16 * 1024
	// DefaultMaxSteps bounds auto-continue rounds for one user message
	DefaultMaxSteps = 10
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
	// MaxHistoryAnalysisRecords is the maximum number of records to analyze
	MaxHistoryAnalysisRecords = 1000
)

// File names under log_dir
const (
	SessionLogFile   = "session_log.txt"
	HistoryDBFile    = "history.db"
	HistoryJSONLFile = "history.jsonl"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
