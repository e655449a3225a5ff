package commands

import "github.com/doeshing/shellbuddy/internal/app"

// ContainerFunc returns the container built by the root command before any
// subcommand runs.
type ContainerFunc func() *app.Container

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrQueryRequired            = "--query required"
)

// Success messages
const (
	MsgConfigurationValid = "Configuration valid"
	MsgNoHistoryRecorded  = "No history recorded yet."
	MsgHistoryCleared     = "History cleared."
)
