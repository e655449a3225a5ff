package cli

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the console and the confirmer.
type Styles struct {
	Assistant lipgloss.Style
	Heading   lipgloss.Style
	Command   lipgloss.Style
	Index     lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
}

// DefaultStyles returns the colored theme.
func DefaultStyles() Styles {
	return Styles{
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FD7FF")),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD75F")),
		Command:   lipgloss.NewStyle().Foreground(lipgloss.Color("#87D7FF")),
		Index:     lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00")),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")),
	}
}

// PlainStyles renders everything unstyled.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Assistant: plain,
		Heading:   plain,
		Command:   plain,
		Index:     plain,
		Muted:     plain,
		Success:   plain,
		Warning:   plain,
		Error:     plain,
		Info:      plain,
	}
}
