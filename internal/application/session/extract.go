package session

import (
	"strings"

	"github.com/doeshing/shellbuddy/internal/domain"
)

const fence = "```"

var shellLanguages = map[string]struct{}{
	"bash":    {},
	"sh":      {},
	"shell":   {},
	"zsh":     {},
	"console": {},
}

// Extraction is a model reply split into prose and runnable commands.
type Extraction struct {
	Explanation string
	Commands    []domain.ProposedCommand
}

// ExtractCommands pulls the lines of every terminated shell fence out of reply.
// An unterminated fence yields no commands, and any fence opened inside a
// shell fence discards the shell region. Never fails: malformed input simply
// produces fewer commands.
func ExtractCommands(reply string) Extraction {
	lines := strings.Split(strings.ReplaceAll(reply, "\r\n", "\n"), "\n")

	var (
		prose    []string
		region   []string
		body     []string
		open     bool
		commands []domain.ProposedCommand
	)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case isShellFence(trimmed):
			if open {
				prose = append(prose, region...)
			}
			open = true
			region = []string{line}
			body = body[:0]
		case open && trimmed == fence:
			for _, cmd := range body {
				commands = append(commands, domain.ProposedCommand{Index: len(commands) + 1, Text: cmd})
			}
			open = false
			region = nil
		case open && strings.HasPrefix(trimmed, fence):
			// Any other fence opener inside a shell block leaves it ambiguous.
			prose = append(prose, region...)
			prose = append(prose, line)
			open = false
			region = nil
		case open:
			region = append(region, line)
			if trimmed != "" {
				body = append(body, trimmed)
			}
		default:
			prose = append(prose, line)
		}
	}
	if open {
		prose = append(prose, region...)
	}

	return Extraction{
		Explanation: strings.TrimSpace(strings.Join(prose, "\n")),
		Commands:    commands,
	}
}

func isShellFence(trimmed string) bool {
	if !strings.HasPrefix(trimmed, fence) {
		return false
	}
	fields := strings.Fields(trimmed[len(fence):])
	if len(fields) == 0 {
		return false
	}
	_, ok := shellLanguages[strings.ToLower(fields[0])]
	return ok
}
