package ai

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/doeshing/shellbuddy/internal/domain"
)

var systemPromptTemplate = template.Must(template.New("system").Parse(strings.TrimSpace(`
You are ShellBuddy, an expert Linux assistant working inside the user's terminal.
Guide the user step by step, the way an experienced shell operator would.

How the conversation works:
1. The user describes a task or a problem.
2. You reply with a short explanation in Markdown, then propose the next command(s) in a fenced ` + "```bash" + ` block.
3. The approved commands are executed and their output is sent back to you as a message starting with {{.ToolPrefix}}
4. You read that output, explain what it means and propose the next step.
5. When the task is solved or nothing is left to run, give a final summary and an empty ` + "```bash" + ` block.
6. If the user writes a chat message instead, answer it.

Rules:
- Every reply is an explanation followed by a ` + "```bash" + ` block.
- One logical action per reply. Put each command on its own line.
- Use sudo where it is required.
- cd is supported and changes the working directory for later commands.
- Never use interactive programs (sudo -i, nano, vim, less, top) or anything that waits for input.

Environment:
- Distribution: {{.Distro}}
- OS: {{.OS}}
{{- if .Shell}}
- Shell: {{.Shell}}
{{- end}}
{{- if .WorkingDir}}
- Working directory: {{.WorkingDir}}
{{- end}}
{{- if .User}}
- User: {{.User}}
{{- end}}
{{- if .Tools}}
- Available tools: {{.Tools}}
{{- end}}
`)))

type promptData struct {
	domain.Environment
	ToolPrefix string
	Tools      string
}

// SystemPrompt renders the instructions that open every transcript.
func SystemPrompt(env domain.Environment) (string, error) {
	if env.Distro == "" {
		env.Distro = "unknown"
	}
	data := promptData{
		Environment: env,
		ToolPrefix:  domain.ToolOutputPrefix,
		Tools:       strings.Join(env.AvailableTools, ", "),
	}
	var buf bytes.Buffer
	if err := systemPromptTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
