package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/shellbuddy/internal/domain"
)

func commandTexts(cmds []domain.ProposedCommand) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Text)
	}
	return out
}

func TestExtractCommands(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		want        []string
		explanation string
	}{
		{
			name:        "single command",
			reply:       "Let me list the files.\n```bash\nls -la\n```",
			want:        []string{"ls -la"},
			explanation: "Let me list the files.",
		},
		{
			name:        "no fence",
			reply:       "Your system looks fine. Nothing to run.",
			want:        nil,
			explanation: "Your system looks fine. Nothing to run.",
		},
		{
			name:        "lines are trimmed and blanks dropped",
			reply:       "Update:\n```bash\n  sudo apt update  \n\n\tsudo apt upgrade -y\n```\n",
			want:        []string{"sudo apt update", "sudo apt upgrade -y"},
			explanation: "Update:",
		},
		{
			name:        "multiple blocks in order",
			reply:       "First:\n```bash\nuname -a\n```\nThen:\n```sh\ndf -h\nfree -m\n```\nDone.",
			want:        []string{"uname -a", "df -h", "free -m"},
			explanation: "First:\nThen:\nDone.",
		},
		{
			name:        "empty block",
			reply:       "All done.\n```bash\n```",
			want:        nil,
			explanation: "All done.",
		},
		{
			name:        "unterminated block yields nothing",
			reply:       "Try:\n```bash\nrm -rf build",
			want:        nil,
			explanation: "Try:\n```bash\nrm -rf build",
		},
		{
			name:        "nested start restarts the region",
			reply:       "x\n```bash\necho outer\n```bash\necho inner\n```",
			want:        []string{"echo inner"},
			explanation: "x\n```bash\necho outer",
		},
		{
			name:        "foreign fence inside a shell block discards it",
			reply:       "Try:\n```bash\necho hi\n```python\nprint(1)\n```\n",
			want:        nil,
			explanation: "Try:\n```bash\necho hi\n```python\nprint(1)\n```",
		},
		{
			name:        "shell block after a discarded one still counts",
			reply:       "```sh\nls\n```diff\n-a\n```\n```bash\npwd\n```",
			want:        []string{"pwd"},
			explanation: "```sh\nls\n```diff\n-a\n```",
		},
		{
			name:        "other languages are ignored",
			reply:       "Script:\n```python\nprint('hi')\n```\n```console\nwhoami\n```",
			want:        []string{"whoami"},
			explanation: "Script:\n```python\nprint('hi')\n```",
		},
		{
			name:        "case insensitive tag and indented fences",
			reply:       "  ```BASH\n  id\n  ```",
			want:        []string{"id"},
			explanation: "",
		},
		{
			name:        "crlf line endings",
			reply:       "Hi\r\n```bash\r\npwd\r\n```\r\n",
			want:        []string{"pwd"},
			explanation: "Hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCommands(tt.reply)
			if tt.want == nil {
				assert.Empty(t, got.Commands)
			} else {
				assert.Equal(t, tt.want, commandTexts(got.Commands))
			}
			assert.Equal(t, tt.explanation, got.Explanation)
		})
	}
}

func TestExtractCommandsIndicesAreSequential(t *testing.T) {
	got := ExtractCommands("```bash\na\nb\n```\ntext\n```zsh\nc\n```")
	require.Len(t, got.Commands, 3)
	for i, c := range got.Commands {
		assert.Equal(t, i+1, c.Index)
	}
}

func TestExtractCommandsBareFenceIsNotShell(t *testing.T) {
	got := ExtractCommands("```\nls\n```")
	assert.Empty(t, got.Commands)
}
