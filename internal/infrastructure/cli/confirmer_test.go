package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/shellbuddy/internal/domain"
)

type stubGuard map[string]domain.RiskAssessment

func (g stubGuard) Evaluate(command string) (domain.RiskAssessment, error) {
	if risk, ok := g[command]; ok {
		return risk, nil
	}
	return domain.RiskAssessment{Level: domain.RiskSafe, Action: domain.ActionAllow}, nil
}

type failingGuard struct{}

func (failingGuard) Evaluate(string) (domain.RiskAssessment, error) {
	return domain.RiskAssessment{}, errors.New("broken")
}

func batch(texts ...string) []domain.ProposedCommand {
	cmds := make([]domain.ProposedCommand, len(texts))
	for i, text := range texts {
		cmds[i] = domain.ProposedCommand{Index: i + 1, Text: text}
	}
	return cmds
}

func newTestConfirmer(input string, guard stubGuard) (*Confirmer, *bytes.Buffer) {
	var out bytes.Buffer
	reader := NewPlainReader(strings.NewReader(input), &out)
	if guard == nil {
		return NewConfirmer(reader, &out, nil, PlainStyles()), &out
	}
	return NewConfirmer(reader, &out, guard, PlainStyles()), &out
}

func TestConfirmerDecisions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []domain.Decision
	}{
		{
			name:  "yes and no",
			input: "y\nn\nyes\n",
			want:  []domain.Decision{domain.DecisionRun, domain.DecisionSkip, domain.DecisionRun},
		},
		{
			name:  "all covers the rest",
			input: "n\na\n",
			want:  []domain.Decision{domain.DecisionSkip, domain.DecisionRunAll, domain.DecisionRunAll},
		},
		{
			name:  "quit aborts the rest",
			input: "y\nq\n",
			want:  []domain.Decision{domain.DecisionRun, domain.DecisionAbort, domain.DecisionAbort},
		},
		{
			name:  "end of input aborts",
			input: "y\n",
			want:  []domain.Decision{domain.DecisionRun, domain.DecisionAbort, domain.DecisionAbort},
		},
		{
			name:  "invalid answers re-prompt",
			input: "maybe\n\nY\nNO\nabort\n",
			want:  []domain.Decision{domain.DecisionRun, domain.DecisionSkip, domain.DecisionAbort},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestConfirmer(tt.input, nil)
			got, err := c.Confirm(context.Background(), batch("ls", "pwd", "whoami"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmerPromptShowsIndexAndText(t *testing.T) {
	c, out := newTestConfirmer("maybe\ny\n", nil)
	_, err := c.Confirm(context.Background(), batch("ls -la"))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Run [1] ls -la ? [y]es/[n]o/[a]ll/[q]uit: ")
	assert.Contains(t, out.String(), "Please answer y, n, a or q.")
}

func TestConfirmerRunAllStopsAtExplicitConfirm(t *testing.T) {
	guard := stubGuard{
		"rm -rf *": {
			Level:   domain.RiskCritical,
			Action:  domain.ActionExplicitConfirm,
			Reasons: []string{"Recursive delete everything"},
		},
	}
	c, out := newTestConfirmer("a\nn\n", guard)

	got, err := c.Confirm(context.Background(), batch("ls", "rm -rf *", "pwd"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Decision{domain.DecisionRunAll, domain.DecisionSkip, domain.DecisionRunAll}, got)
	assert.Contains(t, out.String(), "CRITICAL risk for [2]:")
	assert.Contains(t, out.String(), "  - Recursive delete everything")
	assert.Contains(t, out.String(), "never covered by 'all'")
}

func TestConfirmerGuardErrorTreatedAsSafe(t *testing.T) {
	var out bytes.Buffer
	c := NewConfirmer(NewPlainReader(strings.NewReader("y\n"), &out), &out, failingGuard{}, PlainStyles())

	got, err := c.Confirm(context.Background(), batch("ls"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Decision{domain.DecisionRun}, got)
	assert.NotContains(t, out.String(), "risk for")
}

func TestConfirmerCancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := newTestConfirmer("y\ny\n", nil)

	got, err := c.Confirm(ctx, batch("ls", "pwd"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Decision{domain.DecisionAbort, domain.DecisionAbort}, got)
}

func TestParseDecision(t *testing.T) {
	tests := map[string]domain.Decision{
		"y":     domain.DecisionRun,
		" Yes ": domain.DecisionRun,
		"n":     domain.DecisionSkip,
		"no":    domain.DecisionSkip,
		"a":     domain.DecisionRunAll,
		"ALL":   domain.DecisionRunAll,
		"q":     domain.DecisionAbort,
		"quit":  domain.DecisionAbort,
		"abort": domain.DecisionAbort,
	}
	for answer, want := range tests {
		got, ok := ParseDecision(answer)
		assert.True(t, ok, answer)
		assert.Equal(t, want, got, answer)
	}

	_, ok := ParseDecision("sure")
	assert.False(t, ok)
}
