package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/ports"
)

// Confirmer implements ports.Confirmer over a LineReader, asking once per
// command until the user answers run-all or abort.
type Confirmer struct {
	reader ports.LineReader
	out    io.Writer
	guard  ports.SecurityService
	styles Styles
}

// NewConfirmer builds a confirmer. guard may be nil.
func NewConfirmer(reader ports.LineReader, out io.Writer, guard ports.SecurityService, styles Styles) *Confirmer {
	return &Confirmer{reader: reader, out: out, guard: guard, styles: styles}
}

// Confirm implements ports.Confirmer. End of input aborts the rest of the
// batch. A run-all answer does not cover commands the guardrail wants
// confirmed individually.
func (c *Confirmer) Confirm(ctx context.Context, commands []domain.ProposedCommand) ([]domain.Decision, error) {
	decisions := make([]domain.Decision, len(commands))
	runAll := false

	for i, cmd := range commands {
		if ctx.Err() != nil {
			abortFrom(decisions, i)
			return decisions, nil
		}

		risk := c.assess(cmd.Text)
		if runAll && !risk.RequiresIndividualConfirm() {
			decisions[i] = domain.DecisionRunAll
			continue
		}
		if risk.Risky() {
			c.printRisk(cmd, risk)
		}

		decision, err := c.ask(cmd)
		if err != nil {
			return nil, err
		}
		if decision == domain.DecisionAbort {
			abortFrom(decisions, i)
			return decisions, nil
		}
		if decision == domain.DecisionRunAll {
			runAll = true
		}
		decisions[i] = decision
	}
	return decisions, nil
}

func (c *Confirmer) ask(cmd domain.ProposedCommand) (domain.Decision, error) {
	prompt := fmt.Sprintf("Run [%d] %s ? [y]es/[n]o/[a]ll/[q]uit: ", cmd.Index, cmd.Text)
	for {
		line, err := c.reader.ReadLine(prompt)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, ports.ErrInputAborted):
			return domain.DecisionAbort, nil
		case err != nil:
			return 0, fmt.Errorf("read confirmation: %w", err)
		}
		if decision, ok := ParseDecision(line); ok {
			return decision, nil
		}
		fmt.Fprintln(c.out, c.styles.Warning.Render("Please answer y, n, a or q."))
	}
}

func (c *Confirmer) assess(command string) domain.RiskAssessment {
	if c.guard == nil {
		return domain.RiskAssessment{Level: domain.RiskSafe, Action: domain.ActionAllow}
	}
	risk, err := c.guard.Evaluate(command)
	if err != nil {
		return domain.RiskAssessment{Level: domain.RiskSafe, Action: domain.ActionAllow}
	}
	return risk
}

func (c *Confirmer) printRisk(cmd domain.ProposedCommand, risk domain.RiskAssessment) {
	style := c.styles.Warning
	if risk.Action == domain.ActionBlock || risk.Level == domain.RiskCritical {
		style = c.styles.Error
	}
	fmt.Fprintln(c.out, style.Render(fmt.Sprintf("%s risk for [%d]:", strings.ToUpper(string(risk.Level)), cmd.Index)))
	for _, reason := range risk.Reasons {
		fmt.Fprintln(c.out, style.Render("  - "+reason))
	}
	if risk.RequiresIndividualConfirm() {
		fmt.Fprintln(c.out, style.Render("  this command is never covered by 'all'"))
	}
}

// ParseDecision maps a typed answer to a decision.
func ParseDecision(answer string) (domain.Decision, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return domain.DecisionRun, true
	case "n", "no":
		return domain.DecisionSkip, true
	case "a", "all":
		return domain.DecisionRunAll, true
	case "q", "quit", "abort":
		return domain.DecisionAbort, true
	default:
		return 0, false
	}
}

func abortFrom(decisions []domain.Decision, start int) {
	for i := start; i < len(decisions); i++ {
		decisions[i] = domain.DecisionAbort
	}
}

var _ ports.Confirmer = (*Confirmer)(nil)
