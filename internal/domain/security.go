package domain

// RiskLevel enumerates guardrail outcomes.
type RiskLevel string

const (
	RiskSafe     RiskLevel = "safe"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// GuardrailAction describes how confirmation should treat a command.
// The guardrail is advisory: it never executes or blocks on its own, the
// user's decision is always required.
type GuardrailAction string

const (
	ActionAllow           GuardrailAction = "allow"
	ActionConfirm         GuardrailAction = "confirm"
	ActionExplicitConfirm GuardrailAction = "explicit_confirm"
	ActionBlock           GuardrailAction = "block"
)

// RiskAssessment aggregates security evaluation data.
type RiskAssessment struct {
	Level        RiskLevel
	Action       GuardrailAction
	Reasons      []string
	MatchedRules []string
}

// Risky reports whether the assessment should be shown to the user.
func (r RiskAssessment) Risky() bool {
	return r.Level != "" && r.Level != RiskSafe
}

// RequiresIndividualConfirm reports whether a run-all answer must not cover
// this command.
func (r RiskAssessment) RequiresIndividualConfirm() bool {
	return r.Action == ActionExplicitConfirm || r.Action == ActionBlock
}
