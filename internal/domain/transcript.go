package domain

// Role tags a transcript turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversation sent to the model.
type Turn struct {
	Role Role
	Text string
}

// Transcript is the ordered conversation history of one session.
// Turns are only ever appended.
type Transcript struct {
	turns []Turn
}

// NewTranscript starts a transcript, optionally seeded with a system prompt.
func NewTranscript(systemPrompt string) *Transcript {
	t := &Transcript{}
	if systemPrompt != "" {
		t.Append(RoleSystem, systemPrompt)
	}
	return t
}

// Append adds a turn at the end of the transcript.
func (t *Transcript) Append(role Role, text string) {
	t.turns = append(t.turns, Turn{Role: role, Text: text})
}

// Turns returns a copy of the turns in order.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// CountRole counts turns with the given role.
func (t *Transcript) CountRole(role Role) int {
	n := 0
	for _, turn := range t.turns {
		if turn.Role == role {
			n++
		}
	}
	return n
}
