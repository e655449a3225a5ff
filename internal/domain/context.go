package domain

// Environment describes the machine the commands will run on.
// It is rendered into the system prompt.
type Environment struct {
	Distro         string
	OS             string
	Shell          string
	WorkingDir     string
	User           string
	AvailableTools []string
}
