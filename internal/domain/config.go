package domain

// ProviderName enumerates the supported AI backends.
type ProviderName string

const (
	ProviderGemini ProviderName = "gemini"
	ProviderOpenAI ProviderName = "openai"
)

// API key names recognised in the api_keys mapping and the environment.
const (
	GeminiAPIKeyName = "GEMINI_API_KEY"
	OpenAIAPIKeyName = "OPENAI_API_KEY"
)

// Config mirrors config.json (or config.yaml). Loaded once, read-only afterwards.
// Pointer fields distinguish an explicit zero from an absent key.
type Config struct {
	APIProvider           ProviderName      `yaml:"api_provider" json:"api_provider"`
	Model                 string            `yaml:"model" json:"model"`
	LogDir                string            `yaml:"log_dir" json:"log_dir"`
	APIKeys               map[string]string `yaml:"api_keys,omitempty" json:"api_keys,omitempty"`
	Endpoint              string            `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	Temperature           *float64          `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	RequestTimeoutSeconds *int              `yaml:"request_timeout_seconds,omitempty" json:"request_timeout_seconds,omitempty"`
	CommandTimeoutSeconds *int              `yaml:"command_timeout_seconds,omitempty" json:"command_timeout_seconds,omitempty"`
	MaxOutputBytes        int               `yaml:"max_output_bytes" json:"max_output_bytes"`
	AutoContinue          *bool             `yaml:"auto_continue,omitempty" json:"auto_continue,omitempty"`
	MaxSteps              int               `yaml:"max_steps" json:"max_steps"`
	Shell                 string            `yaml:"shell,omitempty" json:"shell,omitempty"`
	History               *bool             `yaml:"history,omitempty" json:"history,omitempty"`
	GuardrailRules        string            `yaml:"guardrail_rules,omitempty" json:"guardrail_rules,omitempty"`
}
