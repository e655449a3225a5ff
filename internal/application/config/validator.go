package config

import (
	"fmt"
	"strings"

	"github.com/doeshing/shellbuddy/internal/domain"
)

// Validate ensures config values are usable. Every failure is a *domain.ConfigError.
func Validate(cfg domain.Config) error {
	switch cfg.APIProvider {
	case domain.ProviderGemini, domain.ProviderOpenAI:
	default:
		return domain.NewConfigError("api_provider", "unknown provider %q, use gemini or openai", cfg.APIProvider)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return domain.NewConfigError("model", "must be set")
	}
	if strings.TrimSpace(cfg.LogDir) == "" {
		return domain.NewConfigError("log_dir", "must be set")
	}
	if t := cfg.SamplingTemperature(); t < 0 || t > 2 {
		return domain.NewConfigError("temperature", "must be within [0, 2], got %v", t)
	}
	if cfg.RequestTimeout() < 0 {
		return domain.NewConfigError("request_timeout_seconds", "must be >= 0")
	}
	if cfg.CommandTimeout() < 0 {
		return domain.NewConfigError("command_timeout_seconds", "must be >= 0")
	}
	if cfg.MaxOutputBytes <= 0 {
		return domain.NewConfigError("max_output_bytes", "must be > 0")
	}
	if cfg.MaxSteps <= 0 {
		return domain.NewConfigError("max_steps", "must be > 0")
	}
	for name := range cfg.APIKeys {
		if name != domain.GeminiAPIKeyName && name != domain.OpenAIAPIKeyName {
			return domain.NewConfigError("api_keys", "unrecognised key name %q", name)
		}
	}
	return nil
}

// RequireAPIKey fails when the selected provider has no key in env or file.
func RequireAPIKey(cfg domain.Config) (string, error) {
	key, ok := cfg.APIKey()
	if !ok {
		return "", &domain.ConfigError{
			Field: "api_keys",
			Err:   fmt.Errorf("%s not set in environment or config file", cfg.APIKeyName()),
		}
	}
	return key, nil
}
