package domain

import (
	"os"
	"strings"
	"time"
)

// Rich domain model: helpers that interpret Config live next to the entity.

// APIKeyName returns the api_keys/environment name used by the selected provider.
func (c Config) APIKeyName() string {
	switch c.APIProvider {
	case ProviderOpenAI:
		return OpenAIAPIKeyName
	case ProviderGemini:
		return GeminiAPIKeyName
	default:
		return ""
	}
}

// APIKey resolves the key for the selected provider.
// The environment variable takes precedence over the config file value.
func (c Config) APIKey() (string, bool) {
	name := c.APIKeyName()
	if name == "" {
		return "", false
	}
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value, true
	}
	if value := strings.TrimSpace(c.APIKeys[name]); value != "" {
		return value, true
	}
	return "", false
}

// AutoContinueEnabled reports whether the model is re-queried after each batch.
func (c Config) AutoContinueEnabled() bool {
	if c.AutoContinue == nil {
		return true
	}
	return *c.AutoContinue
}

// HistoryEnabled reports whether executed commands are kept in the history store.
func (c Config) HistoryEnabled() bool {
	if c.History == nil {
		return true
	}
	return *c.History
}

// SamplingTemperature returns the configured temperature, or the default when unset.
func (c Config) SamplingTemperature() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// RequestTimeout bounds a single provider call. An explicit zero means no bound.
func (c Config) RequestTimeout() time.Duration {
	return secondsOrDefault(c.RequestTimeoutSeconds, DefaultRequestTimeoutSeconds)
}

// CommandTimeout bounds a single command execution. An explicit zero means no bound.
func (c Config) CommandTimeout() time.Duration {
	return secondsOrDefault(c.CommandTimeoutSeconds, DefaultCommandTimeoutSeconds)
}

func secondsOrDefault(value *int, fallback int) time.Duration {
	if value == nil {
		return time.Duration(fallback) * time.Second
	}
	return time.Duration(*value) * time.Second
}

// Ptr returns a pointer to v, for the optional Config fields.
func Ptr[T any](v T) *T {
	return &v
}

// Redacted returns a copy with API key values masked, safe to print.
func (c Config) Redacted() Config {
	out := c
	if len(c.APIKeys) == 0 {
		return out
	}
	out.APIKeys = make(map[string]string, len(c.APIKeys))
	for name, value := range c.APIKeys {
		out.APIKeys[name] = MaskSecret(value)
	}
	return out
}

// MaskSecret keeps the last four characters of a secret.
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
