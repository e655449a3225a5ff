// Package ai adapts hosted chat models to ports.Provider.
package ai

import (
	"context"
	"net/http"
	"time"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/ports"
)

// Factory builds the provider named by the configuration.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a factory sharing one HTTP client. A nil client gets the default request timeout.
func NewFactory(client *http.Client) *Factory {
	if client == nil {
		client = &http.Client{Timeout: time.Duration(domain.DefaultRequestTimeoutSeconds) * time.Second}
	}
	return &Factory{httpClient: client}
}

// ForConfig implements ports.ProviderFactory.
func (f *Factory) ForConfig(cfg domain.Config) (ports.Provider, error) {
	httpClient := f.httpClient
	if timeout := cfg.RequestTimeout(); timeout != httpClient.Timeout {
		clone := *httpClient
		clone.Timeout = timeout
		httpClient = &clone
	}

	switch cfg.APIProvider {
	case domain.ProviderOpenAI, domain.ProviderGemini:
	default:
		return nil, domain.NewConfigError("api_provider", "unsupported provider %q (use gemini or openai)", cfg.APIProvider)
	}

	apiKey, ok := cfg.APIKey()
	if !ok {
		return nil, domain.NewConfigError("api_keys", "%s is not set; add it to api_keys or export it", cfg.APIKeyName())
	}

	if cfg.APIProvider == domain.ProviderOpenAI {
		return newOpenAIProvider(cfg, apiKey, httpClient), nil
	}
	return newGeminiProvider(context.Background(), cfg, apiKey, httpClient)
}

var _ ports.ProviderFactory = (*Factory)(nil)
