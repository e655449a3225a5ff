package app

import (
	"testing"

	"github.com/doeshing/shellbuddy/internal/domain"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name         string
		cfg          domain.Config
		provider     string
		model        string
		wantProvider domain.ProviderName
		wantModel    string
	}{
		{
			name:         "no overrides",
			cfg:          domain.Config{APIProvider: domain.ProviderGemini, Model: "gemini-2.0-pro"},
			wantProvider: domain.ProviderGemini,
			wantModel:    "gemini-2.0-pro",
		},
		{
			name:         "provider switch moves default model",
			cfg:          domain.Config{APIProvider: domain.ProviderGemini, Model: domain.DefaultGeminiModel},
			provider:     "OpenAI",
			wantProvider: domain.ProviderOpenAI,
			wantModel:    domain.DefaultOpenAIModel,
		},
		{
			name:         "provider switch keeps explicit model",
			cfg:          domain.Config{APIProvider: domain.ProviderGemini, Model: "custom"},
			provider:     "openai",
			wantProvider: domain.ProviderOpenAI,
			wantModel:    "custom",
		},
		{
			name:         "model flag wins",
			cfg:          domain.Config{APIProvider: domain.ProviderGemini, Model: domain.DefaultGeminiModel},
			provider:     "openai",
			model:        "gpt-4.1",
			wantProvider: domain.ProviderOpenAI,
			wantModel:    "gpt-4.1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyOverrides(tt.cfg, tt.provider, tt.model)
			if got.APIProvider != tt.wantProvider {
				t.Errorf("provider = %q, want %q", got.APIProvider, tt.wantProvider)
			}
			if got.Model != tt.wantModel {
				t.Errorf("model = %q, want %q", got.Model, tt.wantModel)
			}
		})
	}
}
