package app

import (
	"context"
	"strings"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/ports"
)

// overrideProvider applies --provider and --model on top of the file config.
type overrideProvider struct {
	base     ports.ConfigProvider
	provider string
	model    string
}

func (o *overrideProvider) Load(ctx context.Context) (domain.Config, error) {
	cfg, err := o.base.Load(ctx)
	if err != nil {
		return cfg, err
	}
	return applyOverrides(cfg, o.provider, o.model), nil
}

func applyOverrides(cfg domain.Config, provider, model string) domain.Config {
	if p := domain.ProviderName(strings.ToLower(strings.TrimSpace(provider))); p != "" && p != cfg.APIProvider {
		// A model that was only the old provider's default follows the switch.
		if cfg.Model == defaultModel(cfg.APIProvider) {
			cfg.Model = defaultModel(p)
		}
		cfg.APIProvider = p
	}
	if m := strings.TrimSpace(model); m != "" {
		cfg.Model = m
	}
	return cfg
}

func defaultModel(p domain.ProviderName) string {
	switch p {
	case domain.ProviderOpenAI:
		return domain.DefaultOpenAIModel
	case domain.ProviderGemini:
		return domain.DefaultGeminiModel
	default:
		return ""
	}
}

var _ ports.ConfigProvider = (*overrideProvider)(nil)
