package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/ports"
)

type geminiProvider struct {
	model       string
	temperature float32
	client      *genai.Client
}

func newGeminiProvider(ctx context.Context, cfg domain.Config, apiKey string, httpClient *http.Client) (*geminiProvider, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if base := strings.TrimSpace(cfg.Endpoint); base != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, &domain.ProviderError{Provider: string(domain.ProviderGemini), Err: err}
	}
	return &geminiProvider{
		model:       cfg.Model,
		temperature: float32(cfg.SamplingTemperature()),
		client:      client,
	}, nil
}

func (p *geminiProvider) Name() string {
	return string(domain.ProviderGemini)
}

func (p *geminiProvider) Model() string {
	return p.model
}

func (p *geminiProvider) Send(ctx context.Context, turns []domain.Turn) (string, error) {
	system, contents := toGeminiContents(turns)
	if len(contents) == 0 {
		return "", p.fail(errors.New("transcript has no user turn"))
	}

	temperature := p.temperature
	config := &genai.GenerateContentConfig{Temperature: &temperature}
	if system != nil {
		config.SystemInstruction = system
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", p.fail(err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", p.fail(errors.New("empty response"))
	}
	return text, nil
}

func (p *geminiProvider) fail(err error) error {
	return &domain.ProviderError{Provider: p.Name(), Err: err}
}

// toGeminiContents moves system turns into the system instruction and maps the
// assistant role onto "model". Consecutive turns of the same role are merged
// into one content with several parts.
func toGeminiContents(turns []domain.Turn) (*genai.Content, []*genai.Content) {
	var systemParts []*genai.Part
	var contents []*genai.Content

	for _, turn := range turns {
		if turn.Role == domain.RoleSystem {
			systemParts = append(systemParts, genai.NewPartFromText(turn.Text))
			continue
		}
		role := genai.RoleUser
		if turn.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		if n := len(contents); n > 0 && contents[n-1].Role == string(role) {
			contents[n-1].Parts = append(contents[n-1].Parts, genai.NewPartFromText(turn.Text))
			continue
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, genai.Role(role)))
	}

	var system *genai.Content
	if len(systemParts) > 0 {
		system = &genai.Content{Parts: systemParts}
	}
	return system, contents
}

var _ ports.Provider = (*geminiProvider)(nil)
