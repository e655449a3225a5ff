package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/ports"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

type openAIProvider struct {
	model       string
	apiKey      string
	baseURL     string
	temperature float64
	httpClient  *http.Client
}

func newOpenAIProvider(cfg domain.Config, apiKey string, client *http.Client) *openAIProvider {
	base := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if base == "" {
		base = defaultOpenAIBaseURL
	}
	return &openAIProvider{
		model:       cfg.Model,
		apiKey:      apiKey,
		baseURL:     base,
		temperature: cfg.SamplingTemperature(),
		httpClient:  client,
	}
}

func (p *openAIProvider) Name() string {
	return string(domain.ProviderOpenAI)
}

func (p *openAIProvider) Model() string {
	return p.model
}

func (p *openAIProvider) Send(ctx context.Context, turns []domain.Turn) (string, error) {
	payload := chatCompletionRequest{
		Model:       p.model,
		Messages:    toChatMessages(turns),
		Temperature: p.temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", p.fail(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", p.fail(err)
	}
	httpReq.Header.Set("authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", p.fail(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", p.fail(err)
	}

	var decoded chatCompletionResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode >= 400 {
		if decodeErr == nil && decoded.Error != nil && decoded.Error.Message != "" {
			return "", p.fail(fmt.Errorf("%s: %s", resp.Status, decoded.Error.Message))
		}
		return "", p.fail(errors.New(resp.Status))
	}
	if decodeErr != nil {
		return "", p.fail(fmt.Errorf("decode response: %w", decodeErr))
	}

	content := decoded.FirstMessage()
	if content == "" {
		return "", p.fail(errors.New("empty response"))
	}
	return content, nil
}

func (p *openAIProvider) fail(err error) error {
	return &domain.ProviderError{Provider: p.Name(), Err: err}
}

func toChatMessages(turns []domain.Turn) []chatMessage {
	messages := make([]chatMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, chatMessage{Role: string(turn.Role), Content: turn.Text})
	}
	return messages
}

var _ ports.Provider = (*openAIProvider)(nil)
