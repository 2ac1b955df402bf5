package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	CohereProvider       = "cohere"
	DefaultCohereModel   = "command-r"
	DefaultCohereBaseURL = "https://api.cohere.ai"
)

// CohereGenerator talks to the Cohere chat endpoint over plain HTTP.
type CohereGenerator struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	Model   string
}

func NewCohereGenerator(apiKey, model string) (*CohereGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("cohere: api key is required")
	}
	if model == "" {
		model = DefaultCohereModel
	}
	return &CohereGenerator{
		HTTP:    &http.Client{Timeout: 90 * time.Second},
		APIKey:  apiKey,
		BaseURL: DefaultCohereBaseURL,
		Model:   model,
	}, nil
}

type cohereChatRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Preamble    string  `json:"preamble,omitempty"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type cohereChatResponse struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason"`
}

type cohereErrorResponse struct {
	Message string `json:"message"`
}

func (g *CohereGenerator) Name() string { return CohereProvider }

func (g *CohereGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	opts = opts.withDefaults()

	body, err := json.Marshal(cohereChatRequest{
		Model:       g.Model,
		Message:     prompt,
		Preamble:    opts.SystemPrompt,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", newProviderError(CohereProvider, KindUnknown, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(g.BaseURL, "/")+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return "", newProviderError(CohereProvider, KindUnknown, 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return "", newProviderError(CohereProvider, KindServiceUnavailable, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newProviderError(CohereProvider, KindServiceUnavailable, resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		var e cohereErrorResponse
		_ = json.Unmarshal(raw, &e)
		if e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return "", newProviderError(CohereProvider, KindFromStatus(resp.StatusCode), resp.StatusCode, errors.New(e.Message))
	}

	var out cohereChatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", newProviderError(CohereProvider, KindUnknown, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}

	if out.FinishReason == "ERROR_TOXIC" {
		return "", newProviderError(CohereProvider, KindContentFiltered, resp.StatusCode, errors.New("content was blocked by the provider filter"))
	}

	return out.Text, nil
}

func (g *CohereGenerator) Ping(ctx context.Context) error { return ping(ctx, g) }
