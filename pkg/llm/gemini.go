package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	GeminiProvider     = "gemini"
	DefaultGeminiModel = "gemini-1.5-flash"
)

// GeminiGenerator calls Gemini through github.com/google/generative-ai-go.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Name() string { return GeminiProvider }

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	opts = opts.withDefaults()

	m := g.client.GenerativeModel(g.model)
	m.SetTemperature(opts.Temperature)
	m.SetMaxOutputTokens(int32(opts.MaxTokens))
	m.SetTopP(0.9)
	if opts.SystemPrompt != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(opts.SystemPrompt)}}
	}
	if opts.JSONMode {
		m.ResponseMIMEType = "application/json"
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", newProviderError(GeminiProvider, KindUnknown, 0, errors.New("no candidates in response"))
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", newProviderError(GeminiProvider, KindContentFiltered, 0, errors.New("content was blocked by safety filters"))
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}

func (g *GeminiGenerator) Ping(ctx context.Context) error { return ping(ctx, g) }

func (g *GeminiGenerator) Close() error { return g.client.Close() }

func classifyGeminiError(err error) *ProviderError {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return newProviderError(GeminiProvider, KindContentFiltered, 0, err)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		kind := KindFromStatus(gerr.Code)
		if kind == KindUnknown && strings.Contains(strings.ToLower(gerr.Message), "quota") {
			kind = KindRateLimited
		}
		return newProviderError(GeminiProvider, kind, gerr.Code, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota"), strings.Contains(msg, "resource_exhausted"):
		return newProviderError(GeminiProvider, KindRateLimited, 0, err)
	case strings.Contains(msg, "safety"), strings.Contains(msg, "blocked"):
		return newProviderError(GeminiProvider, KindContentFiltered, 0, err)
	case strings.Contains(msg, "api key"), strings.Contains(msg, "permission_denied"):
		return newProviderError(GeminiProvider, KindUnauthorized, 0, err)
	case strings.Contains(msg, "unavailable"):
		return newProviderError(GeminiProvider, KindServiceUnavailable, 0, err)
	}

	return newProviderError(GeminiProvider, KindUnknown, 0, err)
}
