package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	OpenAIProvider     = "openai"
	DefaultOpenAIModel = openai.GPT4oMini

	defaultSystemPrompt = "You are an expert travel planner. Always respond with valid JSON only, no markdown formatting or additional text."
)

// OpenAIGenerator calls the chat completions API through go-openai.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(apiKey, model string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("openai: api key is required")
	}
	return NewOpenAIGeneratorWithConfig(openai.DefaultConfig(apiKey), model), nil
}

// NewOpenAIGeneratorWithConfig allows pointing the client at a different base URL.
func NewOpenAIGeneratorWithConfig(cfg openai.ClientConfig, model string) *OpenAIGenerator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(cfg), model: model}
}

func (g *OpenAIGenerator) Name() string { return OpenAIProvider }

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	opts = opts.withDefaults()

	system := opts.SystemPrompt
	if system == "" {
		system = defaultSystemPrompt
	}

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	if opts.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", newProviderError(OpenAIProvider, KindUnknown, 0, errors.New("no choices in response"))
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", newProviderError(OpenAIProvider, KindContentFiltered, 0, errors.New("content was blocked by the provider filter"))
	}

	return choice.Message.Content, nil
}

func (g *OpenAIGenerator) Ping(ctx context.Context) error { return ping(ctx, g) }

func classifyOpenAIError(err error) *ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := fmt.Sprint(apiErr.Code)
		switch {
		case code == "insufficient_quota":
			return newProviderError(OpenAIProvider, KindQuotaExceeded, apiErr.HTTPStatusCode, err)
		case code == "context_length_exceeded":
			return newProviderError(OpenAIProvider, KindUnknown, apiErr.HTTPStatusCode,
				fmt.Errorf("request too long, try a shorter trip or fewer requirements: %w", err))
		}
		return newProviderError(OpenAIProvider, KindFromStatus(apiErr.HTTPStatusCode), apiErr.HTTPStatusCode, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return newProviderError(OpenAIProvider, KindFromStatus(reqErr.HTTPStatusCode), reqErr.HTTPStatusCode, err)
	}

	return newProviderError(OpenAIProvider, KindUnknown, 0, err)
}
