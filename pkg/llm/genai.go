package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const (
	GenAIProvider     = "genai"
	DefaultGenAIModel = "gemini-2.0-flash"
)

// GenAIConfig selects the backend of the Google Gen AI SDK. With Vertex set the
// client authenticates with application default credentials against Project
// and Location, otherwise it uses APIKey against the Gemini API.
type GenAIConfig struct {
	APIKey   string
	Vertex   bool
	Project  string
	Location string
	Model    string
}

// GenAIGenerator calls Gemini models through google.golang.org/genai.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

func NewGenAIGenerator(ctx context.Context, cfg GenAIConfig) (*GenAIGenerator, error) {
	cc := &genai.ClientConfig{Backend: genai.BackendGeminiAPI, APIKey: cfg.APIKey}
	if cfg.Vertex {
		if cfg.Project == "" {
			return nil, errors.New("genai: project is required for the vertex backend")
		}
		cc = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  cfg.Project,
			Location: cfg.Location,
		}
	} else if cfg.APIKey == "" {
		return nil, errors.New("genai: api key is required")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGenAIModel
	}

	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) Name() string { return GenAIProvider }

func (g *GenAIGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	opts = opts.withDefaults()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](opts.Temperature),
		MaxOutputTokens: int32(opts.MaxTokens),
	}
	if opts.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}
	if opts.JSONMode {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", classifyGenAIError(err)
	}

	return genAIText(resp)
}

// genAIText returns the first candidate's text unless the prompt or the
// candidate was blocked.
func genAIText(resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", newProviderError(GenAIProvider, KindContentFiltered, 0,
			fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason))
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", newProviderError(GenAIProvider, KindContentFiltered, 0, errors.New("content was blocked by safety filters"))
	}

	return resp.Text(), nil
}

func (g *GenAIGenerator) Ping(ctx context.Context) error { return ping(ctx, g) }

func classifyGenAIError(err error) *ProviderError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return newProviderError(GenAIProvider, KindFromStatus(apiErr.Code), apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return newProviderError(GenAIProvider, KindFromStatus(apiErrPtr.Code), apiErrPtr.Code, err)
	}
	return newProviderError(GenAIProvider, KindUnknown, 0, err)
}
