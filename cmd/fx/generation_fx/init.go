package generation_fx

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripnect/internal/config"
	"tripnect/pkg/llm"
)

var Module = fx.Provide(ProvideTextGenerator)

// ProvideTextGenerator builds the configured provider. A missing credential
// yields llm.Unconfigured so the server still boots and /health reports it.
func ProvideTextGenerator(cfg *config.Config, logger *zap.Logger) (llm.TextGenerator, error) {
	gen := cfg.Generation
	if cfg.ProviderCredentialKey() == "" {
		return nil, fmt.Errorf("unsupported generation provider: %s", gen.Provider)
	}
	if slices.Contains(cfg.MissingRequired(), cfg.ProviderCredentialKey()) {
		logger.Warn("generation provider credential missing",
			zap.String("provider", gen.Provider),
			zap.String("key", cfg.ProviderCredentialKey()))
		return llm.Unconfigured{Provider: gen.Provider, Key: cfg.ProviderCredentialKey()}, nil
	}

	var (
		g   llm.TextGenerator
		err error
	)
	switch gen.Provider {
	case llm.CohereProvider:
		g, err = llm.NewCohereGenerator(gen.CohereAPIKey, gen.Model)
	case llm.GeminiProvider:
		g, err = llm.NewGeminiGenerator(context.Background(), gen.GeminiAPIKey, gen.Model)
	case llm.OpenAIProvider:
		g, err = llm.NewOpenAIGenerator(gen.OpenAIAPIKey, gen.Model)
	case llm.GenAIProvider:
		g, err = llm.NewGenAIGenerator(context.Background(), llm.GenAIConfig{
			APIKey:   gen.GeminiAPIKey,
			Vertex:   gen.GenAIBackend == "vertex",
			Project:  gen.GCPProject,
			Location: gen.GCPLocation,
			Model:    gen.Model,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", gen.Provider, err)
	}

	logger.Info("text generation provider ready", zap.String("provider", g.Name()))
	return llm.WithLogging(g, logger), nil
}
