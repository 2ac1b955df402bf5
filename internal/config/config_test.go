package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GENERATION_PROVIDER", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/tripnect")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cohere", cfg.Generation.Provider)
	assert.Equal(t, 3500, cfg.Generation.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Generation.Temperature, 0.0001)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "in", cfg.Geocoding.CountryCode)
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("GENERATION_PROVIDER", "llama")

	_, err := Load()
	assert.Error(t, err)
}

func TestMissingRequired(t *testing.T) {
	cfg := &Config{
		Generation: GenerationConfig{Provider: "openai"},
	}

	missing := cfg.MissingRequired()
	assert.ElementsMatch(t,
		[]string{"DATABASE_URL", "JWT_SECRET", "OPENAI_API_KEY", "OPENCAGE_API_KEY"},
		missing)

	cfg.Database.URL = "postgres://x"
	cfg.JWT.Secret = "s"
	cfg.Generation.OpenAIAPIKey = "k"
	cfg.Geocoding.OpenCageAPIKey = "k"
	assert.Empty(t, cfg.MissingRequired())
}

func TestProviderCredentialKey_GenAIVertex(t *testing.T) {
	cfg := &Config{Generation: GenerationConfig{Provider: "genai", GenAIBackend: "vertex"}}
	assert.Equal(t, "GOOGLE_CLOUD_PROJECT", cfg.ProviderCredentialKey())
}

func TestGetStringSliceEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	assert.Equal(t, []string{"http://a.test", "http://b.test"},
		getStringSliceEnv("CORS_ALLOWED_ORIGINS", nil))
}
