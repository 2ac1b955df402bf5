package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Generation GenerationConfig
	Geocoding  GeocodingConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// GenerationConfig selects the text-generation provider and its sampling defaults.
type GenerationConfig struct {
	Provider     string
	Model        string
	Temperature  float32
	MaxTokens    int
	Timeout      time.Duration
	CohereAPIKey string
	GeminiAPIKey string
	OpenAIAPIKey string
	GenAIBackend string
	GCPProject   string
	GCPLocation  string
}

type GeocodingConfig struct {
	OpenCageAPIKey     string
	NominatimUserAgent string
	CountryCode        string
	CountryName        string
	CacheTTL           time.Duration
	Timeout            time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load loads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			Env:             getEnv("APP_ENV", "production"),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", os.Getenv("POSTGRES_URL")),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     getBoolEnv("DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    getDurationEnv("JWT_TTL", 7*24*time.Hour),
		},
		Generation: GenerationConfig{
			Provider:     strings.ToLower(getEnv("GENERATION_PROVIDER", "cohere")),
			Model:        getEnv("GENERATION_MODEL", ""),
			Temperature:  float32(getFloatEnv("GENERATION_TEMPERATURE", 0.7)),
			MaxTokens:    getIntEnv("GENERATION_MAX_TOKENS", 3500),
			Timeout:      getDurationEnv("GENERATION_TIMEOUT", 60*time.Second),
			CohereAPIKey: getEnv("COHERE_API_KEY", ""),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			GenAIBackend: strings.ToLower(getEnv("GENAI_BACKEND", "gemini")),
			GCPProject:   getEnv("GOOGLE_CLOUD_PROJECT", ""),
			GCPLocation:  getEnv("GOOGLE_CLOUD_LOCATION", "us-central1"),
		},
		Geocoding: GeocodingConfig{
			OpenCageAPIKey:     getEnv("OPENCAGE_API_KEY", ""),
			NominatimUserAgent: getEnv("NOMINATIM_USER_AGENT", "tripnect/1.0"),
			CountryCode:        getEnv("GEOCODE_COUNTRY_CODE", "in"),
			CountryName:        getEnv("GEOCODE_COUNTRY_NAME", "India"),
			CacheTTL:           getDurationEnv("GEOCODE_CACHE_TTL", time.Hour),
			Timeout:            getDurationEnv("GEOCODE_TIMEOUT", 10*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS",
				[]string{getEnv("FRONTEND_URL", "http://localhost:3000")}),
		},
		RateLimit: RateLimitConfig{
			Requests: getIntEnv("RATE_LIMIT_REQUESTS", 100),
			Window:   getDurationEnv("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot start with. Missing
// provider credentials are only reported, the health check surfaces them.
func (c *Config) Validate() error {
	switch c.Generation.Provider {
	case "cohere", "gemini", "openai", "genai":
	default:
		return fmt.Errorf("unsupported GENERATION_PROVIDER %q (use cohere, gemini, openai or genai)", c.Generation.Provider)
	}

	if c.Generation.MaxTokens <= 0 {
		return fmt.Errorf("GENERATION_MAX_TOKENS must be positive")
	}

	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}

	for _, key := range c.MissingRequired() {
		log.Printf("Warning: %s is not set", key)
	}

	return nil
}

// MissingRequired lists the required environment keys that are empty.
func (c *Config) MissingRequired() []string {
	var missing []string

	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if key := c.ProviderCredentialKey(); key != "" && c.providerCredential() == "" {
		missing = append(missing, key)
	}
	if c.Geocoding.OpenCageAPIKey == "" {
		missing = append(missing, "OPENCAGE_API_KEY")
	}

	return missing
}

// ProviderCredentialKey names the env key holding the active provider's credential.
func (c *Config) ProviderCredentialKey() string {
	switch c.Generation.Provider {
	case "cohere":
		return "COHERE_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "genai":
		if c.Generation.GenAIBackend == "vertex" {
			return "GOOGLE_CLOUD_PROJECT"
		}
		return "GEMINI_API_KEY"
	}
	return ""
}

func (c *Config) providerCredential() string {
	switch c.ProviderCredentialKey() {
	case "COHERE_API_KEY":
		return c.Generation.CohereAPIKey
	case "GEMINI_API_KEY":
		return c.Generation.GeminiAPIKey
	case "OPENAI_API_KEY":
		return c.Generation.OpenAIAPIKey
	case "GOOGLE_CLOUD_PROJECT":
		return c.Generation.GCPProject
	}
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
