// Package llm wraps the text-generation providers behind one interface.
package llm

import "context"

const (
	DefaultTemperature float32 = 0.7
	DefaultMaxTokens           = 3500
)

// Options are the sampling parameters of a single generation call.
type Options struct {
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
	// JSONMode asks providers that support it for a JSON-only response.
	JSONMode bool
}

func (o Options) withDefaults() Options {
	if o.Temperature <= 0 {
		o.Temperature = DefaultTemperature
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	return o
}

// TextGenerator submits a prompt to an external provider and returns the raw
// text. Failures are reported as *ProviderError. Implementations never retry.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	// Ping issues a minimal request to check the provider is reachable.
	Ping(ctx context.Context) error
	Name() string
}

func ping(ctx context.Context, g TextGenerator) error {
	_, err := g.Generate(ctx, "Reply with the single word OK.", Options{MaxTokens: 10, Temperature: 0.1})
	return err
}

// Unconfigured stands in for a provider whose credential is missing so the
// process can still start and report the problem through its health check.
type Unconfigured struct {
	Provider string
	Key      string
}

func (u Unconfigured) Generate(context.Context, string, Options) (string, error) {
	return "", &ProviderError{
		Provider: u.Provider,
		Kind:     KindUnauthorized,
		Message:  u.Key + " is not configured",
	}
}

func (u Unconfigured) Ping(ctx context.Context) error {
	_, err := u.Generate(ctx, "", Options{})
	return err
}

func (u Unconfigured) Name() string { return u.Provider }
