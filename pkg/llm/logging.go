package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type loggingGenerator struct {
	next   TextGenerator
	logger *zap.Logger
}

// WithLogging wraps g so every call emits one diagnostic log entry.
func WithLogging(g TextGenerator, logger *zap.Logger) TextGenerator {
	return &loggingGenerator{next: g, logger: logger.Named("llm")}
}

func (l *loggingGenerator) Name() string { return l.next.Name() }

func (l *loggingGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	start := time.Now()
	l.logger.Debug("generation request initiated",
		zap.String("provider", l.next.Name()),
		zap.Int("prompt_length", len(prompt)))

	text, err := l.next.Generate(ctx, prompt, opts)
	if err != nil {
		l.logger.Warn("generation request failed",
			zap.String("provider", l.next.Name()),
			zap.String("kind", KindOf(err).String()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", err
	}

	l.logger.Info("generation response received",
		zap.String("provider", l.next.Name()),
		zap.Int("response_length", len(text)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}

func (l *loggingGenerator) Ping(ctx context.Context) error { return l.next.Ping(ctx) }
