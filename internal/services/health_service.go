package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripnect/internal/config"
	"tripnect/internal/infra"
	resp "tripnect/internal/models/response_models"
	"tripnect/pkg/llm"
)

const healthCheckTimeout = 5 * time.Second

type HealthServiceInterface interface {
	Check(ctx context.Context) resp.HealthReport
}

type HealthService struct {
	pingDB    func(ctx context.Context) error
	generator llm.TextGenerator
	missing   func() []string
	startedAt time.Time
	logger    *zap.Logger
}

func NewHealthService(db *gorm.DB, generator llm.TextGenerator, cfg *config.Config, logger *zap.Logger) HealthServiceInterface {
	return NewHealthServiceWith(
		func(ctx context.Context) error { return infra.Ping(ctx, db) },
		generator,
		cfg.MissingRequired,
		logger,
	)
}

func NewHealthServiceWith(pingDB func(context.Context) error, generator llm.TextGenerator, missing func() []string, logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{
		pingDB:    pingDB,
		generator: generator,
		missing:   missing,
		startedAt: time.Now(),
		logger:    logger.Named("health"),
	}
}

// Check reports DEGRADED when a dependency is unreachable and ERROR when the
// process is missing required configuration.
func (s *HealthService) Check(ctx context.Context) resp.HealthReport {
	report := resp.HealthReport{
		Status:    resp.HealthOK,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		Provider:  s.generator.Name(),
		Checks:    map[string]resp.ComponentHealth{},
	}

	report.Checks["database"] = s.probe(ctx, "database", s.pingDB)
	report.Checks["generation"] = s.probe(ctx, "generation", s.generator.Ping)
	for _, c := range report.Checks {
		if c.Status != resp.HealthOK {
			report.Status = resp.HealthDegraded
		}
	}

	if missing := s.missing(); len(missing) > 0 {
		report.Missing = missing
		report.Status = resp.HealthError
		report.Checks["environment"] = resp.ComponentHealth{Status: resp.HealthError, Message: "Missing required variables"}
	} else {
		report.Checks["environment"] = resp.ComponentHealth{Status: resp.HealthOK, Message: "All required variables set"}
	}

	return report
}

func (s *HealthService) probe(ctx context.Context, name string, fn func(context.Context) error) resp.ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	started := time.Now()
	err := fn(ctx)
	latency := time.Since(started).Round(time.Millisecond).String()
	if err != nil {
		s.logger.Warn("health probe failed", zap.String("component", name), zap.Error(err))
		return resp.ComponentHealth{Status: resp.HealthError, Message: err.Error(), Latency: latency}
	}
	return resp.ComponentHealth{Status: resp.HealthOK, Message: "Connected", Latency: latency}
}
