package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"tripnect/internal/config"
	"tripnect/internal/models/db_models"
	"tripnect/internal/models/request_models"
	resp "tripnect/internal/models/response_models"
	"tripnect/internal/repositories"
	"tripnect/pkg/geo"
	"tripnect/pkg/llm"
	"tripnect/pkg/metrics"
	"tripnect/pkg/utils"
)

type ItineraryServiceInterface interface {
	Generate(ctx context.Context, userID uuid.UUID, req request_models.GenerateItineraryRequest) (*resp.GenerateItineraryResponse, error)
}

type ItineraryService struct {
	resolver  CoordinateResolverInterface
	generator llm.TextGenerator
	trips     repositories.TripRepository
	genCfg    config.GenerationConfig
	metrics   *metrics.Metrics
	logger    *zap.Logger

	now       func() time.Time
	newJitter func() geo.JitterSource
}

func NewItineraryService(
	resolver CoordinateResolverInterface,
	generator llm.TextGenerator,
	trips repositories.TripRepository,
	cfg *config.Config,
	m *metrics.Metrics,
	logger *zap.Logger,
) ItineraryServiceInterface {
	return NewItineraryServiceWithClock(resolver, generator, trips, cfg.Generation, m, logger, time.Now, geo.NewJitterSource)
}

// NewItineraryServiceWithClock lets callers pin the clock and jitter used for
// date validation and route synthesis.
func NewItineraryServiceWithClock(
	resolver CoordinateResolverInterface,
	generator llm.TextGenerator,
	trips repositories.TripRepository,
	genCfg config.GenerationConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
	now func() time.Time,
	newJitter func() geo.JitterSource,
) *ItineraryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if genCfg.Timeout <= 0 {
		genCfg.Timeout = 60 * time.Second
	}
	return &ItineraryService{
		resolver:  resolver,
		generator: generator,
		trips:     trips,
		genCfg:    genCfg,
		metrics:   m,
		logger:    logger.Named("itinerary"),
		now:       now,
		newJitter: newJitter,
	}
}

func (s *ItineraryService) Generate(ctx context.Context, userID uuid.UUID, req request_models.GenerateItineraryRequest) (*resp.GenerateItineraryResponse, error) {
	startedAt := time.Now()

	window, err := ValidateGenerateRequest(req, s.now())
	if err != nil {
		return nil, err
	}

	startName := strings.TrimSpace(req.StartLocation)
	destName := strings.TrimSpace(req.Destination)
	log := s.logger.With(
		zap.String("user_id", userID.String()),
		zap.String("start", startName),
		zap.String("destination", destName),
		zap.Int("duration", window.Duration),
	)

	var start, dest ResolvedLocation
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start = s.resolver.Resolve(gctx, startName)
		return gctx.Err()
	})
	g.Go(func() error {
		dest = s.resolver.Resolve(gctx, destName)
		return gctx.Err()
	})
	// Resolve never fails, so only a caller that went away stops here.
	if err := g.Wait(); err != nil {
		log.Info("client left before generation", zap.Error(err))
		return nil, err
	}

	distance := geo.Haversine(start.Point, dest.Point)
	travelTime := geo.FormatTravelTime(geo.EstimateTravelTime(distance))

	ic := ItineraryContext{
		StartLocation: startName,
		Destination:   destName,
		StartDate:     window.Start,
		Duration:      window.Duration,
		Travelers:     req.Travelers,
		BudgetLevel:   req.BudgetLevel,
		Interests:     cleanInterests(req.Interests),
		DistanceKm:    distance,
	}
	prompt := BuildItineraryPrompt(PromptInput{
		Context:            ic,
		AdditionalRequests: req.AdditionalRequests,
		Start:              start,
		Destination:        dest,
		TravelTime:         travelTime,
	})

	// The provider call outlives a client disconnect; the timeout still bounds it.
	genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.genCfg.Timeout)
	defer cancel()

	raw, err := s.generator.Generate(genCtx, prompt, llm.Options{
		SystemPrompt: itinerarySystemPrompt,
		Temperature:  s.genCfg.Temperature,
		MaxTokens:    s.genCfg.MaxTokens,
		JSONMode:     true,
	})
	if err != nil {
		s.metrics.ObserveGeneration(s.generator.Name(), "error", "")
		log.Error("itinerary generation failed", zap.String("kind", llm.KindOf(err).String()), zap.Error(err))
		return nil, err
	}

	result := NormalizeItinerary(raw, ic)
	s.metrics.ObserveGeneration(s.generator.Name(), "success", string(result.Stage))
	if result.Stage == StageFallback {
		log.Warn("generated itinerary unusable, using fallback", zap.Int("raw_length", len(raw)))
	}

	route := geo.SynthesizeRoute(start.Point, dest.Point, geo.IntermediateStops(window.Duration, distance), s.newJitter())

	trip, err := buildTrip(userID, req, ic, window, result.Itinerary, route)
	if err != nil {
		return nil, err
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		log.Error("failed to persist trip", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	log.Info("itinerary generated",
		zap.String("trip_id", trip.ID.String()),
		zap.String("stage", string(result.Stage)),
		zap.Float64("distance_km", distance),
		zap.Duration("elapsed", time.Since(startedAt)))

	return &resp.GenerateItineraryResponse{
		TripID:           trip.ID.String(),
		Itinerary:        result.Itinerary,
		RouteCoordinates: route,
		Start:            resolvedPlace(start),
		Destination:      resolvedPlace(dest),
		DistanceKm:       distance,
		TravelTime:       travelTime,
	}, nil
}

func buildTrip(
	userID uuid.UUID,
	req request_models.GenerateItineraryRequest,
	ic ItineraryContext,
	window TripWindow,
	it resp.Itinerary,
	route []geo.Point,
) (*db_models.Trip, error) {
	itineraryJSON, err := json.Marshal(it)
	if err != nil {
		return nil, fmt.Errorf("encode itinerary: %w", err)
	}
	routeJSON, err := json.Marshal(route)
	if err != nil {
		return nil, fmt.Errorf("encode route: %w", err)
	}

	trip := &db_models.Trip{
		UserID:             userID,
		Title:              fmt.Sprintf("%s to %s", ic.StartLocation, ic.Destination),
		StartLocation:      ic.StartLocation,
		Destination:        ic.Destination,
		StartDate:          window.Start,
		EndDate:            window.End,
		Travelers:          req.Travelers,
		Interests:          ic.Interests,
		BudgetLevel:        req.BudgetLevel,
		AdditionalRequests: strings.TrimSpace(req.AdditionalRequests),
		Itinerary:          datatypes.JSON(itineraryJSON),
		RouteCoordinates:   datatypes.JSON(routeJSON),
	}
	trip.ID = uuid.New()
	return trip, nil
}

func resolvedPlace(loc ResolvedLocation) resp.ResolvedPlace {
	return resp.ResolvedPlace{
		Name:      loc.Query,
		Formatted: loc.Formatted,
		Lat:       loc.Point.Lat(),
		Lng:       loc.Point.Lng(),
		Source:    loc.Source,
		IsDefault: loc.IsDefault,
	}
}
