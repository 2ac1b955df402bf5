package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	resp "tripnect/internal/models/response_models"
	mem "tripnect/pkg/memcache"
	"tripnect/pkg/utils"
)

const geocodeSearchLimit = 5

type GeocodeServiceInterface interface {
	Search(ctx context.Context, location string) (*resp.GeocodeResponse, error)
	Reverse(ctx context.Context, lat, lng float64) (*resp.ReverseGeocodeResponse, error)
}

// GeocodeProvider is the OpenCage surface the proxy needs.
type GeocodeProvider interface {
	ForwardGeocoder
	ReverseGeocoder
	Configured() bool
}

type GeocodeService struct {
	provider GeocodeProvider
	cache    mem.GeocodeStore
	logger   *zap.Logger
}

func NewGeocodeService(provider *OpenCageClient, cache mem.GeocodeStore, logger *zap.Logger) GeocodeServiceInterface {
	return NewGeocodeServiceWith(provider, cache, logger)
}

func NewGeocodeServiceWith(provider GeocodeProvider, cache mem.GeocodeStore, logger *zap.Logger) *GeocodeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeocodeService{provider: provider, cache: cache, logger: logger.Named("geocode")}
}

func (s *GeocodeService) Search(ctx context.Context, location string) (*resp.GeocodeResponse, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, utils.NewValidationError("location", "Location parameter is required")
	}
	if !s.provider.Configured() {
		return nil, utils.ErrGeocodingNotConfigured
	}

	key := mem.Key("forward", location)
	if v, ok := s.cache.Get(key); ok {
		if cached, ok := v.(*resp.GeocodeResponse); ok {
			return cached, nil
		}
	}

	matches, err := s.provider.Geocode(ctx, location, geocodeSearchLimit)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, utils.ErrLocationNotFound
	}

	out := &resp.GeocodeResponse{
		Results:      make([]resp.GeocodeResult, 0, len(matches)),
		TotalResults: len(matches),
		Status:       "OK",
	}
	for _, m := range matches {
		out.Results = append(out.Results, geocodeResult(m))
	}
	s.cache.Set(key, out)
	s.logger.Debug("geocoded", zap.String("location", location), zap.Int("results", len(matches)))
	return out, nil
}

func (s *GeocodeService) Reverse(ctx context.Context, lat, lng float64) (*resp.ReverseGeocodeResponse, error) {
	verr := &utils.ValidationError{}
	// negated ranges so NaN fails too
	if !(lat >= -90 && lat <= 90) {
		verr.Add("lat", "Latitude must be between -90 and 90")
	}
	if !(lng >= -180 && lng <= 180) {
		verr.Add("lng", "Longitude must be between -180 and 180")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if !s.provider.Configured() {
		return nil, utils.ErrGeocodingNotConfigured
	}

	key := mem.Key("reverse", fmt.Sprintf("%.6f,%.6f", lat, lng))
	if v, ok := s.cache.Get(key); ok {
		if cached, ok := v.(*resp.ReverseGeocodeResponse); ok {
			return cached, nil
		}
	}

	matches, err := s.provider.Reverse(ctx, lat, lng)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, utils.ErrLocationNotFound
	}

	out := &resp.ReverseGeocodeResponse{Result: geocodeResult(matches[0]), Status: "OK"}
	s.cache.Set(key, out)
	return out, nil
}

func geocodeResult(m GeocodeMatch) resp.GeocodeResult {
	return resp.GeocodeResult{
		Coordinates:      resp.Coordinates{Lat: m.Point.Lat(), Lng: m.Point.Lng()},
		FormattedAddress: m.Formatted,
		Components:       m.Components,
		Confidence:       m.Confidence,
	}
}
