package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"tripnect/internal/config"
	"tripnect/pkg/geo"
	"tripnect/pkg/metrics"
)

const (
	SourceOpenCage  = "opencage"
	SourceNominatim = "nominatim"
	SourceStatic    = "static"
	SourceDefault   = "default"

	defaultLocationLabel = "India (default fallback)"
)

// CountryCentroid is the last-resort coordinate for any unresolved place.
var CountryCentroid = geo.NewPoint(20.5937, 78.9629)

// ResolvedLocation is a place name bound to coordinates. Values are never
// mutated after Resolve returns them.
type ResolvedLocation struct {
	Query      string
	Point      geo.Point
	Formatted  string
	Components map[string]any
	Source     string
	IsDefault  bool
}

type CoordinateResolverInterface interface {
	// Resolve never fails; it degrades to the country centroid.
	Resolve(ctx context.Context, name string) ResolvedLocation
}

type configurable interface {
	Configured() bool
}

type CoordinateResolver struct {
	primary     ForwardGeocoder
	secondary   ForwardGeocoder
	places      *PlaceTable
	countryName string
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func NewCoordinateResolver(
	primary *OpenCageClient,
	secondary *NominatimClient,
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
) CoordinateResolverInterface {
	return NewCoordinateResolverWith(primary, secondary, DefaultPlaceTable(), cfg.Geocoding.CountryName, logger, m)
}

// NewCoordinateResolverWith wires arbitrary providers. Either may be nil.
func NewCoordinateResolverWith(
	primary, secondary ForwardGeocoder,
	places *PlaceTable,
	countryName string,
	logger *zap.Logger,
	m *metrics.Metrics,
) *CoordinateResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if places == nil {
		places = DefaultPlaceTable()
	}
	return &CoordinateResolver{
		primary:     primary,
		secondary:   secondary,
		places:      places,
		countryName: countryName,
		logger:      logger.Named("resolver"),
		metrics:     m,
	}
}

func (r *CoordinateResolver) Resolve(ctx context.Context, name string) ResolvedLocation {
	name = strings.TrimSpace(name)
	log := r.logger.With(zap.String("location", name))

	if name != "" {
		if loc, ok := r.fromProvider(ctx, r.primary, name, name, log); ok {
			return r.done(loc)
		}
		if loc, ok := r.fromProvider(ctx, r.secondary, name, r.countryQuery(name), log); ok {
			return r.done(loc)
		}
		if p, ok := r.places.Lookup(name); ok {
			log.Info("resolved from known places", zap.String("key", p.Key))
			return r.done(ResolvedLocation{
				Query:     name,
				Point:     p.Point,
				Formatted: p.Formatted,
				Source:    SourceStatic,
			})
		}
	}

	log.Warn("falling back to country centroid")
	return r.done(ResolvedLocation{
		Query:     name,
		Point:     CountryCentroid,
		Formatted: defaultLocationLabel,
		Source:    SourceDefault,
		IsDefault: true,
	})
}

func (r *CoordinateResolver) fromProvider(ctx context.Context, g ForwardGeocoder, name, query string, log *zap.Logger) (ResolvedLocation, bool) {
	if g == nil {
		return ResolvedLocation{}, false
	}
	if c, ok := g.(configurable); ok && !c.Configured() {
		return ResolvedLocation{}, false
	}

	matches, err := g.Geocode(ctx, query, 1)
	if err != nil {
		log.Warn("geocoder failed", zap.String("provider", g.Name()), zap.Error(err))
		return ResolvedLocation{}, false
	}
	if len(matches) == 0 {
		log.Info("geocoder returned no results", zap.String("provider", g.Name()))
		return ResolvedLocation{}, false
	}

	m := matches[0]
	return ResolvedLocation{
		Query:      name,
		Point:      m.Point,
		Formatted:  m.Formatted,
		Components: m.Components,
		Source:     g.Name(),
	}, true
}

func (r *CoordinateResolver) countryQuery(name string) string {
	if r.countryName == "" || strings.Contains(strings.ToLower(name), strings.ToLower(r.countryName)) {
		return name
	}
	return name + ", " + r.countryName
}

func (r *CoordinateResolver) done(loc ResolvedLocation) ResolvedLocation {
	r.metrics.ObserveResolution(loc.Source)
	return loc
}
