package geocode_fx

import (
	"go.uber.org/fx"
	"tripnect/internal/config"
	"tripnect/internal/services"
)

var Module = fx.Provide(
	provideOpenCage,
	provideNominatim,
	services.NewCoordinateResolver,
	services.NewGeocodeService,
)

func provideOpenCage(cfg *config.Config) *services.OpenCageClient {
	return services.NewOpenCageClient(cfg.Geocoding)
}

func provideNominatim(cfg *config.Config) *services.NominatimClient {
	return services.NewNominatimClient(cfg.Geocoding)
}
