package memcache_fx

import (
	"go.uber.org/fx"
	"tripnect/internal/config"
	mem "tripnect/pkg/memcache"
)

var Module = fx.Provide(provideGeocodeCache)

func provideGeocodeCache(cfg *config.Config) mem.GeocodeStore {
	return mem.NewGeocodeCache(cfg.Geocoding.CacheTTL)
}
