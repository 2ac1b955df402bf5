// pkg/memcache/geocode_cache.go
package mem

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type GeocodeStore interface {
	Set(key string, value any)

	// Get returns the cached value for key if it has not expired.
	Get(key string) (any, bool)

	Flush()
}

type GeocodeCache struct {
	c *gocache.Cache
}

// NewGeocodeCache expires entries after ttl and sweeps every 2*ttl.
func NewGeocodeCache(ttl time.Duration) *GeocodeCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &GeocodeCache{c: gocache.New(ttl, 2*ttl)}
}

func (g *GeocodeCache) Set(key string, value any) {
	g.c.SetDefault(key, value)
}

func (g *GeocodeCache) Get(key string) (any, bool) {
	return g.c.Get(key)
}

func (g *GeocodeCache) Flush() {
	g.c.Flush()
}

// Key normalizes a query so that case and spacing variants share an entry.
func Key(kind, query string) string {
	return kind + ":" + strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
