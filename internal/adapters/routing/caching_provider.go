package routing

import (
	"context"
	"fmt"
	"log/slog"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/metrics"
	"poi-map-service/internal/ports"
)

// CachingProvider serves repeated start/end pairs from a RouteCache.
// Only successful routes are stored; failures always reach the provider.
type CachingProvider struct {
	next      ports.RouteProvider
	cache     ports.RouteCache
	namespace string
}

func NewCachingProvider(next ports.RouteProvider, cache ports.RouteCache, namespace string) *CachingProvider {
	return &CachingProvider{next: next, cache: cache, namespace: namespace}
}

// CacheKey rounds both endpoints to 5 decimals (about 1 m) so clicks on the
// same spot share an entry.
func CacheKey(namespace string, start, end domain.Coordinates) string {
	return fmt.Sprintf("%s|%.5f,%.5f|%.5f,%.5f", namespace, start.Lat, start.Lon, end.Lat, end.Lon)
}

func (c *CachingProvider) Route(ctx context.Context, start, end domain.Coordinates) (domain.Route, error) {
	key := CacheKey(c.namespace, start, end)

	if c.cache != nil {
		r, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "route cache read failed", "key", key, "err", err)
		} else if ok {
			metrics.RouteCacheHitsTotal.Inc()
			return r, nil
		}
		metrics.RouteCacheMissesTotal.Inc()
	}

	r, err := c.next.Route(ctx, start, end)
	if err != nil {
		return domain.Route{}, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, r); err != nil {
			slog.WarnContext(ctx, "route cache write failed", "key", key, "err", err)
		}
	}
	return r, nil
}
