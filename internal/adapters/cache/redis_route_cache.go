package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis-backed route cache. Entries expire after TTL.
type RedisRouteCache struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{Client: client, Prefix: "route:", TTL: ttl}
}

type cachedRoute struct {
	Path            [][2]float64 `json:"path"`
	DistanceMeters  float64      `json:"distance_meters"`
	DurationSeconds float64      `json:"duration_seconds"`
}

func encodeRoute(r domain.Route) ([]byte, error) {
	c := cachedRoute{
		Path:            make([][2]float64, 0, len(r.Path)),
		DistanceMeters:  r.DistanceMeters,
		DurationSeconds: r.DurationSeconds,
	}
	for _, p := range r.Path {
		c.Path = append(c.Path, [2]float64{p.Lat, p.Lon})
	}
	return json.Marshal(c)
}

func decodeRoute(b []byte) (domain.Route, error) {
	var c cachedRoute
	if err := json.Unmarshal(b, &c); err != nil {
		return domain.Route{}, err
	}

	r := domain.Route{
		Path:            make([]domain.Coordinates, 0, len(c.Path)),
		DistanceMeters:  c.DistanceMeters,
		DurationSeconds: c.DurationSeconds,
	}
	for _, p := range c.Path {
		r.Path = append(r.Path, domain.Coordinates{Lat: p[0], Lon: p[1]})
	}
	return r, nil
}

// Fetch a cached route. A miss is reported as ok=false with a nil error.
func (s *RedisRouteCache) Get(ctx context.Context, key string) (_ domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	if s.Client == nil {
		return domain.Route{}, false, errors.New("route cache: redis client is nil")
	}

	b, err := s.Client.Get(ctx, s.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Route{}, false, nil
	}
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("get route cache: %w", err)
	}

	r, err := decodeRoute(b)
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("get route cache: decode %q: %w", key, err)
	}
	return r, true, nil
}

// Store a route under key.
func (s *RedisRouteCache) Put(ctx context.Context, key string, r domain.Route) error {
	if s.Client == nil {
		return errors.New("route cache: redis client is nil")
	}

	b, err := encodeRoute(r)
	if err != nil {
		return fmt.Errorf("insert route cache: encode: %w", err)
	}

	if err := s.Client.Set(ctx, s.Prefix+key, b, s.TTL).Err(); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}
	return nil
}
