package routing

import (
	"context"
	"errors"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
	"sync"
	"testing"
)

type memoryRouteCache struct {
	mu sync.Mutex
	m  map[string]domain.Route
}

func (c *memoryRouteCache) Get(ctx context.Context, key string) (domain.Route, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.m[key]
	return r, ok, nil
}

func (c *memoryRouteCache) Put(ctx context.Context, key string, r domain.Route) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = r
	return nil
}

func TestCachingProviderServesRepeatPairs(t *testing.T) {
	mock := NewMockRouteProvider([]MockLeg{
		{From: testStart, To: testEnd, Route: domain.Route{DistanceMeters: 1200, DurationSeconds: 180}},
	})
	cache := &memoryRouteCache{m: map[string]domain.Route{}}
	p := NewCachingProvider(mock, cache, "osrm:driving")

	for i := 0; i < 3; i++ {
		r, err := p.Route(context.Background(), testStart, testEnd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.DistanceMeters != 1200 {
			t.Fatalf("distance = %v, want 1200", r.DistanceMeters)
		}
	}

	if mock.Calls() != 1 {
		t.Fatalf("provider calls = %d, want 1", mock.Calls())
	}
}

func TestCachingProviderDoesNotCacheFailures(t *testing.T) {
	mock := NewMockRouteProvider([]MockLeg{
		{From: testStart, To: testEnd, Err: ports.ErrNoRoute},
	})
	cache := &memoryRouteCache{m: map[string]domain.Route{}}
	p := NewCachingProvider(mock, cache, "osrm:driving")

	for i := 0; i < 2; i++ {
		if _, err := p.Route(context.Background(), testStart, testEnd); !errors.Is(err, ports.ErrNoRoute) {
			t.Fatalf("err = %v, want ErrNoRoute", err)
		}
	}

	if mock.Calls() != 2 {
		t.Fatalf("provider calls = %d, want 2", mock.Calls())
	}
	if len(cache.m) != 0 {
		t.Fatalf("cache holds %d entries, want 0", len(cache.m))
	}
}

func TestCacheKeyRoundsCoordinates(t *testing.T) {
	a := CacheKey("osrm", domain.Coordinates{Lat: 10.123451, Lon: 106.1}, testEnd)
	b := CacheKey("osrm", domain.Coordinates{Lat: 10.123449, Lon: 106.1}, testEnd)
	if a != b {
		t.Fatalf("keys differ: %q vs %q", a, b)
	}
}
