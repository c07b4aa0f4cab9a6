package ports

import (
	"context"
	"errors"
	"fmt"
	"poi-map-service/internal/domain"
)

// ErrNoRoute is returned when the provider answered but found no path
// between the requested points.
var ErrNoRoute = errors.New("no route found")

// TransportError reports a failure to reach or understand the routing provider
// (network error, non-2xx status, undecodable body).
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Contract for requesting a driving route between two coordinates.
type RouteProvider interface {
	// Return the route geometry, distance and duration from start to end.
	Route(ctx context.Context, start, end domain.Coordinates) (domain.Route, error)
}

// Optional cache consulted before calling a RouteProvider.
type RouteCache interface {
	Get(ctx context.Context, key string) (domain.Route, bool, error)
	Put(ctx context.Context, key string, route domain.Route) error
}
