package routing

import (
	"context"
	"errors"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/metrics"
	"poi-map-service/internal/ports"
	"time"
)

// InstrumentedProvider records request outcomes and latency per provider.
type InstrumentedProvider struct {
	next ports.RouteProvider
	name string
}

func NewInstrumentedProvider(next ports.RouteProvider, name string) *InstrumentedProvider {
	return &InstrumentedProvider{next: next, name: name}
}

func (p *InstrumentedProvider) Route(ctx context.Context, start, end domain.Coordinates) (domain.Route, error) {
	began := time.Now()
	r, err := p.next.Route(ctx, start, end)
	metrics.RouteDurationMs.WithLabelValues(p.name).Observe(float64(time.Since(began).Milliseconds()))
	metrics.RouteRequestsTotal.WithLabelValues(p.name, Outcome(err)).Inc()
	return r, err
}

// Outcome classifies a routing error for metrics and logs.
func Outcome(err error) string {
	var te *ports.TransportError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ports.ErrNoRoute):
		return "no_route"
	case errors.As(err, &te):
		return "transport"
	default:
		return "error"
	}
}
