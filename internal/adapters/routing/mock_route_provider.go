package routing

import (
	"context"
	"poi-map-service/internal/domain"
	"sync"
)

type MockLeg struct {
	From, To domain.Coordinates
	Route    domain.Route
	Err      error
}

// MockRouteProvider answers from a fixed table of legs and counts calls.
// Unknown pairs return a straight two-point route.
type MockRouteProvider struct {
	mu    sync.Mutex
	legs  map[[2]domain.Coordinates]MockLeg
	calls int
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[[2]domain.Coordinates]MockLeg, len(legs))
	for _, l := range legs {
		m[[2]domain.Coordinates{l.From, l.To}] = l
	}
	return &MockRouteProvider{legs: m}
}

func (p *MockRouteProvider) Route(ctx context.Context, start, end domain.Coordinates) (domain.Route, error) {
	p.mu.Lock()
	p.calls++
	leg, ok := p.legs[[2]domain.Coordinates{start, end}]
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.Route{}, err
	}
	if !ok {
		return domain.Route{Path: []domain.Coordinates{start, end}}, nil
	}
	if leg.Err != nil {
		return domain.Route{}, leg.Err
	}
	return leg.Route, nil
}

func (p *MockRouteProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
