package services

import (
	"cmp"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/geo"
	"slices"
)

// Annotate each point with its distance from origin and order the slice
// nearest first.
//
// Points without a usable coordinate get a nil distance and sort after every
// measured point. The sort is stable, so ties and unmeasured points keep their
// relative order and ranking twice gives the same result. A nil origin leaves
// the slice untouched.
func Rank(pois []*domain.PointOfInterest, origin *domain.Coordinates) {
	if origin == nil {
		return
	}

	for _, p := range pois {
		if !p.Located() {
			p.DistanceKm = nil
			continue
		}
		d := geo.DistanceKm(*origin, *p.Coordinates)
		p.DistanceKm = &d
	}

	slices.SortStableFunc(pois, func(a, b *domain.PointOfInterest) int {
		switch {
		case a.DistanceKm == nil && b.DistanceKm == nil:
			return 0
		case a.DistanceKm == nil:
			return 1
		case b.DistanceKm == nil:
			return -1
		default:
			return cmp.Compare(*a.DistanceKm, *b.DistanceKm)
		}
	})
}
