package geo

import (
	"math"
	"poi-map-service/internal/domain"
)

// Simplify thins a polyline with the Douglas-Peucker algorithm. tolerance is
// expressed in degrees. Paths with fewer than three points are returned as is.
func Simplify(path []domain.Coordinates, tolerance float64) []domain.Coordinates {
	if len(path) < 3 || tolerance <= 0 {
		return path
	}

	keep := make([]bool, len(path))
	keep[0] = true
	keep[len(path)-1] = true
	douglasPeucker(path, 0, len(path)-1, tolerance, keep)

	out := make([]domain.Coordinates, 0, len(path))
	for i, k := range keep {
		if k {
			out = append(out, path[i])
		}
	}
	return out
}

func douglasPeucker(path []domain.Coordinates, first, last int, tolerance float64, keep []bool) {
	if last <= first+1 {
		return
	}

	maxDist := 0.0
	index := first
	for i := first + 1; i < last; i++ {
		if d := perpendicularDistance(path[i], path[first], path[last]); d > maxDist {
			maxDist = d
			index = i
		}
	}

	if maxDist > tolerance {
		keep[index] = true
		douglasPeucker(path, first, index, tolerance, keep)
		douglasPeucker(path, index, last, tolerance, keep)
	}
}

func perpendicularDistance(p, a, b domain.Coordinates) float64 {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	if dx == 0 && dy == 0 {
		return math.Hypot(p.Lon-a.Lon, p.Lat-a.Lat)
	}
	return math.Abs(dy*p.Lon-dx*p.Lat+b.Lon*a.Lat-b.Lat*a.Lon) / math.Hypot(dx, dy)
}
