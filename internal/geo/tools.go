package geo

import (
	"cmp"
	"math"
	"poi-map-service/internal/domain"
	"slices"

	"github.com/golang/geo/s2"
)

const defaultBufferSegments = 32

// Match pairs a point index with its distance from a query origin.
type Match struct {
	Index      int
	DistanceKm float64
}

// Centroid returns the arithmetic mean of the points.
func Centroid(points []domain.Coordinates) (domain.Coordinates, bool) {
	if len(points) == 0 {
		return domain.Coordinates{}, false
	}

	var lat, lon float64
	for _, p := range points {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(points))
	return domain.Coordinates{Lat: lat / n, Lon: lon / n}, true
}

// Nearest returns the point closest to origin. Ties keep the earliest index.
func Nearest(origin domain.Coordinates, points []domain.Coordinates) (Match, bool) {
	if len(points) == 0 {
		return Match{}, false
	}

	best := Match{Index: -1, DistanceKm: math.Inf(1)}
	for i, p := range points {
		if d := DistanceKm(origin, p); d < best.DistanceKm {
			best = Match{Index: i, DistanceKm: d}
		}
	}
	return best, best.Index >= 0
}

// WithinRadius returns every point at most radiusKm from origin, nearest
// first. Equal distances keep input order.
func WithinRadius(origin domain.Coordinates, points []domain.Coordinates, radiusKm float64) []Match {
	out := make([]Match, 0)
	for i, p := range points {
		if d := DistanceKm(origin, p); d <= radiusKm {
			out = append(out, Match{Index: i, DistanceKm: d})
		}
	}

	slices.SortStableFunc(out, func(a, b Match) int { return cmp.Compare(a.DistanceKm, b.DistanceKm) })
	return out
}

// Buffer approximates a circle of radiusKm around center with a polygon.
// Vertices are great-circle destinations from center, so the ring stays valid
// near the poles. segments <= 0 selects the default of 32.
func Buffer(center domain.Coordinates, radiusKm float64, segments int) []domain.Coordinates {
	if segments <= 0 {
		segments = defaultBufferSegments
	}

	ring := make([]domain.Coordinates, 0, segments)
	for i := 0; i < segments; i++ {
		bearing := 360 * float64(i) / float64(segments)
		ring = append(ring, Destination(center, bearing, radiusKm))
	}
	return ring
}

// Destination returns the point distanceKm from start along the initial
// bearing (degrees clockwise from north). Longitude is normalized to
// [-180, 180].
func Destination(start domain.Coordinates, bearingDeg, distanceKm float64) domain.Coordinates {
	lat1 := toRadians(start.Lat)
	lon1 := toRadians(start.Lon)
	theta := toRadians(bearingDeg)
	delta := distanceKm / EarthRadiusKm

	sinLat2 := math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta)
	lat2 := math.Asin(math.Max(-1, math.Min(1, sinLat2)))
	lon2 := lon1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*sinLat2,
	)

	return domain.Coordinates{Lat: toDegrees(lat2), Lon: normalizeLon(toDegrees(lon2))}
}

func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// BBox is an axis-aligned latitude/longitude rectangle.
type BBox struct {
	SouthWest domain.Coordinates
	NorthEast domain.Coordinates
}

func (b BBox) Center() domain.Coordinates {
	return domain.Coordinates{
		Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2,
		Lon: (b.SouthWest.Lon + b.NorthEast.Lon) / 2,
	}
}

// Bounds returns the bounding box of the points, grown by padKm on every side.
func Bounds(points []domain.Coordinates, padKm float64) (BBox, bool) {
	if len(points) == 0 {
		return BBox{}, false
	}

	rect := s2.EmptyRect()
	for _, p := range points {
		rect = rect.AddPoint(s2.LatLngFromDegrees(p.Lat, p.Lon))
	}

	lo, hi := rect.Lo(), rect.Hi()
	box := BBox{
		SouthWest: domain.Coordinates{Lat: lo.Lat.Degrees(), Lon: lo.Lng.Degrees()},
		NorthEast: domain.Coordinates{Lat: hi.Lat.Degrees(), Lon: hi.Lng.Degrees()},
	}

	if padKm > 0 {
		padLat := toDegrees(padKm / EarthRadiusKm)
		box.SouthWest.Lat = math.Max(-90, box.SouthWest.Lat-padLat)
		box.NorthEast.Lat = math.Min(90, box.NorthEast.Lat+padLat)

		// Longitude padding is taken at the widest latitude; a box touching a
		// pole spans every longitude.
		widest := math.Max(math.Abs(box.SouthWest.Lat), math.Abs(box.NorthEast.Lat))
		padLon := toDegrees(padKm / (EarthRadiusKm * math.Cos(toRadians(widest))))
		if widest >= 90 || box.SouthWest.Lon-padLon < -180 || box.NorthEast.Lon+padLon > 180 {
			box.SouthWest.Lon, box.NorthEast.Lon = -180, 180
		} else {
			box.SouthWest.Lon -= padLon
			box.NorthEast.Lon += padLon
		}
	}
	return box, true
}

// Contains reports whether point lies inside the polygon ring. The ring may be
// given in either orientation and need not repeat its first vertex.
func Contains(polygon []domain.Coordinates, point domain.Coordinates) bool {
	loop, ok := polygonLoop(polygon)
	if !ok {
		return false
	}
	return loop.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(point.Lat, point.Lon)))
}

// AreaKm2 returns the spherical surface area enclosed by the polygon ring in
// square kilometres. Orientation does not matter; fewer than three distinct
// vertices give 0.
func AreaKm2(polygon []domain.Coordinates) float64 {
	loop, ok := polygonLoop(polygon)
	if !ok {
		return 0
	}
	return loop.Area() * EarthRadiusKm * EarthRadiusKm
}

// Normalized loop for a ring, so that it encloses at most half the sphere.
func polygonLoop(polygon []domain.Coordinates) (*s2.Loop, bool) {
	if len(polygon) > 1 && polygon[0] == polygon[len(polygon)-1] {
		polygon = polygon[:len(polygon)-1]
	}
	if len(polygon) < 3 {
		return nil, false
	}

	pts := make([]s2.Point, 0, len(polygon))
	for _, c := range polygon {
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)))
	}

	loop := s2.LoopFromPoints(pts)
	loop.Normalize()
	return loop, true
}

// Midpoint returns the point halfway along the great circle from a to b.
func Midpoint(a, b domain.Coordinates) domain.Coordinates {
	mid := s2.Interpolate(0.5,
		s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon)),
		s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon)),
	)
	ll := s2.LatLngFromPoint(mid)
	return domain.Coordinates{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}
