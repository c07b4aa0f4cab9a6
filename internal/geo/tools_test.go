package geo

import (
	"math"
	"poi-map-service/internal/domain"
	"testing"
)

func TestNearestAndWithinRadius(t *testing.T) {
	origin := domain.Coordinates{Lat: 10.78, Lon: 106.70}
	points := []domain.Coordinates{
		{Lat: 10.80, Lon: 106.70}, // ~2.2 km
		{Lat: 10.79, Lon: 106.70}, // ~1.1 km
		{Lat: 10.90, Lon: 106.70}, // ~13 km
	}

	m, ok := Nearest(origin, points)
	if !ok || m.Index != 1 {
		t.Fatalf("Nearest = %+v ok=%v, want index 1", m, ok)
	}

	within := WithinRadius(origin, points, 3)
	if len(within) != 2 {
		t.Fatalf("WithinRadius returned %d points, want 2", len(within))
	}
	if within[0].Index != 1 || within[1].Index != 0 {
		t.Fatalf("WithinRadius order = %+v, want indexes 1,0", within)
	}

	if _, ok := Nearest(origin, nil); ok {
		t.Fatal("Nearest on empty input should report false")
	}
}

func TestCentroid(t *testing.T) {
	c, ok := Centroid([]domain.Coordinates{{Lat: 16.05, Lon: 108.20}, {Lat: 16.06, Lon: 108.21}, {Lat: 16.04, Lon: 108.19}})
	if !ok {
		t.Fatal("expected centroid")
	}
	if math.Abs(c.Lat-16.05) > 1e-9 || math.Abs(c.Lon-108.20) > 1e-9 {
		t.Fatalf("centroid = %v, want 16.05,108.20", c)
	}
}

func TestBufferRadius(t *testing.T) {
	center := domain.Coordinates{Lat: 16.05, Lon: 108.20}
	ring := Buffer(center, 5, 16)
	if len(ring) != 16 {
		t.Fatalf("ring has %d points, want 16", len(ring))
	}
	for _, p := range ring {
		if d := DistanceKm(center, p); math.Abs(d-5) > 0.05 {
			t.Fatalf("ring point %v is %.3f km from center, want ~5", p, d)
		}
	}

	if got := len(Buffer(center, 1, 0)); got != defaultBufferSegments {
		t.Fatalf("default segments = %d, want %d", got, defaultBufferSegments)
	}
}

func TestBufferAtPoleStaysOnTheSphere(t *testing.T) {
	pole := domain.Coordinates{Lat: 90, Lon: 0}
	ring := Buffer(pole, 5, 8)
	for _, p := range ring {
		if !p.Valid() {
			t.Fatalf("ring point %v is not a valid coordinate", p)
		}
		if d := DistanceKm(pole, p); math.Abs(d-5) > 0.01 {
			t.Fatalf("ring point %v is %.4f km from the pole, want 5", p, d)
		}
	}
}

func TestDestinationWrapsLongitude(t *testing.T) {
	start := domain.Coordinates{Lat: 0, Lon: 179.99}
	got := Destination(start, 90, 10)
	if got.Lon > 180 || got.Lon < -180 {
		t.Fatalf("longitude %.4f outside [-180, 180]", got.Lon)
	}
	if got.Lon > 0 {
		t.Fatalf("destination %v should have crossed the antimeridian", got)
	}
	if d := DistanceKm(start, got); math.Abs(d-10) > 1e-6 {
		t.Fatalf("destination is %.6f km away, want 10", d)
	}
}

func TestAreaKm2(t *testing.T) {
	cell := []domain.Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 1, Lon: 1},
		{Lat: 1, Lon: 0},
	}
	// A one degree cell at the equator is about 12364 km².
	if got := AreaKm2(cell); math.Abs(got-12364) > 60 {
		t.Fatalf("AreaKm2 = %.1f, want ~12364", got)
	}

	reversed := []domain.Coordinates{cell[3], cell[2], cell[1], cell[0], cell[3]}
	if a, b := AreaKm2(cell), AreaKm2(reversed); math.Abs(a-b) > 1e-6 {
		t.Fatalf("orientation changed the area: %.6f vs %.6f", a, b)
	}

	if got := AreaKm2(cell[:2]); got != 0 {
		t.Fatalf("AreaKm2 of a segment = %v, want 0", got)
	}
}

func TestBoundsPaddingClampsAtPole(t *testing.T) {
	box, _ := Bounds([]domain.Coordinates{{Lat: 89.999, Lon: 10}}, 5)
	if box.NorthEast.Lat != 90 {
		t.Fatalf("north edge = %v, want 90", box.NorthEast.Lat)
	}
	if box.SouthWest.Lon != -180 || box.NorthEast.Lon != 180 {
		t.Fatalf("box touching the pole should span every longitude: %+v", box)
	}
}

func TestBoundsWithPadding(t *testing.T) {
	pts := []domain.Coordinates{{Lat: 16.05, Lon: 108.20}, {Lat: 16.10, Lon: 108.25}}

	box, ok := Bounds(pts, 0)
	if !ok {
		t.Fatal("expected bounds")
	}
	if math.Abs(box.SouthWest.Lat-16.05) > 1e-9 || math.Abs(box.NorthEast.Lon-108.25) > 1e-9 {
		t.Fatalf("bounds = %+v", box)
	}

	padded, _ := Bounds(pts, 1)
	if padded.SouthWest.Lat >= box.SouthWest.Lat || padded.NorthEast.Lon <= box.NorthEast.Lon {
		t.Fatalf("padded bounds %+v not larger than %+v", padded, box)
	}

	if _, ok := Bounds(nil, 0); ok {
		t.Fatal("empty bounds should report false")
	}
}

func TestContains(t *testing.T) {
	square := []domain.Coordinates{
		{Lat: 16.00, Lon: 108.00},
		{Lat: 16.00, Lon: 108.50},
		{Lat: 16.50, Lon: 108.50},
		{Lat: 16.50, Lon: 108.00},
	}

	if !Contains(square, domain.Coordinates{Lat: 16.25, Lon: 108.25}) {
		t.Error("center should be inside")
	}
	if Contains(square, domain.Coordinates{Lat: 17, Lon: 108.25}) {
		t.Error("point north of the square should be outside")
	}

	reversed := []domain.Coordinates{square[3], square[2], square[1], square[0]}
	if !Contains(reversed, domain.Coordinates{Lat: 16.25, Lon: 108.25}) {
		t.Error("orientation should not matter")
	}
}

func TestSimplifyDropsCollinearPoints(t *testing.T) {
	path := []domain.Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 0, Lon: 2},
		{Lat: 1, Lon: 3},
	}

	got := Simplify(path, 0.0001)
	if len(got) != 3 {
		t.Fatalf("Simplify kept %d points, want 3: %v", len(got), got)
	}
	if got[0] != path[0] || got[len(got)-1] != path[len(path)-1] {
		t.Fatalf("Simplify must keep endpoints: %v", got)
	}
}
