package geo

import (
	"math"
	"poi-map-service/internal/domain"
	"testing"
)

func TestDistanceKmSameCoordinateIsZero(t *testing.T) {
	points := []domain.Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: 16.05, Lon: 108.20},
		{Lat: -89.9, Lon: 179.9},
		{Lat: 90, Lon: -180},
	}

	for _, p := range points {
		if d := DistanceKm(p, p); d != 0 {
			t.Errorf("DistanceKm(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceKmIsSymmetric(t *testing.T) {
	pairs := [][2]domain.Coordinates{
		{{Lat: 16.05, Lon: 108.20}, {Lat: 16.06, Lon: 108.21}},
		{{Lat: 10.7769, Lon: 106.7009}, {Lat: 21.0285, Lon: 105.8542}},
		{{Lat: -33.86, Lon: 151.21}, {Lat: 51.5, Lon: -0.12}},
		{{Lat: 0, Lon: 179.5}, {Lat: 0, Lon: -179.5}},
	}

	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1])
		ba := DistanceKm(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9*math.Max(ab, 1) {
			t.Errorf("asymmetric distance for %v: %v vs %v", p, ab, ba)
		}
	}
}

func TestDistanceKmKnownValues(t *testing.T) {
	// Da Nang, about 0.01 degrees apart on both axes.
	d := DistanceKm(domain.Coordinates{Lat: 16.05, Lon: 108.20}, domain.Coordinates{Lat: 16.06, Lon: 108.21})
	if math.Abs(d-1.542) > 0.005 {
		t.Fatalf("Da Nang distance = %.4f km, want ~1.542", d)
	}

	// Ho Chi Minh City center to Hanoi center.
	d = DistanceKm(domain.Coordinates{Lat: 10.7769, Lon: 106.7009}, domain.Coordinates{Lat: 21.0285, Lon: 105.8542})
	if math.Abs(d-1143.5) > 0.5 {
		t.Fatalf("HCMC-Hanoi distance = %.2f km, want ~1143.5", d)
	}
}

func TestDistanceKmDoesNotValidateRange(t *testing.T) {
	d := DistanceKm(domain.Coordinates{Lat: 200, Lon: 400}, domain.Coordinates{Lat: 0, Lon: 0})
	if math.IsNaN(d) {
		t.Fatal("out of range input should still produce a number")
	}
}

func TestBearingAndCompassPoint(t *testing.T) {
	origin := domain.Coordinates{Lat: 0, Lon: 0}

	cases := []struct {
		to   domain.Coordinates
		deg  float64
		name string
	}{
		{domain.Coordinates{Lat: 1, Lon: 0}, 0, "N"},
		{domain.Coordinates{Lat: 0, Lon: 1}, 90, "E"},
		{domain.Coordinates{Lat: -1, Lon: 0}, 180, "S"},
		{domain.Coordinates{Lat: 0, Lon: -1}, 270, "W"},
	}

	for _, c := range cases {
		got := Bearing(origin, c.to)
		if math.Abs(got-c.deg) > 1e-6 {
			t.Errorf("Bearing to %v = %v, want %v", c.to, got, c.deg)
		}
		if dir := CompassPoint(got); dir != c.name {
			t.Errorf("CompassPoint(%v) = %q, want %q", got, dir, c.name)
		}
	}

	if dir := CompassPoint(44); dir != "NE" {
		t.Errorf("CompassPoint(44) = %q, want NE", dir)
	}
	if dir := CompassPoint(350); dir != "N" {
		t.Errorf("CompassPoint(350) = %q, want N", dir)
	}
}
