package services

import (
	"poi-map-service/internal/domain"
	"testing"
)

func poi(id string, lat, lon float64) *domain.PointOfInterest {
	return &domain.PointOfInterest{ID: id, Name: id, Coordinates: &domain.Coordinates{Lat: lat, Lon: lon}}
}

func ids(pois []*domain.PointOfInterest) []string {
	out := make([]string, 0, len(pois))
	for _, p := range pois {
		out = append(out, p.ID)
	}
	return out
}

func sameIDs(t *testing.T, got []*domain.PointOfInterest, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("ids = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("ids = %v, want %v", g, want)
		}
	}
}

func TestRankWithoutOriginIsNoop(t *testing.T) {
	pois := []*domain.PointOfInterest{poi("far", 21.0285, 105.8542), poi("near", 10.78, 106.70)}

	Rank(pois, nil)

	sameIDs(t, pois, "far", "near")
	for _, p := range pois {
		if p.DistanceKm != nil {
			t.Fatalf("%s distance = %v, want nil", p.ID, *p.DistanceKm)
		}
	}
}

func TestRankOrdersNearestFirstAndUnlocatedLast(t *testing.T) {
	origin := domain.Coordinates{Lat: 10.7769, Lon: 106.7009}
	pois := []*domain.PointOfInterest{
		{ID: "nowhere", Name: "nowhere"},
		poi("hanoi", 21.0285, 105.8542),
		poi("benthanh", 10.7725, 106.6980),
		{ID: "bad", Name: "bad", Coordinates: &domain.Coordinates{Lat: 95, Lon: 0}},
		poi("q5", 10.7540, 106.6634),
	}

	Rank(pois, &origin)

	sameIDs(t, pois, "benthanh", "q5", "hanoi", "nowhere", "bad")
	if pois[3].DistanceKm != nil || pois[4].DistanceKm != nil {
		t.Fatal("points without a valid coordinate must keep a nil distance")
	}
	if *pois[0].DistanceKm > *pois[1].DistanceKm {
		t.Fatalf("distances not ascending: %v > %v", *pois[0].DistanceKm, *pois[1].DistanceKm)
	}
}

func TestRankIsIdempotent(t *testing.T) {
	origin := domain.Coordinates{Lat: 10.7769, Lon: 106.7009}
	pois := []*domain.PointOfInterest{
		poi("a", 10.80, 106.70),
		{ID: "x", Name: "x"},
		poi("b", 10.77, 106.70),
		poi("c", 10.79, 106.71),
	}

	Rank(pois, &origin)
	first := ids(pois)
	dists := make([]float64, 0, len(pois))
	for _, p := range pois {
		if p.DistanceKm != nil {
			dists = append(dists, *p.DistanceKm)
		}
	}

	Rank(pois, &origin)
	sameIDs(t, pois, first...)
	for i, p := range pois[:len(dists)] {
		if *p.DistanceKm != dists[i] {
			t.Fatalf("%s distance changed: %v -> %v", p.ID, dists[i], *p.DistanceKm)
		}
	}
}

func TestRankIsStableForEqualDistances(t *testing.T) {
	origin := domain.Coordinates{Lat: 10.7769, Lon: 106.7009}
	pois := []*domain.PointOfInterest{
		poi("far", 10.90, 106.70),
		poi("twin-1", 10.78, 106.71),
		poi("twin-2", 10.78, 106.71),
		poi("twin-3", 10.78, 106.71),
	}

	Rank(pois, &origin)

	sameIDs(t, pois, "twin-1", "twin-2", "twin-3", "far")
}
