// Package osm imports restaurants and cafes from OpenStreetMap through
// the Overpass API.
package osm

import (
	"context"
	"fmt"
	"net/http"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/geo"
	"poi-map-service/internal/platform/obs"
	"slices"
	"strings"
	"time"

	"github.com/serjvanilla/go-overpass"
)

const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// Categories assigned to imported points, keyed by id.
var categoryNames = map[string]string{
	"pho":        "Phở",
	"bun":        "Bún",
	"com":        "Cơm",
	"lau":        "Lẩu",
	"ga":         "Gà",
	"cafe":       "Cafe",
	"fast_food":  "Fast food",
	"restaurant": "Restaurant",
}

// Cuisine tag values mapped to a category id. The first matching value wins.
var cuisineCategories = map[string]string{
	"pho":         "pho",
	"noodle":      "bun",
	"bun":         "bun",
	"rice":        "com",
	"com_tam":     "com",
	"hot_pot":     "lau",
	"hotpot":      "lau",
	"chicken":     "ga",
	"coffee":      "cafe",
	"coffee_shop": "cafe",
}

type Importer struct {
	client  *overpass.Client
	timeout time.Duration
}

func NewImporter(endpoint string, timeout time.Duration) *Importer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	httpClient := &http.Client{Timeout: timeout}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &Importer{client: &client, timeout: timeout}
}

// Query selecting eating places inside box, ways resolved to their nodes.
func BuildQuery(box geo.BBox) string {
	bbox := fmt.Sprintf("%.6f,%.6f,%.6f,%.6f",
		box.SouthWest.Lat, box.SouthWest.Lon, box.NorthEast.Lat, box.NorthEast.Lon)

	return fmt.Sprintf(`
		[out:json][timeout:60];
		(
			node["amenity"~"restaurant|cafe|fast_food"](%s);
			way["amenity"~"restaurant|cafe|fast_food"](%s);
		);
		out body;
		>;
		out skel qt;
	`, bbox, bbox)
}

// Fetch eating places inside box and convert them to points of interest.
func (i *Importer) Fetch(ctx context.Context, box geo.BBox) (_ []*domain.PointOfInterest, _ []domain.Category, err error) {
	defer obs.Time(ctx, "overpass.Fetch")(&err)

	type outcome struct {
		result overpass.Result
		err    error
	}
	ch := make(chan outcome, 1)
	go func() {
		r, err := i.client.Query(BuildQuery(box))
		ch <- outcome{r, err}
	}()

	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("overpass fetch: %w", ctx.Err())
	case o := <-ch:
		if o.err != nil {
			return nil, nil, fmt.Errorf("overpass fetch: query: %w", o.err)
		}
		pois, cats := Convert(o.result)
		return pois, cats, nil
	}
}

// Convert tagged nodes and ways of an Overpass result into points of
// interest. Unnamed elements are skipped. Ways are placed at the centroid of
// their nodes. Output is ordered by element id for stable imports.
func Convert(result overpass.Result) ([]*domain.PointOfInterest, []domain.Category) {
	pois := make([]*domain.PointOfInterest, 0, len(result.Nodes))
	used := make(map[string]struct{})

	nodeIDs := make([]int64, 0, len(result.Nodes))
	for id := range result.Nodes {
		nodeIDs = append(nodeIDs, id)
	}
	slices.Sort(nodeIDs)

	for _, id := range nodeIDs {
		n := result.Nodes[id]
		p := fromTags(fmt.Sprintf("osm-node-%d", n.ID), n.Tags)
		if p == nil {
			continue
		}
		p.Coordinates = &domain.Coordinates{Lat: n.Lat, Lon: n.Lon}
		pois = append(pois, p)
		used[p.CategoryID] = struct{}{}
	}

	wayIDs := make([]int64, 0, len(result.Ways))
	for id := range result.Ways {
		wayIDs = append(wayIDs, id)
	}
	slices.Sort(wayIDs)

	for _, id := range wayIDs {
		w := result.Ways[id]
		p := fromTags(fmt.Sprintf("osm-way-%d", w.ID), w.Tags)
		if p == nil {
			continue
		}

		points := make([]domain.Coordinates, 0, len(w.Nodes))
		for _, n := range w.Nodes {
			if n != nil {
				points = append(points, domain.Coordinates{Lat: n.Lat, Lon: n.Lon})
			}
		}
		if c, ok := geo.Centroid(points); ok {
			p.Coordinates = &c
		}
		pois = append(pois, p)
		used[p.CategoryID] = struct{}{}
	}

	cats := make([]domain.Category, 0, len(used))
	for id := range used {
		cats = append(cats, domain.Category{ID: id, Name: categoryNames[id]})
	}
	slices.SortFunc(cats, func(a, b domain.Category) int { return strings.Compare(a.ID, b.ID) })

	return pois, cats
}

func fromTags(id string, tags map[string]string) *domain.PointOfInterest {
	amenity := tags["amenity"]
	if amenity == "" {
		return nil
	}

	name := firstTag(tags, "name", "name:vi", "name:en")
	if name == "" {
		return nil
	}

	category := categoryFor(amenity, tags["cuisine"])
	return &domain.PointOfInterest{
		ID:         id,
		Name:       name,
		CategoryID: category,
		Category:   categoryNames[category],
		Address:    address(tags),
		PriceLevel: 1,
	}
}

func categoryFor(amenity, cuisine string) string {
	for _, c := range strings.Split(cuisine, ";") {
		if id, ok := cuisineCategories[strings.TrimSpace(strings.ToLower(c))]; ok {
			return id
		}
	}

	switch amenity {
	case "cafe":
		return "cafe"
	case "fast_food":
		return "fast_food"
	default:
		return "restaurant"
	}
}

func address(tags map[string]string) string {
	parts := make([]string, 0, 3)
	street := strings.TrimSpace(strings.Join([]string{tags["addr:housenumber"], tags["addr:street"]}, " "))
	if street != "" {
		parts = append(parts, street)
	}
	for _, k := range []string{"addr:district", "addr:city"} {
		if v := strings.TrimSpace(tags[k]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func firstTag(tags map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(tags[k]); v != "" {
			return v
		}
	}
	return ""
}
