package dto

import "poi-map-service/internal/domain"

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func FromCoordinates(c *domain.Coordinates) *LatLon {
	if c == nil {
		return nil
	}
	return &LatLon{Lat: c.Lat, Lon: c.Lon}
}

func FromPath(path []domain.Coordinates) []LatLon {
	out := make([]LatLon, 0, len(path))
	for _, c := range path {
		out = append(out, LatLon{Lat: c.Lat, Lon: c.Lon})
	}
	return out
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListCategoryResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type POIResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CategoryID   string   `json:"category_id"`
	Category     string   `json:"category"`
	Address      string   `json:"address"`
	Rating       float64  `json:"rating"`
	PriceLevel   int      `json:"price_level"`
	HasPromotion bool     `json:"has_promotion"`
	Promotions   []string `json:"promotions"`
	Position     *LatLon  `json:"position"`
	DistanceKm   *float64 `json:"distance_km"`
}

type ListPOIResponse struct {
	Count int           `json:"count"`
	POIs  []POIResponse `json:"pois"`
}

func FromPOI(p *domain.PointOfInterest) POIResponse {
	promos := p.Promotions
	if promos == nil {
		promos = []string{}
	}
	return POIResponse{
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		Category:     p.Category,
		Address:      p.Address,
		Rating:       p.Rating,
		PriceLevel:   p.PriceLevel,
		HasPromotion: p.HasPromotion,
		Promotions:   promos,
		Position:     FromCoordinates(p.Coordinates),
		DistanceKm:   p.DistanceKm,
	}
}

func FromPOIs(pois []*domain.PointOfInterest) ListPOIResponse {
	res := ListPOIResponse{Count: len(pois), POIs: make([]POIResponse, 0, len(pois))}
	for _, p := range pois {
		res.POIs = append(res.POIs, FromPOI(p))
	}
	return res
}
