package handlers

import (
	"net/http"
	"poi-map-service/internal/api/dto"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/services"
	"strings"
)

// CatalogHandler serves the shared, read-only point catalog.
type CatalogHandler struct {
	POIs       []*domain.PointOfInterest
	Categories []domain.Category
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	res := dto.ListCategoryResponse{Categories: make([]dto.CategoryResponse, 0, len(h.Categories))}
	for _, c := range h.Categories {
		res.Categories = append(res.Categories, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, r, http.StatusOK, res)
}

// ListPOIs ranks and filters a copy of the catalog from query parameters:
// near=lat,lon, category, radius_km and q.
func (h *CatalogHandler) ListPOIs(w http.ResponseWriter, r *http.Request) {
	var origin *domain.Coordinates
	if strings.TrimSpace(r.URL.Query().Get("near")) != "" {
		c, err := coordParam(r, "near")
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		origin = &c
	}

	radius, err := floatParam(r, "radius_km")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if radius != nil && *radius < 0 {
		writeError(w, r, http.StatusBadRequest, "radius_km must not be negative")
		return
	}

	pois := make([]*domain.PointOfInterest, 0, len(h.POIs))
	for _, p := range h.POIs {
		pois = append(pois, p.Clone())
	}
	services.Rank(pois, origin)

	criteria := services.FilterCriteria{
		CategoryID: strings.TrimSpace(r.URL.Query().Get("category")),
		RadiusKm:   radius,
		Keyword:    r.URL.Query().Get("q"),
	}
	writeJSON(w, r, http.StatusOK, dto.FromPOIs(services.Filter(pois, criteria, origin != nil)))
}

// Similar lists other points in the same category, best rated first.
func (h *CatalogHandler) Similar(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	pois, err := services.Similar(h.POIs, r.PathValue("id"), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.FromPOIs(pois))
}
