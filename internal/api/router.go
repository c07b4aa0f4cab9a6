package api

import (
	"net/http"
	"poi-map-service/internal/api/handlers"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/metrics"
	"poi-map-service/internal/ports"
	"poi-map-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	pois []*domain.PointOfInterest,
	categories []domain.Category,
	sessions *services.SessionStore,
	provider ports.RouteProvider,
	locator handlers.LocatorFunc,
	newView func() ports.MapView,
) http.Handler {
	mux := http.NewServeMux()

	catalog := &handlers.CatalogHandler{POIs: pois, Categories: categories}
	tools := &handlers.ToolsHandler{POIs: pois}
	sess := &handlers.SessionHandler{Store: sessions, Provider: provider, Locator: locator, NewView: newView}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /categories", catalog.ListCategories)
	mux.HandleFunc("GET /pois", catalog.ListPOIs)
	mux.HandleFunc("GET /pois/{id}/similar", catalog.Similar)
	mux.HandleFunc("GET /tools/{tool}", tools.Run)

	mux.HandleFunc("POST /sessions", sess.Create)
	mux.HandleFunc("GET /sessions/{id}", sess.Get)
	mux.HandleFunc("DELETE /sessions/{id}", sess.Delete)
	mux.HandleFunc("POST /sessions/{id}/origin", sess.SetOrigin)
	mux.HandleFunc("DELETE /sessions/{id}/origin", sess.ClearOrigin)
	mux.HandleFunc("POST /sessions/{id}/location", sess.ReportLocation)
	mux.HandleFunc("PUT /sessions/{id}/filter", sess.SetFilter)
	mux.HandleFunc("GET /sessions/{id}/pois", sess.Visible)
	mux.HandleFunc("POST /sessions/{id}/select/{poiID}", sess.SelectPOI)
	mux.HandleFunc("POST /sessions/{id}/start", sess.SetStart)
	mux.HandleFunc("POST /sessions/{id}/end", sess.SetEnd)
	mux.HandleFunc("POST /sessions/{id}/pick", sess.ArmPick)
	mux.HandleFunc("POST /sessions/{id}/click", sess.MapClick)
	mux.HandleFunc("DELETE /sessions/{id}/selection", sess.ClearSelection)
	mux.HandleFunc("POST /sessions/{id}/route", sess.ComputeRoute)
	mux.HandleFunc("GET /sessions/{id}/scene", sess.Scene)

	return loggingMiddleware(mux)
}
