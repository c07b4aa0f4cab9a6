package dto

import (
	"poi-map-service/internal/domain"
	"poi-map-service/internal/services"
)

// Point in a request body. Both fields are required.
type CoordinatesRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

func (c CoordinatesRequest) Coordinates() (domain.Coordinates, bool) {
	if c.Lat == nil || c.Lon == nil {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lat: *c.Lat, Lon: *c.Lon}, true
}

// Outcome of a browser geolocation attempt: a position, a
// GeolocationPositionError code (1 denied, 2 unavailable, 3 timeout), or
// unsupported.
type LocationRequest struct {
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	ErrorCode   int      `json:"error_code"`
	Unsupported bool     `json:"unsupported"`
	Message     string   `json:"message"`
}

type FilterRequest struct {
	CategoryID string   `json:"category_id"`
	RadiusKm   *float64 `json:"radius_km"`
	Keyword    string   `json:"keyword"`
}

func (f FilterRequest) Criteria() services.FilterCriteria {
	return services.FilterCriteria{CategoryID: f.CategoryID, RadiusKm: f.RadiusKm, Keyword: f.Keyword}
}

type PickRequest struct {
	Mode string `json:"mode"`
}

type ClickResponse struct {
	Set     string          `json:"set"`
	Session SessionResponse `json:"session"`
}

type RouteResponse struct {
	Path            []LatLon `json:"path"`
	DistanceMeters  float64  `json:"distance_meters"`
	DurationSeconds float64  `json:"duration_seconds"`
	DistanceKm      float64  `json:"distance_km"`
	DurationMinutes int      `json:"duration_minutes"`
	Label           string   `json:"label"`
}

func FromRoute(r domain.Route) RouteResponse {
	return RouteResponse{
		Path:            FromPath(r.Path),
		DistanceMeters:  r.DistanceMeters,
		DurationSeconds: r.DurationSeconds,
		DistanceKm:      r.DistanceKm(),
		DurationMinutes: r.DurationMinutes(),
		Label:           services.RouteLabel(r),
	}
}

type SessionResponse struct {
	ID            string         `json:"id"`
	Origin        *LatLon        `json:"origin"`
	Filter        FilterRequest  `json:"filter"`
	State         string         `json:"state"`
	PickMode      string         `json:"pick_mode"`
	Start         *LatLon        `json:"start"`
	End           *LatLon        `json:"end"`
	Route         *RouteResponse `json:"route"`
	LocationError string         `json:"location_error,omitempty"`
}

func FromSnapshot(s services.Snapshot) SessionResponse {
	res := SessionResponse{
		ID:     s.ID,
		Origin: FromCoordinates(s.Origin),
		Filter: FilterRequest{
			CategoryID: s.Filter.CategoryID,
			RadiusKm:   s.Filter.RadiusKm,
			Keyword:    s.Filter.Keyword,
		},
		State:    s.State.String(),
		PickMode: s.Mode.String(),
		Start:    FromCoordinates(s.Start),
		End:      FromCoordinates(s.End),
	}
	if s.Route != nil {
		r := FromRoute(*s.Route)
		res.Route = &r
	}
	if s.LocationError != nil {
		res.LocationError = s.LocationError.Error()
	}
	return res
}

type SelectResponse struct {
	POI     POIResponse     `json:"poi"`
	Session SessionResponse `json:"session"`
}
