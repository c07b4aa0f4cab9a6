package ports

import "poi-map-service/internal/domain"

// MarkerKind selects how a marker is styled.
type MarkerKind string

const (
	MarkerPOI       MarkerKind = "poi"
	MarkerPromotion MarkerKind = "promotion"
	MarkerOrigin    MarkerKind = "origin"
	MarkerStart     MarkerKind = "start"
	MarkerEnd       MarkerKind = "end"
)

type Marker struct {
	ID       string
	Kind     MarkerKind
	Position domain.Coordinates
	Label    string
	Category string
	Color    string
	Popup    string
}

// Presentation surface the session draws into.
type MapView interface {
	RenderMarker(m Marker)
	ClearMarkers()
	DrawPath(path []domain.Coordinates, label string)
	RemovePath()
	DrawArea(ring []domain.Coordinates)
	FitBounds(points []domain.Coordinates)
	Center(c domain.Coordinates, zoom int)
}
