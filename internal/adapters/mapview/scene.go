// Package mapview records map drawing commands into a Scene that a client
// renders (Leaflet or similar).
package mapview

import (
	"poi-map-service/internal/domain"
	"poi-map-service/internal/geo"
	"poi-map-service/internal/ports"
)

const (
	defaultColor   = "#888888"
	promotionColor = "#ff8c00"
	originColor    = "#8e44ad"
	startColor     = "#27ae60"
	endColor       = "#e74c3c"
	routeColor     = "#667eea"

	// Path thinning tolerance in degrees, roughly one metre.
	defaultTolerance = 0.00001
	fitPaddingKm     = 0.2
)

var categoryColors = map[string]string{
	"Phở":  "#e74c3c",
	"Bún":  "#e67e22",
	"Cơm":  "#27ae60",
	"Lẩu":  "#9b59b6",
	"Gà":   "#f39c12",
	"Cafe": "#3498db",
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toLatLon(c domain.Coordinates) LatLon { return LatLon{Lat: c.Lat, Lon: c.Lon} }

func toLatLons(cs []domain.Coordinates) []LatLon {
	out := make([]LatLon, 0, len(cs))
	for _, c := range cs {
		out = append(out, toLatLon(c))
	}
	return out
}

type Marker struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Position LatLon `json:"position"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
	Color    string `json:"color"`
	Popup    string `json:"popup,omitempty"`
}

type Path struct {
	Points  []LatLon `json:"points"`
	Color   string   `json:"color"`
	Label   string   `json:"label,omitempty"`
	LabelAt LatLon   `json:"label_at"`
}

type Bounds struct {
	SouthWest LatLon `json:"south_west"`
	NorthEast LatLon `json:"north_east"`
}

// Camera holds either a center and zoom or bounds to fit.
type Camera struct {
	Center *LatLon `json:"center,omitempty"`
	Zoom   int     `json:"zoom,omitempty"`
	Bounds *Bounds `json:"bounds,omitempty"`
}

// Scene implements ports.MapView by recording what would be drawn.
type Scene struct {
	Markers []Marker `json:"markers"`
	Path    *Path    `json:"path,omitempty"`
	Area    []LatLon `json:"area,omitempty"`
	Camera  Camera   `json:"camera"`

	// Douglas-Peucker tolerance in degrees for drawn paths; 0 keeps every point.
	Tolerance float64 `json:"-"`
}

func NewScene() *Scene {
	return &Scene{Markers: []Marker{}, Tolerance: defaultTolerance}
}

var _ ports.MapView = (*Scene)(nil)

func (s *Scene) RenderMarker(m ports.Marker) {
	color := m.Color
	if color == "" {
		color = MarkerColor(m.Kind, m.Category)
	}

	s.Markers = append(s.Markers, Marker{
		ID:       m.ID,
		Kind:     string(m.Kind),
		Position: toLatLon(m.Position),
		Label:    m.Label,
		Category: m.Category,
		Color:    color,
		Popup:    m.Popup,
	})
}

func (s *Scene) ClearMarkers() { s.Markers = s.Markers[:0] }

// Draw a route line. The label is anchored at the middle vertex of the
// original path, or at the great-circle midpoint of a two-point path.
func (s *Scene) DrawPath(path []domain.Coordinates, label string) {
	if len(path) == 0 {
		s.Path = nil
		return
	}

	var at domain.Coordinates
	switch len(path) {
	case 1:
		at = path[0]
	case 2:
		at = geo.Midpoint(path[0], path[1])
	default:
		at = path[len(path)/2]
	}

	s.Path = &Path{
		Points:  toLatLons(geo.Simplify(path, s.Tolerance)),
		Color:   routeColor,
		Label:   label,
		LabelAt: toLatLon(at),
	}
}

func (s *Scene) RemovePath() { s.Path = nil }

func (s *Scene) DrawArea(ring []domain.Coordinates) { s.Area = toLatLons(ring) }

func (s *Scene) FitBounds(points []domain.Coordinates) {
	box, ok := geo.Bounds(points, fitPaddingKm)
	if !ok {
		return
	}
	s.Camera = Camera{Bounds: &Bounds{
		SouthWest: toLatLon(box.SouthWest),
		NorthEast: toLatLon(box.NorthEast),
	}}
}

func (s *Scene) Center(c domain.Coordinates, zoom int) {
	center := toLatLon(c)
	s.Camera = Camera{Center: &center, Zoom: zoom}
}

// Color of a marker: fixed colors for route and origin markers, orange for
// promotions, otherwise the category color.
func MarkerColor(kind ports.MarkerKind, category string) string {
	switch kind {
	case ports.MarkerOrigin:
		return originColor
	case ports.MarkerStart:
		return startColor
	case ports.MarkerEnd:
		return endColor
	case ports.MarkerPromotion:
		return promotionColor
	}
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return defaultColor
}
