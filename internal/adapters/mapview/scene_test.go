package mapview

import (
	"encoding/json"
	"math"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
	"testing"
)

func TestRenderMarkerColors(t *testing.T) {
	s := NewScene()
	s.RenderMarker(ports.Marker{ID: "a", Kind: ports.MarkerPOI, Category: "Phở"})
	s.RenderMarker(ports.Marker{ID: "b", Kind: ports.MarkerPOI, Category: "Bánh mì"})
	s.RenderMarker(ports.Marker{ID: "c", Kind: ports.MarkerPromotion, Category: "Phở"})
	s.RenderMarker(ports.Marker{ID: "start", Kind: ports.MarkerStart})
	s.RenderMarker(ports.Marker{ID: "end", Kind: ports.MarkerEnd})
	s.RenderMarker(ports.Marker{ID: "origin", Kind: ports.MarkerOrigin})

	want := []string{"#e74c3c", defaultColor, promotionColor, startColor, endColor, originColor}
	for i, w := range want {
		if s.Markers[i].Color != w {
			t.Fatalf("marker %s color = %q, want %q", s.Markers[i].ID, s.Markers[i].Color, w)
		}
	}

	s.ClearMarkers()
	if len(s.Markers) != 0 {
		t.Fatalf("got %d markers after clear", len(s.Markers))
	}
}

func TestDrawPathLabelPosition(t *testing.T) {
	s := NewScene()

	path := []domain.Coordinates{{Lat: 10, Lon: 106}, {Lat: 10.01, Lon: 106.01}, {Lat: 10.02, Lon: 106.05}}
	s.DrawPath(path, "1.00 km\n3 min")
	if s.Path == nil || s.Path.LabelAt != (LatLon{Lat: 10.01, Lon: 106.01}) {
		t.Fatalf("label at = %+v, want middle vertex", s.Path)
	}

	s.DrawPath(path[:2], "x")
	if math.Abs(s.Path.LabelAt.Lat-10.005) > 1e-6 || math.Abs(s.Path.LabelAt.Lon-106.005) > 1e-6 {
		t.Fatalf("label at = %+v, want midpoint", s.Path.LabelAt)
	}

	s.RemovePath()
	if s.Path != nil {
		t.Fatal("path should be removed")
	}
}

func TestCameraAndJSON(t *testing.T) {
	s := NewScene()
	s.Center(domain.Coordinates{Lat: 10.78, Lon: 106.7}, 13)
	if s.Camera.Center == nil || s.Camera.Zoom != 13 || s.Camera.Bounds != nil {
		t.Fatalf("camera = %+v", s.Camera)
	}

	s.FitBounds([]domain.Coordinates{{Lat: 10.7, Lon: 106.6}, {Lat: 10.8, Lon: 106.7}})
	b := s.Camera.Bounds
	if b == nil || s.Camera.Center != nil {
		t.Fatalf("camera = %+v, want bounds only", s.Camera)
	}
	if b.SouthWest.Lat >= 10.7 || b.NorthEast.Lon <= 106.7 {
		t.Fatalf("bounds %+v not padded", b)
	}

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["markers"]; !ok {
		t.Fatalf("scene json missing markers: %s", raw)
	}
	if _, ok := decoded["Tolerance"]; ok {
		t.Fatalf("tolerance should not be serialised: %s", raw)
	}
}
