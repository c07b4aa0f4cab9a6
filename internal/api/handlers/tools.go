package handlers

import (
	"math"
	"net/http"
	"poi-map-service/internal/api/dto"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/geo"
)

// ToolsHandler exposes the geometry helpers over HTTP. Tools that search for
// points (nearest, within_radius) run against the catalog.
type ToolsHandler struct {
	POIs []*domain.PointOfInterest
}

func (h *ToolsHandler) Run(w http.ResponseWriter, r *http.Request) {
	switch tool := r.PathValue("tool"); tool {
	case "distance":
		h.distance(w, r)
	case "bearing":
		h.bearing(w, r)
	case "midpoint":
		h.midpoint(w, r)
	case "nearest":
		h.nearest(w, r)
	case "within_radius":
		h.withinRadius(w, r)
	case "buffer":
		h.buffer(w, r)
	case "centroid":
		h.centroid(w, r)
	case "bounds":
		h.bounds(w, r)
	case "contains":
		h.contains(w, r)
	case "area":
		h.area(w, r)
	case "simplify":
		h.simplify(w, r)
	default:
		writeError(w, r, http.StatusNotFound, "unknown tool "+tool)
	}
}

func (h *ToolsHandler) pair(w http.ResponseWriter, r *http.Request) (domain.Coordinates, domain.Coordinates, bool) {
	from, err := coordParam(r, "from")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.Coordinates{}, domain.Coordinates{}, false
	}
	to, err := coordParam(r, "to")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.Coordinates{}, domain.Coordinates{}, false
	}
	return from, to, true
}

func (h *ToolsHandler) distance(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.pair(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		From:       *dto.FromCoordinates(&from),
		To:         *dto.FromCoordinates(&to),
		DistanceKm: geo.DistanceKm(from, to),
	})
}

func (h *ToolsHandler) bearing(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.pair(w, r)
	if !ok {
		return
	}
	b := geo.Bearing(from, to)
	writeJSON(w, r, http.StatusOK, dto.BearingResponse{
		From:       *dto.FromCoordinates(&from),
		To:         *dto.FromCoordinates(&to),
		BearingDeg: b,
		Compass:    geo.CompassPoint(b),
	})
}

func (h *ToolsHandler) midpoint(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.pair(w, r)
	if !ok {
		return
	}
	mid := geo.Midpoint(from, to)
	writeJSON(w, r, http.StatusOK, dto.PointResponse{Point: *dto.FromCoordinates(&mid)})
}

// Located catalog points and their coordinates, index aligned.
func (h *ToolsHandler) located() ([]*domain.PointOfInterest, []domain.Coordinates) {
	pois := make([]*domain.PointOfInterest, 0, len(h.POIs))
	coords := make([]domain.Coordinates, 0, len(h.POIs))
	for _, p := range h.POIs {
		if p.Located() {
			pois = append(pois, p)
			coords = append(coords, *p.Coordinates)
		}
	}
	return pois, coords
}

func (h *ToolsHandler) nearest(w http.ResponseWriter, r *http.Request) {
	from, err := coordParam(r, "from")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	pois, coords := h.located()
	m, ok := geo.Nearest(from, coords)
	if !ok {
		writeError(w, r, http.StatusNotFound, "no located points")
		return
	}

	p := pois[m.Index].Clone()
	p.DistanceKm = &m.DistanceKm
	writeJSON(w, r, http.StatusOK, dto.NearestResponse{POI: dto.FromPOI(p), DistanceKm: m.DistanceKm})
}

func (h *ToolsHandler) withinRadius(w http.ResponseWriter, r *http.Request) {
	from, err := coordParam(r, "from")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	radius, err := floatParam(r, "radius_km")
	if err != nil || radius == nil || math.IsNaN(*radius) || *radius < 0 {
		writeError(w, r, http.StatusBadRequest, "radius_km must be a non-negative number")
		return
	}

	pois, coords := h.located()
	matches := geo.WithinRadius(from, coords, *radius)

	out := make([]*domain.PointOfInterest, 0, len(matches))
	for _, m := range matches {
		p := pois[m.Index].Clone()
		d := m.DistanceKm
		p.DistanceKm = &d
		out = append(out, p)
	}
	writeJSON(w, r, http.StatusOK, dto.FromPOIs(out))
}

func (h *ToolsHandler) buffer(w http.ResponseWriter, r *http.Request) {
	center, err := coordParam(r, "center")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	radius, err := floatParam(r, "radius_km")
	if err != nil || radius == nil || !finite(*radius) || *radius <= 0 {
		writeError(w, r, http.StatusBadRequest, "radius_km must be a positive number")
		return
	}
	segments, err := intParam(r, "segments", 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RingResponse{Ring: dto.FromPath(geo.Buffer(center, *radius, segments))})
}

// Points from the points parameter, or every located catalog point when the
// parameter is absent.
func (h *ToolsHandler) pointsOrCatalog(w http.ResponseWriter, r *http.Request) ([]domain.Coordinates, bool) {
	points, present, err := pointsParam(r, "points")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if !present {
		_, points = h.located()
	}
	if len(points) == 0 {
		writeError(w, r, http.StatusBadRequest, "no points")
		return nil, false
	}
	return points, true
}

func (h *ToolsHandler) centroid(w http.ResponseWriter, r *http.Request) {
	points, ok := h.pointsOrCatalog(w, r)
	if !ok {
		return
	}
	c, _ := geo.Centroid(points)
	writeJSON(w, r, http.StatusOK, dto.PointResponse{Point: *dto.FromCoordinates(&c)})
}

func (h *ToolsHandler) bounds(w http.ResponseWriter, r *http.Request) {
	points, ok := h.pointsOrCatalog(w, r)
	if !ok {
		return
	}
	pad, err := floatParam(r, "pad_km")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	padKm := 0.0
	if pad != nil {
		if !finite(*pad) || *pad < 0 {
			writeError(w, r, http.StatusBadRequest, "pad_km must be a non-negative number")
			return
		}
		padKm = *pad
	}

	box, _ := geo.Bounds(points, padKm)
	center := box.Center()
	writeJSON(w, r, http.StatusOK, dto.BoundsResponse{
		SouthWest: *dto.FromCoordinates(&box.SouthWest),
		NorthEast: *dto.FromCoordinates(&box.NorthEast),
		Center:    *dto.FromCoordinates(&center),
	})
}

// Polygon ring from the polygon parameter, writing a 400 when it has fewer
// than three vertices.
func polygonParam(w http.ResponseWriter, r *http.Request) ([]domain.Coordinates, bool) {
	polygon, _, err := pointsParam(r, "polygon")
	if err != nil || len(polygon) < 3 {
		writeError(w, r, http.StatusBadRequest, "polygon needs at least three lat,lon points")
		return nil, false
	}
	return polygon, true
}

func (h *ToolsHandler) contains(w http.ResponseWriter, r *http.Request) {
	polygon, ok := polygonParam(w, r)
	if !ok {
		return
	}
	point, err := coordParam(r, "point")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ContainsResponse{Inside: geo.Contains(polygon, point)})
}

func (h *ToolsHandler) area(w http.ResponseWriter, r *http.Request) {
	polygon, ok := polygonParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.AreaResponse{AreaKm2: geo.AreaKm2(polygon)})
}

func (h *ToolsHandler) simplify(w http.ResponseWriter, r *http.Request) {
	path, _, err := pointsParam(r, "path")
	if err != nil || len(path) == 0 {
		writeError(w, r, http.StatusBadRequest, "path needs lat,lon points separated by |")
		return
	}
	tolerance, err := floatParam(r, "tolerance")
	if err != nil || tolerance == nil || !finite(*tolerance) || *tolerance < 0 {
		writeError(w, r, http.StatusBadRequest, "tolerance must be a non-negative number of degrees")
		return
	}

	out := geo.Simplify(path, *tolerance)
	writeJSON(w, r, http.StatusOK, dto.PathResponse{Before: len(path), After: len(out), Path: dto.FromPath(out)})
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
