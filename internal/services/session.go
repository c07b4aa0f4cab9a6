package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/geo"
	"poi-map-service/internal/platform/obs"
	"poi-map-service/internal/ports"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const focusZoom = 16

var (
	ErrMissingSelection   = errors.New("route needs both a start and an end")
	ErrNoCoordinate       = errors.New("point of interest has no coordinate")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
	ErrInvalidFilter      = errors.New("invalid filter")
)

// Initial camera of a new map.
type View struct {
	Center domain.Coordinates
	Zoom   int
}

// Session is the state of one map: its own copy of the points, the origin
// they are ranked against, the active filter and the route selection.
//
// All methods are safe for concurrent use. Routing calls run without holding
// the session lock.
type Session struct {
	ID string

	mu        sync.Mutex
	catalog   []*domain.PointOfInterest
	ranked    []*domain.PointOfInterest
	origin    *domain.Coordinates
	filter    FilterCriteria
	selection domain.Selection
	overlay   *domain.Route
	focus     *domain.Coordinates
	locateErr error
	view      View
	lastSeen  time.Time
	now       func() time.Time
}

// Point-in-time copy of a session's state.
type Snapshot struct {
	ID            string
	Origin        *domain.Coordinates
	Filter        FilterCriteria
	State         domain.SelectionState
	Mode          domain.PickMode
	Start         *domain.Coordinates
	End           *domain.Coordinates
	Route         *domain.Route
	LocationError error
}

func NewSession(catalog []*domain.PointOfInterest, view View) *Session {
	return newSession(catalog, view, time.Now)
}

func newSession(catalog []*domain.PointOfInterest, view View, now func() time.Time) *Session {
	own := make([]*domain.PointOfInterest, 0, len(catalog))
	for _, p := range catalog {
		c := p.Clone()
		c.DistanceKm = nil
		own = append(own, c)
	}

	return &Session{
		ID:       uuid.NewString(),
		catalog:  own,
		ranked:   append([]*domain.PointOfInterest(nil), own...),
		view:     view,
		lastSeen: now(),
		now:      now,
	}
}

func (s *Session) touch() { s.lastSeen = s.now() }

// Time of the last operation on the session.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:            s.ID,
		Origin:        copyCoords(s.origin),
		Filter:        copyFilter(s.filter),
		State:         s.selection.State(),
		Mode:          s.selection.Mode,
		Start:         copyCoords(s.selection.Start),
		End:           copyCoords(s.selection.End),
		LocationError: s.locateErr,
	}
	if s.selection.Route != nil {
		r := *s.selection.Route
		snap.Route = &r
	}
	return snap
}

// Set the reference point and rank the collection against it.
func (s *Session) SetOrigin(c domain.Coordinates) error {
	if !c.Valid() {
		return fmt.Errorf("set origin: %w", ErrInvalidCoordinates)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.origin = &c
	Rank(s.ranked, s.origin)
	return nil
}

// Remove the origin and every computed distance, restoring load order.
func (s *Session) ClearOrigin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.origin = nil
	for _, p := range s.catalog {
		p.DistanceKm = nil
	}
	s.ranked = append(s.ranked[:0], s.catalog...)
}

// Ask the locator for the current position. On success the position becomes
// both the origin and the route start. On failure nothing but the last
// location error changes.
func (s *Session) ReportLocation(ctx context.Context, locator ports.Locator) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "session.ReportLocation")(&err)

	c, err := locator.Locate(ctx)
	if err == nil && !c.Valid() {
		err = fmt.Errorf("%w: %w", ports.ErrGeolocationUnavailable, ErrInvalidCoordinates)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if err != nil {
		s.locateErr = err
		return domain.Coordinates{}, fmt.Errorf("report location: %w", err)
	}

	s.locateErr = nil
	s.origin = &c
	Rank(s.ranked, s.origin)
	s.selection.SetStart(c)
	return c, nil
}

func (s *Session) SetFilter(c FilterCriteria) error {
	if c.RadiusKm != nil {
		r := *c.RadiusKm
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return fmt.Errorf("set filter: radius %v: %w", r, ErrInvalidFilter)
		}
	}
	c.CategoryID = strings.TrimSpace(c.CategoryID)
	c.Keyword = strings.TrimSpace(c.Keyword)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.filter = copyFilter(c)
	return nil
}

// Return copies of the points passing the active filter, in ranked order.
func (s *Session) Visible() []*domain.PointOfInterest {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	visible := Filter(s.ranked, s.filter, s.origin != nil)
	out := make([]*domain.PointOfInterest, 0, len(visible))
	for _, p := range visible {
		out = append(out, p.Clone())
	}
	return out
}

// Choose a point as the route destination. When an origin is known it also
// becomes the route start.
func (s *Session) SelectPOI(id string) (*domain.PointOfInterest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	var target *domain.PointOfInterest
	for _, p := range s.catalog {
		if p.ID == id {
			target = p
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("select poi %q: %w", id, ErrUnknownPOI)
	}
	if !target.Located() {
		return nil, fmt.Errorf("select poi %q: %w", id, ErrNoCoordinate)
	}

	s.selection.SetEnd(*target.Coordinates)
	if s.origin != nil {
		s.selection.SetStart(*s.origin)
	}
	focus := *target.Coordinates
	s.focus = &focus

	return target.Clone(), nil
}

func (s *Session) SetStart(c domain.Coordinates) error {
	if !c.Valid() {
		return fmt.Errorf("set start: %w", ErrInvalidCoordinates)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.selection.SetStart(c)
	return nil
}

func (s *Session) SetEnd(c domain.Coordinates) error {
	if !c.Valid() {
		return fmt.Errorf("set end: %w", ErrInvalidCoordinates)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.selection.SetEnd(c)
	return nil
}

func (s *Session) ArmPick(mode domain.PickMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.selection.Arm(mode)
}

// Apply a map click to the armed pick mode. It returns which endpoint the
// click set, or PickNone when no mode was armed.
func (s *Session) MapClick(c domain.Coordinates) (domain.PickMode, error) {
	if !c.Valid() {
		return domain.PickNone, fmt.Errorf("map click: %w", ErrInvalidCoordinates)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	return s.selection.HandleMapClick(c), nil
}

// Return to Idle and remove the drawn route.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.selection.Clear()
	s.overlay = nil
	s.focus = nil
}

// Request a route for the selected pair.
//
// Without both endpoints it fails with ErrMissingSelection and the provider
// is not called. Provider errors are returned wrapped and leave the session
// unchanged, including any route drawn earlier. A route that arrives after
// the pair changed is returned but not stored.
func (s *Session) ComputeRoute(ctx context.Context, provider ports.RouteProvider) (_ domain.Route, err error) {
	defer obs.Time(ctx, "session.ComputeRoute")(&err)

	s.mu.Lock()
	s.touch()
	if s.selection.State() != domain.SelectionReady {
		s.mu.Unlock()
		return domain.Route{}, fmt.Errorf("compute route: %w", ErrMissingSelection)
	}
	start, end := *s.selection.Start, *s.selection.End
	s.mu.Unlock()

	r, err := provider.Route(ctx, start, end)
	if err != nil {
		return domain.Route{}, fmt.Errorf("compute route: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection.ApplyRoute(start, end, r) {
		s.overlay = &r
		s.focus = nil
	}
	return r, nil
}

// Draw the current state into view.
func (s *Session) Scene(view ports.MapView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	view.ClearMarkers()
	view.RemovePath()

	for _, p := range Filter(s.ranked, s.filter, s.origin != nil) {
		if p.Located() {
			view.RenderMarker(poiMarker(p))
		}
	}
	if s.origin != nil {
		view.RenderMarker(ports.Marker{ID: "origin", Kind: ports.MarkerOrigin, Position: *s.origin, Label: "Origin"})
	}
	if s.selection.Start != nil {
		view.RenderMarker(ports.Marker{ID: "start", Kind: ports.MarkerStart, Position: *s.selection.Start, Label: "Start"})
	}
	if s.selection.End != nil {
		view.RenderMarker(ports.Marker{ID: "end", Kind: ports.MarkerEnd, Position: *s.selection.End, Label: "End"})
	}

	var area []domain.Coordinates
	if s.origin != nil && s.filter.RadiusKm != nil {
		area = geo.Buffer(*s.origin, *s.filter.RadiusKm, 0)
		view.DrawArea(area)
	}

	switch {
	case s.overlay != nil:
		view.DrawPath(s.overlay.Path, RouteLabel(*s.overlay))
		view.FitBounds(s.overlay.Path)
	case s.focus != nil:
		view.Center(*s.focus, focusZoom)
	case area != nil:
		view.FitBounds(area)
	case s.origin != nil:
		view.Center(*s.origin, s.view.Zoom)
	default:
		view.Center(s.view.Center, s.view.Zoom)
	}
}

// Summary shown on a drawn route: kilometres with two decimals and whole
// minutes.
func RouteLabel(r domain.Route) string {
	return fmt.Sprintf("%.2f km\n%d min", r.DistanceKm(), r.DurationMinutes())
}

func poiMarker(p *domain.PointOfInterest) ports.Marker {
	kind := ports.MarkerPOI
	if p.HasPromotion {
		kind = ports.MarkerPromotion
	}

	category := p.Category
	if category == "" {
		category = "Other"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s | %.1f★", p.Name, category, p.Rating)
	if p.DistanceKm != nil {
		fmt.Fprintf(&b, " | %.2f km", *p.DistanceKm)
	}
	if p.Address != "" {
		fmt.Fprintf(&b, "\n%s", p.Address)
	}
	for _, promo := range p.Promotions {
		fmt.Fprintf(&b, "\n%s", promo)
	}

	return ports.Marker{
		ID:       p.ID,
		Kind:     kind,
		Position: *p.Coordinates,
		Label:    p.Name,
		Category: p.Category,
		Popup:    b.String(),
	}
}

func copyCoords(c *domain.Coordinates) *domain.Coordinates {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

func copyFilter(c FilterCriteria) FilterCriteria {
	if c.RadiusKm != nil {
		r := *c.RadiusKm
		c.RadiusKm = &r
	}
	return c
}
