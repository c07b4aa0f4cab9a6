package handlers

import (
	"net/http"
	"poi-map-service/internal/api/dto"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/ports"
	"poi-map-service/internal/services"
	"strings"
)

// LocatorFunc turns a reported browser geolocation outcome into a Locator.
type LocatorFunc func(dto.LocationRequest) ports.Locator

// SessionHandler drives per-map sessions: origin, filtering, route selection
// and routing. NewView must return a JSON-encodable MapView.
type SessionHandler struct {
	Store    *services.SessionStore
	Provider ports.RouteProvider
	Locator  LocatorFunc
	NewView  func() ports.MapView
}

// Resolve the {id} path value to a session, writing a 404 when unknown.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	s, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) writeSession(w http.ResponseWriter, r *http.Request, s *services.Session) {
	writeJSON(w, r, http.StatusOK, dto.FromSnapshot(s.Snapshot()))
}

// Read a required {"lat","lon"} body.
func readCoordinates(w http.ResponseWriter, r *http.Request) (domain.Coordinates, bool) {
	var req dto.CoordinatesRequest
	if !decodeJSON(w, r, &req) {
		return domain.Coordinates{}, false
	}
	c, ok := req.Coordinates()
	if !ok {
		writeError(w, r, http.StatusBadRequest, "lat and lon are required")
		return domain.Coordinates{}, false
	}
	return c, true
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.Store.Create()
	writeJSON(w, r, http.StatusCreated, dto.FromSnapshot(s.Snapshot()))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeSession(w, r, s)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.Store.Delete(r.PathValue("id")) {
		writeServiceError(w, r, services.ErrUnknownSession)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) SetOrigin(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	c, ok := readCoordinates(w, r)
	if !ok {
		return
	}
	if err := s.SetOrigin(c); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeSession(w, r, s)
}

func (h *SessionHandler) ClearOrigin(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ClearOrigin()
	h.writeSession(w, r, s)
}

// ReportLocation accepts the outcome of a browser geolocation attempt.
func (h *SessionHandler) ReportLocation(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.LocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.ReportLocation(r.Context(), h.Locator(req)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeSession(w, r, s)
}

func (h *SessionHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.FilterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.SetFilter(req.Criteria()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeSession(w, r, s)
}

func (h *SessionHandler) Visible(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.FromPOIs(s.Visible()))
}

func (h *SessionHandler) SelectPOI(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	p, err := s.SelectPOI(r.PathValue("poiID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.SelectResponse{POI: dto.FromPOI(p), Session: dto.FromSnapshot(s.Snapshot())})
}

func (h *SessionHandler) SetStart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	c, ok := readCoordinates(w, r)
	if !ok {
		return
	}
	if err := s.SetStart(c); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeSession(w, r, s)
}

func (h *SessionHandler) SetEnd(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	c, ok := readCoordinates(w, r)
	if !ok {
		return
	}
	if err := s.SetEnd(c); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeSession(w, r, s)
}

// ArmPick sets how the next map click is used: "start", "end" or "none".
func (h *SessionHandler) ArmPick(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.PickRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var mode domain.PickMode
	switch strings.ToLower(strings.TrimSpace(req.Mode)) {
	case "start":
		mode = domain.PickStart
	case "end":
		mode = domain.PickEnd
	case "none", "":
		mode = domain.PickNone
	default:
		writeError(w, r, http.StatusBadRequest, "mode must be start, end or none")
		return
	}

	s.ArmPick(mode)
	h.writeSession(w, r, s)
}

func (h *SessionHandler) MapClick(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	c, ok := readCoordinates(w, r)
	if !ok {
		return
	}

	set, err := s.MapClick(c)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ClickResponse{Set: set.String(), Session: dto.FromSnapshot(s.Snapshot())})
}

func (h *SessionHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ClearSelection()
	h.writeSession(w, r, s)
}

func (h *SessionHandler) ComputeRoute(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	route, err := s.ComputeRoute(r.Context(), h.Provider)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.FromRoute(route))
}

// Scene returns what the client map should draw for the session.
func (h *SessionHandler) Scene(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	view := h.NewView()
	s.Scene(view)
	writeJSON(w, r, http.StatusOK, view)
}
