package domain

// SelectionState is derived from which route endpoints are chosen.
type SelectionState int

const (
	SelectionIdle SelectionState = iota
	SelectionPartial
	SelectionReady
)

func (s SelectionState) String() string {
	switch s {
	case SelectionPartial:
		return "partially_selected"
	case SelectionReady:
		return "ready"
	default:
		return "idle"
	}
}

// PickMode tells how the next map click is interpreted.
type PickMode int

const (
	PickNone PickMode = iota
	PickStart
	PickEnd
)

func (m PickMode) String() string {
	switch m {
	case PickStart:
		return "start"
	case PickEnd:
		return "end"
	default:
		return "none"
	}
}

// Route endpoint selection aggregate.
// Start and End are chosen independently; Route is only kept while it
// matches the current pair.
type Selection struct {
	Start *Coordinates
	End   *Coordinates
	Route *Route
	Mode  PickMode
}

func (s *Selection) State() SelectionState {
	switch {
	case s.Start != nil && s.End != nil:
		return SelectionReady
	case s.Start != nil || s.End != nil:
		return SelectionPartial
	default:
		return SelectionIdle
	}
}

// Set the route start, leaving the end unchanged.
func (s *Selection) SetStart(c Coordinates) {
	s.Start = &c
	s.Route = nil
}

// Set the route end, leaving the start unchanged.
func (s *Selection) SetEnd(c Coordinates) {
	s.End = &c
	s.Route = nil
}

// Discard both endpoints, any computed route and the pick mode.
func (s *Selection) Clear() {
	*s = Selection{}
}

// Arm a pick mode. Arming one mode cancels the other.
func (s *Selection) Arm(mode PickMode) {
	s.Mode = mode
}

// Apply a map click according to the armed pick mode and consume the mode.
// It returns which endpoint was set, or PickNone when no mode was armed.
func (s *Selection) HandleMapClick(c Coordinates) PickMode {
	mode := s.Mode
	s.Mode = PickNone

	switch mode {
	case PickStart:
		s.SetStart(c)
	case PickEnd:
		s.SetEnd(c)
	}
	return mode
}

// Store a computed route if the endpoints still match the ones it was
// requested for.
func (s *Selection) ApplyRoute(start, end Coordinates, r Route) bool {
	if s.Start == nil || s.End == nil || *s.Start != start || *s.End != end {
		return false
	}
	s.Route = &r
	return true
}
