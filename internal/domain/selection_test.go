package domain

import "testing"

func TestSelectionEndStartClearReturnsToIdle(t *testing.T) {
	var s Selection

	if s.State() != SelectionIdle {
		t.Fatalf("initial state = %v, want idle", s.State())
	}

	s.SetEnd(Coordinates{Lat: 10.78, Lon: 106.70})
	if s.State() != SelectionPartial {
		t.Fatalf("after end state = %v, want partially_selected", s.State())
	}

	s.SetStart(Coordinates{Lat: 10.77, Lon: 106.69})
	if s.State() != SelectionReady {
		t.Fatalf("after start state = %v, want ready", s.State())
	}

	s.Clear()
	if s.State() != SelectionIdle {
		t.Fatalf("after clear state = %v, want idle", s.State())
	}
	if s.Start != nil || s.End != nil || s.Route != nil {
		t.Fatalf("clear left data behind: %+v", s)
	}
}

func TestSelectionSetStartKeepsEnd(t *testing.T) {
	var s Selection
	end := Coordinates{Lat: 1, Lon: 2}
	s.SetEnd(end)
	s.SetStart(Coordinates{Lat: 3, Lon: 4})
	s.SetStart(Coordinates{Lat: 5, Lon: 6})

	if s.End == nil || *s.End != end {
		t.Fatalf("end = %v, want %v", s.End, end)
	}
	if s.Start.Lat != 5 {
		t.Fatalf("start lat = %v, want 5", s.Start.Lat)
	}
}

func TestSelectionPickModesAreExclusive(t *testing.T) {
	var s Selection

	s.Arm(PickEnd)
	s.Arm(PickStart)
	if s.Mode != PickStart {
		t.Fatalf("mode = %v, want start", s.Mode)
	}

	click := Coordinates{Lat: 16.05, Lon: 108.2}
	if got := s.HandleMapClick(click); got != PickStart {
		t.Fatalf("click set %v, want start", got)
	}
	if s.Start == nil || *s.Start != click {
		t.Fatalf("start = %v, want %v", s.Start, click)
	}
	if s.End != nil {
		t.Fatalf("end should be unset, got %v", s.End)
	}
	if s.Mode != PickNone {
		t.Fatalf("mode after click = %v, want none", s.Mode)
	}

	if got := s.HandleMapClick(Coordinates{Lat: 1, Lon: 1}); got != PickNone {
		t.Fatalf("unarmed click set %v, want none", got)
	}
	if *s.Start != click {
		t.Fatalf("unarmed click changed start to %v", s.Start)
	}
}

func TestSelectionApplyRouteRejectsStalePair(t *testing.T) {
	var s Selection
	a := Coordinates{Lat: 1, Lon: 1}
	b := Coordinates{Lat: 2, Lon: 2}
	s.SetStart(a)
	s.SetEnd(b)

	if !s.ApplyRoute(a, b, Route{DistanceMeters: 10}) {
		t.Fatal("expected route to be applied")
	}

	s.SetEnd(Coordinates{Lat: 3, Lon: 3})
	if s.Route != nil {
		t.Fatal("changing an endpoint should drop the route")
	}
	if s.ApplyRoute(a, b, Route{DistanceMeters: 10}) {
		t.Fatal("route for an old pair should not be applied")
	}
}

func TestCoordinatesValid(t *testing.T) {
	if !(Coordinates{Lat: 0, Lon: 0}).Valid() {
		t.Error("equator/prime meridian should be valid")
	}
	if (Coordinates{Lat: 91, Lon: 0}).Valid() {
		t.Error("lat 91 should be invalid")
	}
	if (Coordinates{Lat: 0, Lon: -180.5}).Valid() {
		t.Error("lon -180.5 should be invalid")
	}
}
