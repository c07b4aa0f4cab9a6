package domain

// Represents a driving route returned by a routing provider.
// Path is the ordered geometry from start to end.
// It is immutable once returned and carries no provider-specific state.
type Route struct {
	Path            []Coordinates
	DistanceMeters  float64
	DurationSeconds float64
}

// Return the route length in kilometers.
func (r Route) DistanceKm() float64 { return r.DistanceMeters / 1000 }

// Return the route duration rounded to whole minutes.
func (r Route) DurationMinutes() int {
	return int(r.DurationSeconds/60 + 0.5)
}
