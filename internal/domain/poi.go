package domain

// Represents a restaurant or store shown on the map.
// Coordinates is nil when the data source has no usable position.
// DistanceKm stays nil until the point is ranked against an origin and is
// overwritten on every re-rank; nothing else mutates a loaded point.
type PointOfInterest struct {
	ID           string
	Name         string
	CategoryID   string
	Category     string
	Address      string
	Rating       float64
	PriceLevel   int
	HasPromotion bool
	Promotions   []string
	Coordinates  *Coordinates
	DistanceKm   *float64
}

// Return a deep copy so sessions can rank their own collection.
func (p *PointOfInterest) Clone() *PointOfInterest {
	out := *p
	if p.Coordinates != nil {
		c := *p.Coordinates
		out.Coordinates = &c
	}
	if p.DistanceKm != nil {
		d := *p.DistanceKm
		out.DistanceKm = &d
	}
	if p.Promotions != nil {
		out.Promotions = append([]string(nil), p.Promotions...)
	}
	return &out
}

// Report whether the point carries a valid position.
func (p *PointOfInterest) Located() bool {
	return p.Coordinates != nil && p.Coordinates.Valid()
}

type Category struct {
	ID   string
	Name string
}
