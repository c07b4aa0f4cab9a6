package dto

type DistanceResponse struct {
	From       LatLon  `json:"from"`
	To         LatLon  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
}

type BearingResponse struct {
	From       LatLon  `json:"from"`
	To         LatLon  `json:"to"`
	BearingDeg float64 `json:"bearing_deg"`
	Compass    string  `json:"compass"`
}

type PointResponse struct {
	Point LatLon `json:"point"`
}

type NearestResponse struct {
	POI        POIResponse `json:"poi"`
	DistanceKm float64     `json:"distance_km"`
}

type RingResponse struct {
	Ring []LatLon `json:"ring"`
}

type BoundsResponse struct {
	SouthWest LatLon `json:"south_west"`
	NorthEast LatLon `json:"north_east"`
	Center    LatLon `json:"center"`
}

type ContainsResponse struct {
	Inside bool `json:"inside"`
}

type AreaResponse struct {
	AreaKm2 float64 `json:"area_km2"`
}

type PathResponse struct {
	Before int      `json:"before"`
	After  int      `json:"after"`
	Path   []LatLon `json:"path"`
}
