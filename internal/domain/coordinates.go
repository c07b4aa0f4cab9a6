package domain

import "math"

// Immutable geographic coordinates in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Report whether the coordinates are finite and inside the WGS84 ranges.
// Zero latitude or longitude is a legitimate position (equator, prime meridian).
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }
