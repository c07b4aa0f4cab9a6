// Package geo holds the spherical-earth math used for ranking and the map
// toolbox. All angles are in degrees and distances in kilometers.
package geo

import (
	"math"
	"poi-map-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius of the spherical model.
const EarthRadiusKm = 6371.0

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// DistanceKm returns the great-circle distance between a and b using the
// Haversine formula. Inputs are not range checked.
func DistanceKm(a, b domain.Coordinates) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*sinLon*sinLon
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bearing returns the initial bearing from a to b in degrees, 0 = north,
// normalised to [0, 360).
func Bearing(a, b domain.Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Mod(toDegrees(math.Atan2(y, x))+360, 360)
	if deg >= 360 {
		deg = 0
	}
	return deg
}

var compassPoints = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassPoint maps a bearing to one of eight compass directions.
func CompassPoint(bearing float64) string {
	b := math.Mod(math.Mod(bearing, 360)+360, 360)
	return compassPoints[int((b+22.5)/45)%len(compassPoints)]
}
