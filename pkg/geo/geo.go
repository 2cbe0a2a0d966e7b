// Package geo holds the great-circle math used to derive motion metrics
// from point pairs. All functions are pure; callers validate coordinates.
package geo

import "math"

// EarthRadiusM is the mean Earth radius in meters.
const EarthRadiusM = 6371000.0

// Coord is a plain degree coordinate.
type Coord struct {
	Lat float64
	Lon float64
}

// DistanceMeters returns the haversine great-circle distance between p1 and p2.
func DistanceMeters(p1, p2 Coord) float64 {
	lat1 := deg2rad(p1.Lat)
	lat2 := deg2rad(p2.Lat)
	dLat := deg2rad(p2.Lat - p1.Lat)
	dLon := deg2rad(p2.Lon - p1.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusM * c
}

// BearingDegrees returns the initial forward azimuth from p1 toward p2,
// degrees clockwise from true north, normalized into [0,360).
func BearingDegrees(p1, p2 Coord) float64 {
	lat1 := deg2rad(p1.Lat)
	lat2 := deg2rad(p2.Lat)
	dLon := deg2rad(p2.Lon - p1.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	theta := math.Atan2(y, x)

	return math.Mod(rad2deg(theta)+360.0, 360.0)
}

func deg2rad(deg float64) float64 { return deg * math.Pi / 180.0 }
func rad2deg(rad float64) float64 { return rad * 180.0 / math.Pi }
