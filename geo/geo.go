// Package geo provides great-circle distance helpers used by the
// places normalizer and the location detective.
package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used for all distance math.
const EarthRadiusMiles = 3959.0

// FeetPerMile converts between the two units callers actually use.
const FeetPerMile = 5280.0

// Miles returns the haversine great-circle distance between two points
// in miles. Non-finite inputs are treated as zero so that ranking can
// still complete on junk coordinates.
func Miles(lat1, lon1, lat2, lon2 float64) float64 {
	lat1, lon1 = sanitize(lat1), sanitize(lon1)
	lat2, lon2 = sanitize(lat2), sanitize(lon2)

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

// Feet returns the haversine distance in feet.
func Feet(lat1, lon1, lat2, lon2 float64) float64 {
	return Miles(lat1, lon1, lat2, lon2) * FeetPerMile
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
