// internal/deck/distance.go
package deck

import "math"

const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance between two lat/lng points in
// kilometers using the haversine formula. NaN inputs propagate NaN; callers
// validate coordinates before calling.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
