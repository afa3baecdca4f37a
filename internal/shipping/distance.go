package shipping

import "math"

// Distance returns the great-circle distance in kilometres between two
// coordinate pairs using the haversine formula on a sphere of the given
// radius. It is symmetric and returns 0 for identical points. Coordinate
// range validation is the caller's responsibility.
func Distance(originLat, originLong, destLat, destLong, earthRadiusKm float64) float64 {
	dLat := toRadians(destLat - originLat)
	dLong := toRadians(destLong - originLong)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(originLat))*math.Cos(toRadians(destLat))*
			math.Sin(dLong/2)*math.Sin(dLong/2)

	return earthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
