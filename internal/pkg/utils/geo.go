package utils

import "math"

const earthRadiusMeters = 6371000

// Fence is a circular check-in area.
type Fence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the haversine great-circle distance in meters.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Pow(math.Sin(dLng/2), 2)

	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// MatchFence returns the index of the nearest fence containing the point,
// or -1 when the point is outside all of them.
func MatchFence(lat, lng float64, fences []Fence) int {
	best, bestDistance := -1, math.Inf(1)
	for i, f := range fences {
		d := Distance(lat, lng, f.Latitude, f.Longitude)
		if d <= f.RadiusMeters && d < bestDistance {
			best, bestDistance = i, d
		}
	}
	return best
}
