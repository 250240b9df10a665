package geo

import (
	"math"

	"github.com/bitmark-inc/neighbourmatch-api/schema"
)

const earthRadiusKM = 6371.0

// DistanceKM returns the great-circle distance between two coordinates
func DistanceKM(a, b schema.Location) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// ValidLocation tells whether a coordinate is on the globe
func ValidLocation(loc schema.Location) bool {
	return loc.Latitude >= -90 && loc.Latitude <= 90 &&
		loc.Longitude >= -180 && loc.Longitude <= 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
