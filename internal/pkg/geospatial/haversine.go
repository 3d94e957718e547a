package geospatial

import "math"

// EarthRadiusKm is the mean Earth radius used by every distance in this module.
const EarthRadiusKm = 6371.0

// HaversineKm calculates the great-circle distance in kilometres between two points.
// Inputs are not validated; out-of-range or NaN coordinates yield a meaningless result.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// RoundKm rounds a distance to 2 decimal places for reporting.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// KmToMeters converts kilometres to meters.
func KmToMeters(km float64) float64 {
	return km * 1000
}

// boxPadDeg widens the search box to absorb floating point error at the edge.
const boxPadDeg = 1e-9

// BoundingBox returns the smallest lat/lon box containing every point within
// radiusKm great-circle distance of (lat, lon) on a sphere of EarthRadiusKm.
// Latitudes are clamped to [-90, 90]; longitudes may fall outside [-180, 180]
// when the box crosses the antimeridian.
func BoundingBox(lat, lon, radiusKm float64) (minLat, minLon, maxLat, maxLon float64) {
	angular := radiusKm / EarthRadiusKm // radians
	latDelta := toDeg(angular) + boxPadDeg

	minLat = math.Max(lat-latDelta, -90)
	maxLat = math.Min(lat+latDelta, 90)

	// widest longitude of the cap is asin(sin δ / cos φ)
	lonDelta := 180.0
	if s, c := math.Sin(angular), math.Cos(toRad(lat)); angular < math.Pi/2 && s < c &&
		minLat > -90 && maxLat < 90 {
		lonDelta = math.Min(toDeg(math.Asin(s/c))+boxPadDeg, 180)
	}
	return minLat, lon - lonDelta, maxLat, lon + lonDelta
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
