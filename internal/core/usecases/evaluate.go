package usecases

import (
	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/pkg/geospatial"
)

// Distance returns the great-circle distance between a and b in kilometres,
// unrounded. It does not validate its inputs.
func Distance(a, b domain.GeoPoint) float64 {
	return geospatial.HaversineKm(a.Lat, a.Lon, b.Lat, b.Lon)
}

// Evaluate compares the distance from origin to destination against radiusKm.
// The boundary is inclusive on the reported distance, which is rounded to 2
// decimals before the comparison: a radius equal to the unrounded distance
// can come out ineligible when rounding goes up (55.597 km reports 55.60).
// Callers are expected to have validated the inputs.
func Evaluate(origin, destination domain.GeoPoint, radiusKm float64) domain.EligibilityResult {
	d := geospatial.RoundKm(Distance(origin, destination))
	return domain.EligibilityResult{
		DistanceKm:  d,
		IsEligible:  d <= radiusKm,
		Origin:      origin,
		Destination: destination,
	}
}

// EvaluateRequest is Evaluate over an EligibilityRequest.
func EvaluateRequest(req domain.EligibilityRequest) domain.EligibilityResult {
	return Evaluate(req.Origin, req.Destination, req.RadiusKm)
}
