package domain

import "time"

// Campus is a named reference location used as the origin of a check.
type Campus struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location GeoPoint `json:"location"`
	Distance float64  `json:"distance_km,omitempty"` // populated by nearby queries
}

// Postcode is a postal code resolved to a location.
type Postcode struct {
	Code     string   `json:"postcode"`
	Place    string   `json:"place,omitempty"`
	State    string   `json:"state,omitempty"`
	Location GeoPoint `json:"location"`
}

// RadiusRange describes the selectable radius values in kilometres.
type RadiusRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Options lists every selectable value from Min to Max inclusive.
func (r RadiusRange) Options() []float64 {
	if r.Step <= 0 || r.Max < r.Min {
		return []float64{r.Min}
	}
	var out []float64
	for v := r.Min; v <= r.Max+1e-9; v += r.Step {
		out = append(out, v)
	}
	return out
}

// Clamp forces v into [Min, Max].
func (r RadiusRange) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// EligibilityRequest is a single distance check.
type EligibilityRequest struct {
	Origin      GeoPoint `json:"origin"`
	Destination GeoPoint `json:"destination"`
	RadiusKm    float64  `json:"radius_km"`
}

// EligibilityResult is derived deterministically from an EligibilityRequest.
type EligibilityResult struct {
	DistanceKm  float64  `json:"distance_km"`
	IsEligible  bool     `json:"is_eligible"`
	Origin      GeoPoint `json:"origin"`
	Destination GeoPoint `json:"destination"`
}

// CheckResult is an evaluated postcode check as returned to clients.
type CheckResult struct {
	EligibilityResult
	RadiusKm  float64   `json:"radius_km"`
	Postcode  *Postcode `json:"postcode,omitempty"`
	Campus    *Campus   `json:"campus,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// CheckEvent is the notification published after each check.
type CheckEvent struct {
	CampusID   string    `json:"campus_id,omitempty"`
	Postcode   string    `json:"postcode,omitempty"`
	RadiusKm   float64   `json:"radius_km"`
	DistanceKm float64   `json:"distance_km"`
	IsEligible bool      `json:"is_eligible"`
	CheckedAt  time.Time `json:"checked_at"`
}
