package scene

import (
	"testing"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

func pt(lat, lon float64) *domain.GeoPoint {
	return &domain.GeoPoint{Lat: lat, Lon: lon}
}

func elements(ops []Op) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = string(op.Action) + ":" + string(op.Element)
	}
	return out
}

func assertOps(t *testing.T, ops []Op, want ...string) {
	t.Helper()
	got := elements(ops)
	if len(got) != len(want) {
		t.Fatalf("expected ops %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ops %v, got %v", want, got)
		}
	}
}

func TestDiff_InitialCampus(t *testing.T) {
	next := State{Origin: pt(-37.7963, 144.9614), RadiusKm: 50}
	ops := Diff(State{}, next, DefaultStyle())

	assertOps(t, ops, "upsert:campus_marker", "upsert:radius_circle", "center:viewport")
	if ops[1].Circle.RadiusMeters != 50000 {
		t.Errorf("expected radius 50000 m, got %v", ops[1].Circle.RadiusMeters)
	}
	if ops[0].Marker.Icon != DefaultStyle().CampusIcon {
		t.Errorf("unexpected campus icon %q", ops[0].Marker.Icon)
	}
	if ops[2].View.Zoom != 10 {
		t.Errorf("expected zoom 10, got %d", ops[2].View.Zoom)
	}
}

func TestDiff_NoChange(t *testing.T) {
	s := State{Origin: pt(-37.7963, 144.9614), RadiusKm: 50, Destination: pt(-37.8136, 144.9631), Eligible: true, DistanceKm: 1.93}
	if ops := Diff(s, s, DefaultStyle()); len(ops) != 0 {
		t.Errorf("expected no ops, got %v", elements(ops))
	}
}

func TestDiff_RadiusOnly(t *testing.T) {
	prev := State{Origin: pt(-37.7963, 144.9614), RadiusKm: 50}
	next := prev
	next.RadiusKm = 75

	ops := Diff(prev, next, DefaultStyle())
	assertOps(t, ops, "upsert:radius_circle")
	if ops[0].Circle.RadiusMeters != 75000 {
		t.Errorf("expected 75000 m, got %v", ops[0].Circle.RadiusMeters)
	}
}

func TestDiff_PostcodeChecked(t *testing.T) {
	prev := State{Origin: pt(-37.7963, 144.9614), RadiusKm: 50}
	next := prev
	next.Destination = pt(-37.8136, 144.9631)
	next.Eligible = true
	next.DistanceKm = 1.93

	ops := Diff(prev, next, DefaultStyle())
	assertOps(t, ops, "upsert:postcode_marker", "fit_bounds:viewport")

	m := ops[0].Marker
	if m.Icon != DefaultStyle().EligibleIcon {
		t.Errorf("expected eligible icon, got %q", m.Icon)
	}
	if m.Info != "Eligible\nDistance: 1.93 km" {
		t.Errorf("unexpected info %q", m.Info)
	}
	b := ops[1].View.Bounds
	if b.MinLat != -37.8136 || b.MaxLat != -37.7963 || b.MinLon != 144.9614 || b.MaxLon != 144.9631 {
		t.Errorf("unexpected bounds %+v", b)
	}
}

func TestDiff_EligibilityFlip(t *testing.T) {
	prev := State{Origin: pt(-37.7963, 144.9614), RadiusKm: 50, Destination: pt(-37.8136, 144.9631), Eligible: true, DistanceKm: 1.93}
	next := prev
	next.RadiusKm = 1
	next.Eligible = false

	ops := Diff(prev, next, DefaultStyle())
	assertOps(t, ops, "upsert:radius_circle", "upsert:postcode_marker")
	if ops[1].Marker.Icon != DefaultStyle().IneligibleIcon {
		t.Errorf("expected ineligible icon, got %q", ops[1].Marker.Icon)
	}
}

func TestDiff_ClearPostcode(t *testing.T) {
	prev := State{Origin: pt(-37.7963, 144.9614), RadiusKm: 50, Destination: pt(-37.8136, 144.9631), Eligible: true}
	next := State{Origin: prev.Origin, RadiusKm: 50}

	ops := Diff(prev, next, DefaultStyle())
	assertOps(t, ops, "remove:postcode_marker", "center:viewport")
}

func TestDiff_CampusMoved(t *testing.T) {
	prev := State{Origin: pt(-37.7963, 144.9614), RadiusKm: 50}
	next := State{Origin: pt(-33.8882, 151.1873), RadiusKm: 50}

	ops := Diff(prev, next, DefaultStyle())
	assertOps(t, ops, "upsert:campus_marker", "upsert:radius_circle", "center:viewport")
	if ops[0].Marker.Position != *next.Origin {
		t.Errorf("marker not moved: %v", ops[0].Marker.Position)
	}
}

func TestDiff_ClearEverything(t *testing.T) {
	prev := State{Origin: pt(-37.7963, 144.9614), RadiusKm: 50, Destination: pt(-37.8136, 144.9631)}
	ops := Diff(prev, State{}, DefaultStyle())
	assertOps(t, ops, "remove:campus_marker", "remove:radius_circle", "remove:postcode_marker")
}

func TestDiff_UsesStyle(t *testing.T) {
	style := Style{CircleStrokeColor: "#000000", EligibleIcon: "pin.png"}.WithDefaults()
	next := State{Origin: pt(0, 0), RadiusKm: 10, Destination: pt(0, 0.01), Eligible: true, DistanceKm: 1.11}

	ops := Diff(State{}, next, style)
	assertOps(t, ops, "upsert:campus_marker", "upsert:radius_circle", "upsert:postcode_marker", "fit_bounds:viewport")
	if ops[1].Circle.StrokeColor != "#000000" {
		t.Errorf("expected custom stroke, got %q", ops[1].Circle.StrokeColor)
	}
	if ops[1].Circle.FillColor != "#3f51b5" {
		t.Errorf("expected default fill, got %q", ops[1].Circle.FillColor)
	}
	if ops[2].Marker.Icon != "pin.png" {
		t.Errorf("expected custom icon, got %q", ops[2].Marker.Icon)
	}
}

func TestStateFromResult(t *testing.T) {
	res := &domain.CheckResult{
		EligibilityResult: domain.EligibilityResult{
			DistanceKm:  1.93,
			IsEligible:  true,
			Origin:      domain.GeoPoint{Lat: -37.7963, Lon: 144.9614},
			Destination: domain.GeoPoint{Lat: -37.8136, Lon: 144.9631},
		},
		RadiusKm: 50,
	}
	s := StateFromResult(res)
	if s.Origin == nil || *s.Origin != res.Origin || s.Destination == nil || *s.Destination != res.Destination {
		t.Fatalf("points not copied: %+v", s)
	}
	if s.RadiusKm != 50 || !s.Eligible || s.DistanceKm != 1.93 {
		t.Errorf("unexpected state %+v", s)
	}
}
