// Package scene plans map updates as explicit operations. Given the previous
// and next map state it emits the minimal list of upserts and removals a
// renderer has to apply; it never touches a map itself.
package scene

import (
	"fmt"

	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/pkg/geospatial"
)

// Element names a map object.
type Element string

const (
	CampusMarker   Element = "campus_marker"
	RadiusCircle   Element = "radius_circle"
	PostcodeMarker Element = "postcode_marker"
	Viewport       Element = "viewport"
)

// Action is what a renderer does with an element.
type Action string

const (
	Upsert    Action = "upsert"
	Remove    Action = "remove"
	FitBounds Action = "fit_bounds"
	Center    Action = "center"
)

// Marker describes a map pin.
type Marker struct {
	Position domain.GeoPoint `json:"position"`
	Title    string          `json:"title"`
	Icon     string          `json:"icon"`
	Info     string          `json:"info,omitempty"`
}

// Circle describes the radius overlay.
type Circle struct {
	Center        domain.GeoPoint `json:"center"`
	RadiusMeters  float64         `json:"radius_meters"`
	StrokeColor   string          `json:"stroke_color"`
	StrokeOpacity float64         `json:"stroke_opacity"`
	StrokeWeight  int             `json:"stroke_weight"`
	FillColor     string          `json:"fill_color"`
	FillOpacity   float64         `json:"fill_opacity"`
}

// View positions the map.
type View struct {
	Center *domain.GeoPoint `json:"center,omitempty"`
	Zoom   int              `json:"zoom,omitempty"`
	Bounds *domain.Bounds   `json:"bounds,omitempty"`
}

// Op is a single renderer instruction.
type Op struct {
	Action  Action  `json:"action"`
	Element Element `json:"element"`
	Marker  *Marker `json:"marker,omitempty"`
	Circle  *Circle `json:"circle,omitempty"`
	View    *View   `json:"view,omitempty"`
}

// State is everything the map shows. A nil Origin means no campus is
// selected; a nil Destination means no postcode has been checked.
type State struct {
	Origin      *domain.GeoPoint `json:"origin,omitempty"`
	RadiusKm    float64          `json:"radius_km"`
	Destination *domain.GeoPoint `json:"destination,omitempty"`
	Eligible    bool             `json:"eligible"`
	DistanceKm  float64          `json:"distance_km"`
}

// StateFromResult builds the map state for an evaluated check.
func StateFromResult(res *domain.CheckResult) State {
	origin, dest := res.Origin, res.Destination
	return State{
		Origin:      &origin,
		RadiusKm:    res.RadiusKm,
		Destination: &dest,
		Eligible:    res.IsEligible,
		DistanceKm:  res.DistanceKm,
	}
}

// Diff returns the operations that turn prev into next. Ops are ordered:
// campus marker, radius circle, postcode marker, viewport.
func Diff(prev, next State, style Style) []Op {
	var ops []Op

	originChanged := !samePoint(prev.Origin, next.Origin)
	destChanged := !samePoint(prev.Destination, next.Destination)

	// Campus marker and radius circle
	switch {
	case next.Origin == nil:
		if prev.Origin != nil {
			ops = append(ops,
				Op{Action: Remove, Element: CampusMarker},
				Op{Action: Remove, Element: RadiusCircle},
			)
		}
	default:
		if originChanged {
			ops = append(ops, Op{Action: Upsert, Element: CampusMarker, Marker: &Marker{
				Position: *next.Origin,
				Title:    "Campus Location",
				Icon:     style.CampusIcon,
			}})
		}
		if originChanged || prev.RadiusKm != next.RadiusKm {
			ops = append(ops, Op{Action: Upsert, Element: RadiusCircle, Circle: &Circle{
				Center:        *next.Origin,
				RadiusMeters:  geospatial.KmToMeters(next.RadiusKm),
				StrokeColor:   style.CircleStrokeColor,
				StrokeOpacity: style.CircleStrokeOpacity,
				StrokeWeight:  style.CircleStrokeWeight,
				FillColor:     style.CircleFillColor,
				FillOpacity:   style.CircleFillOpacity,
			}})
		}
	}

	// Postcode marker
	switch {
	case next.Destination == nil:
		if prev.Destination != nil {
			ops = append(ops, Op{Action: Remove, Element: PostcodeMarker})
		}
	case destChanged || prev.Eligible != next.Eligible || prev.DistanceKm != next.DistanceKm:
		icon, label := style.IneligibleIcon, "Not Eligible"
		if next.Eligible {
			icon, label = style.EligibleIcon, "Eligible"
		}
		ops = append(ops, Op{Action: Upsert, Element: PostcodeMarker, Marker: &Marker{
			Position: *next.Destination,
			Title:    "Postcode Location",
			Icon:     icon,
			Info:     fmt.Sprintf("%s\nDistance: %.2f km", label, next.DistanceKm),
		}})
	}

	// Viewport
	if next.Origin != nil && (originChanged || destChanged) {
		if next.Destination != nil {
			b := domain.BoundsOf(*next.Origin, *next.Destination)
			ops = append(ops, Op{Action: FitBounds, Element: Viewport, View: &View{Bounds: &b}})
		} else {
			center := *next.Origin
			ops = append(ops, Op{Action: Center, Element: Viewport, View: &View{Center: &center, Zoom: style.DefaultZoom}})
		}
	}

	return ops
}

func samePoint(a, b *domain.GeoPoint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
