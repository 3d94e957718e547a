package domain

import (
	"fmt"
	"math"
)

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate reports ErrInvalidLocation if the point is not a finite
// coordinate inside [-90,90] x [-180,180].
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) {
		return fmt.Errorf("%w: coordinates must be finite numbers", ErrInvalidLocation)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %.6f outside [-90, 90]", ErrInvalidLocation, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %.6f outside [-180, 180]", ErrInvalidLocation, p.Lon)
	}
	return nil
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.Lat, p.Lon)
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Extend grows the box so that it contains p.
func (b Bounds) Extend(p GeoPoint) Bounds {
	return Bounds{
		MinLat: math.Min(b.MinLat, p.Lat),
		MinLon: math.Min(b.MinLon, p.Lon),
		MaxLat: math.Max(b.MaxLat, p.Lat),
		MaxLon: math.Max(b.MaxLon, p.Lon),
	}
}

// BoundsOf returns the smallest box containing every point.
func BoundsOf(first GeoPoint, rest ...GeoPoint) Bounds {
	b := Bounds{MinLat: first.Lat, MinLon: first.Lon, MaxLat: first.Lat, MaxLon: first.Lon}
	for _, p := range rest {
		b = b.Extend(p)
	}
	return b
}
