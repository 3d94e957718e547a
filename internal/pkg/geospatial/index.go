package geospatial

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// pointSize is the edge length (degrees) of the rectangle stored for each point.
const pointSize = 1e-9

// Hit is a point found by Index.Within.
type Hit struct {
	ID         string
	Lat        float64
	Lon        float64
	DistanceKm float64
}

type indexItem struct {
	rect rtreego.Rect
	id   string
	lat  float64
	lon  float64
}

func (it *indexItem) Bounds() rtreego.Rect {
	return it.rect
}

// Index is a read-only R-tree over named points, stored as (lon, lat).
// It is safe for concurrent reads once built.
type Index struct {
	tree *rtreego.Rtree
	size int
}

// Entry is a point to be indexed.
type Entry struct {
	ID  string
	Lat float64
	Lon float64
}

// NewIndex builds an index from entries. Entries whose coordinates cannot
// form a rectangle are skipped.
func NewIndex(entries []Entry) *Index {
	// dim = 2 (lon, lat), min node fill 2, max 25
	idx := &Index{tree: rtreego.NewTree(2, 2, 25)}
	for _, e := range entries {
		rect, err := rtreego.NewRect(rtreego.Point{e.Lon, e.Lat}, []float64{pointSize, pointSize})
		if err != nil {
			continue
		}
		idx.tree.Insert(&indexItem{rect: rect, id: e.ID, lat: e.Lat, lon: e.Lon})
		idx.size++
	}
	return idx
}

// Len returns the number of indexed points.
func (idx *Index) Len() int {
	return idx.size
}

// Within returns indexed points whose great-circle distance from (lat, lon)
// is at most radiusKm, nearest first. limit <= 0 means no limit.
func (idx *Index) Within(lat, lon, radiusKm float64, limit int) []Hit {
	if idx.size == 0 || radiusKm < 0 {
		return nil
	}

	seen := make(map[string]bool)
	var hits []Hit
	for _, rect := range searchRects(lat, lon, radiusKm) {
		for _, s := range idx.tree.SearchIntersect(rect) {
			it := s.(*indexItem)
			if seen[it.id] {
				continue
			}
			seen[it.id] = true

			// Exact distance so the result is a circle, not the search square
			km := HaversineKm(lat, lon, it.lat, it.lon)
			if km <= radiusKm {
				hits = append(hits, Hit{ID: it.id, Lat: it.lat, Lon: it.lon, DistanceKm: km})
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].DistanceKm == hits[j].DistanceKm {
			return hits[i].ID < hits[j].ID
		}
		return hits[i].DistanceKm < hits[j].DistanceKm
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// searchRects splits the bounding box at the antimeridian so every rectangle
// lies inside [-180, 180].
func searchRects(lat, lon, radiusKm float64) []rtreego.Rect {
	minLat, minLon, maxLat, maxLon := BoundingBox(lat, lon, radiusKm)

	type span struct{ lo, hi float64 }
	var spans []span
	switch {
	case maxLon-minLon >= 360:
		spans = []span{{-180, 180}}
	case minLon < -180:
		spans = []span{{-180, maxLon}, {minLon + 360, 180}}
	case maxLon > 180:
		spans = []span{{minLon, 180}, {-180, maxLon - 360}}
	default:
		spans = []span{{minLon, maxLon}}
	}

	rects := make([]rtreego.Rect, 0, len(spans))
	for _, s := range spans {
		rect, err := rtreego.NewRect(
			rtreego.Point{s.lo, minLat},
			[]float64{math.Max(s.hi-s.lo, pointSize), math.Max(maxLat-minLat, pointSize)},
		)
		if err != nil {
			continue
		}
		rects = append(rects, rect)
	}
	return rects
}
