// Package coverage turns a polygon and a tower list into a sampled
// signal-quality grid with summary statistics.
package coverage

import (
	"math"

	"github.com/signalfield/coverage-cli/internal/geodesy"
	"github.com/signalfield/coverage-cli/internal/model"
)

// BBox is a geographic bounding box.
type BBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// Center returns the center coordinate of the box.
func (b BBox) Center() model.Coordinate {
	return model.Coordinate{Lat: (b.MinLat + b.MaxLat) / 2, Lng: (b.MinLng + b.MaxLng) / 2}
}

// Bounds returns the bounding box of a polygon.
func Bounds(polygon model.Polygon) BBox {
	b := BBox{
		MinLat: math.Inf(1), MaxLat: math.Inf(-1),
		MinLng: math.Inf(1), MaxLng: math.Inf(-1),
	}
	for _, v := range polygon {
		b.MinLat = math.Min(b.MinLat, v.Lat)
		b.MaxLat = math.Max(b.MaxLat, v.Lat)
		b.MinLng = math.Min(b.MinLng, v.Lng)
		b.MaxLng = math.Max(b.MaxLng, v.Lng)
	}
	return b
}

// PointInPolygon reports whether a point lies inside the ring using the
// even-odd ray-casting rule, tracing edges in order.
//
// Boundary behavior is half-open in longitude: the edge test admits
// lng > min(e) && lng <= max(e), so a point exactly on the minimum-longitude
// boundary of a ring reports outside while one on the maximum-longitude
// boundary reports inside. Edges that are vertical in longitude never produce
// a crossing on their own; a point level with an edge endpoint's latitude is
// resolved by the p1.Lat == p2.Lat tie-break so it is not double-counted.
func PointInPolygon(pt model.Coordinate, polygon model.Polygon) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	var xInters float64

	p1 := polygon[0]
	for i := 1; i <= n; i++ {
		p2 := polygon[i%n]
		if pt.Lng > math.Min(p1.Lng, p2.Lng) &&
			pt.Lng <= math.Max(p1.Lng, p2.Lng) &&
			pt.Lat <= math.Max(p1.Lat, p2.Lat) {
			if p1.Lng != p2.Lng {
				xInters = (pt.Lng-p1.Lng)*(p2.Lat-p1.Lat)/(p2.Lng-p1.Lng) + p1.Lat
			}
			if p1.Lat == p2.Lat || pt.Lat <= xInters {
				inside = !inside
			}
		}
		p1 = p2
	}

	return inside
}

// AreaKm2 returns the polygon area in square kilometers using the Shoelace
// formula on raw degree coordinates, converted with the flat-earth factors
// from the geodesy package. The approximation holds only for areas small
// enough that curvature is negligible.
func AreaKm2(polygon model.Polygon) float64 {
	n := len(polygon)
	if n < 3 {
		return 0
	}

	var latSum float64
	for _, v := range polygon {
		latSum += v.Lat
	}
	centerLat := latSum / float64(n)

	latKm := geodesy.KmPerDegreeLat
	lngKm := geodesy.KmPerDegreeLng(centerLat)

	var area float64
	for i := 0; i < n; i++ {
		p1 := polygon[i]
		p2 := polygon[(i+1)%n]
		area += p1.Lng*p2.Lat - p2.Lng*p1.Lat
	}
	area = math.Abs(area) / 2

	// degrees² to km² via the per-degree lengths.
	return area * (latKm / 360) * (lngKm / 360) * 129600
}
