// Package model defines the value types shared by the propagation, coverage,
// and recommendation packages. All types are plain immutable records: the
// core never mutates its inputs, and results are safe to retain.
package model

import "github.com/rotisserie/eris"

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Validate checks that the coordinate lies within valid WGS84 ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return eris.Wrapf(ErrDomain, "model: latitude %g out of range [-90, 90]", c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return eris.Wrapf(ErrDomain, "model: longitude %g out of range [-180, 180]", c.Lng)
	}
	return nil
}

// Polygon is an ordered ring of vertices, implicitly closed (the last vertex
// connects back to the first). Area and containment results are only
// meaningful for simple (non-self-intersecting) rings; this is a caller
// precondition and is not enforced.
type Polygon []Coordinate

// Validate checks the minimum vertex count. Rings with fewer than three
// vertices cannot enclose area.
func (p Polygon) Validate() error {
	if len(p) < 3 {
		return eris.Wrapf(ErrDomain, "model: polygon needs at least 3 vertices, got %d", len(p))
	}
	return nil
}

// Tower is a read-only transmitter site record supplied by the caller.
// FrequencyMHz is optional; the propagation profile supplies a default when
// it is absent.
type Tower struct {
	Position     Coordinate `json:"position" yaml:"position"`
	Operator     string     `json:"operator" yaml:"operator"`
	Technology   Technology `json:"technology" yaml:"technology"`
	FrequencyMHz *float64   `json:"frequency_mhz,omitempty" yaml:"frequency_mhz,omitempty"`
}

// GridPoint is one sampled location of a coverage grid with its estimated
// signal level and quality band.
type GridPoint struct {
	Position  Coordinate `json:"position"`
	SignalDBm float64    `json:"signal_dbm"`
	Quality   Quality    `json:"quality"`
}

// GapZone is a location where estimated signal falls below a usability
// threshold, with the surface it represents. Gap zones are produced from
// coverage grids (or supplied directly) and are never mutated.
type GapZone struct {
	Position Coordinate `json:"position" yaml:"position"`
	AreaKm2  float64    `json:"area_km2" yaml:"area_km2"`
}

// Recommendation is a scored tower-placement proposal at a gap-cluster
// centroid.
type Recommendation struct {
	Position          Coordinate `json:"position"`
	Score             float64    `json:"score"`
	Priority          Priority   `json:"priority"`
	PopulationReached int        `json:"population_reached"`
	GapCount          int        `json:"gap_count"`
	ClusterID         int        `json:"cluster_id"`
	Reason            string     `json:"reason"`
}
