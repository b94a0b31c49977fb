// Package geodesy holds the distance and degree/kilometer conversions shared
// by the coverage and recommendation packages.
//
// Conversions between degrees and kilometers use a local flat-earth
// approximation: 1 degree of latitude is 111 km, and 1 degree of longitude is
// 111*cos(lat) km. This is only valid for areas small enough that curvature
// is negligible; it is kept deliberately (same constants everywhere) so that
// area, grid, and gap figures stay mutually consistent.
package geodesy

import (
	"math"

	"github.com/signalfield/coverage-cli/internal/model"
)

// EarthRadiusKm is the mean Earth radius used by the haversine distance.
const EarthRadiusKm = 6371.0

// KmPerDegreeLat is the flat-earth length of one degree of latitude.
const KmPerDegreeLat = 111.0

// KmPerDegreeLng returns the flat-earth length of one degree of longitude at
// the given latitude.
func KmPerDegreeLng(latDeg float64) float64 {
	return KmPerDegreeLat * math.Cos(latDeg*math.Pi/180)
}

// Haversine returns the great-circle distance between two coordinates in
// kilometers.
func Haversine(a, b model.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// StepDegrees converts a grid step in kilometers to angular steps at the
// given center latitude.
func StepDegrees(stepKm, centerLatDeg float64) (latStep, lngStep float64) {
	return stepKm / KmPerDegreeLat, stepKm / KmPerDegreeLng(centerLatDeg)
}
