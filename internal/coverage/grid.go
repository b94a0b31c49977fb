package coverage

import (
	"github.com/signalfield/coverage-cli/internal/geodesy"
	"github.com/signalfield/coverage-cli/internal/model"
)

// GenerateGrid materializes sample coordinates covering a bounding box in a
// row-major sweep: latitude from min to max, longitude from min to max within
// each row. The angular step is derived from stepKm at the box's center
// latitude, so the sequence is finite and reproducible for identical inputs.
func GenerateGrid(b BBox, stepKm float64) []model.Coordinate {
	if stepKm <= 0 {
		return nil
	}

	latStep, lngStep := geodesy.StepDegrees(stepKm, b.Center().Lat)

	var grid []model.Coordinate
	for lat := b.MinLat; lat <= b.MaxLat; lat += latStep {
		for lng := b.MinLng; lng <= b.MaxLng; lng += lngStep {
			grid = append(grid, model.Coordinate{Lat: lat, Lng: lng})
		}
	}
	return grid
}
