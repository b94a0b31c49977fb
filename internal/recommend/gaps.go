package recommend

import "github.com/signalfield/coverage-cli/internal/model"

// GapZonesFromGrid extracts gap zones from a coverage grid: every grid point
// whose signal falls below thresholdDBm becomes a gap covering one grid cell
// (stepKm squared). This is the bridge from coverage analysis to the
// recommendation engine.
func GapZonesFromGrid(grid []model.GridPoint, thresholdDBm, stepKm float64) []model.GapZone {
	cellArea := stepKm * stepKm

	var gaps []model.GapZone
	for _, p := range grid {
		if p.SignalDBm < thresholdDBm {
			gaps = append(gaps, model.GapZone{Position: p.Position, AreaKm2: cellArea})
		}
	}
	return gaps
}
