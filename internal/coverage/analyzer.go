package coverage

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/signalfield/coverage-cli/internal/geodesy"
	"github.com/signalfield/coverage-cli/internal/model"
	"github.com/signalfield/coverage-cli/internal/propagation"
)

// Stats summarizes one coverage analysis.
type Stats struct {
	CoveragePct     float64  `json:"coverage_pct"`
	GapAreaKm2      float64  `json:"gap_area_km2"`
	TotalAreaKm2    float64  `json:"total_area_km2"`
	AvgSignalDBm    *float64 `json:"avg_signal_dbm"`
	MinSignalDBm    *float64 `json:"min_signal_dbm"`
	MaxSignalDBm    *float64 `json:"max_signal_dbm"`
	MedianSignalDBm *float64 `json:"median_signal_dbm"`
	PointsAnalyzed  int      `json:"grid_points_analyzed"`
	PointsCovered   int      `json:"grid_points_covered"`
}

// Result is the grid plus statistics of one analysis.
type Result struct {
	Grid  []model.GridPoint `json:"grid"`
	Stats Stats             `json:"stats"`
}

// Analyzer estimates coverage over polygons. It is stateless apart from its
// configuration and safe for concurrent use.
type Analyzer struct {
	// Profile is the reference transmitter/receiver profile applied to every
	// tower during signal estimation.
	Profile propagation.Profile

	// UseTowerFrequency substitutes a tower's own frequency for the profile
	// reference when the tower record carries one.
	UseTowerFrequency bool
}

// NewAnalyzer returns an analyzer with the given reference profile.
func NewAnalyzer(profile propagation.Profile) *Analyzer {
	return &Analyzer{Profile: profile}
}

// Analyze samples the polygon interior on a grid, estimates the signal at
// each point from its closest matching tower, and accumulates coverage
// statistics against thresholdDBm.
//
// If operator is non-empty, only towers of that operator are considered. If
// no tower matches, the result is an empty grid with zeroed statistics, not
// an error.
//
// The nearest-tower search is a full scan per grid point, O(grid x towers).
// That is fine for interactive map extents; callers sweeping large regions or
// big tower inventories should pre-index towers spatially before calling.
func (a *Analyzer) Analyze(polygon model.Polygon, towers []model.Tower, operator string, thresholdDBm, stepKm float64) (*Result, error) {
	if err := polygon.Validate(); err != nil {
		return nil, err
	}
	if stepKm <= 0 {
		return nil, eris.Wrapf(model.ErrDomain, "coverage: grid step must be positive, got %g km", stepKm)
	}

	matched := filterByOperator(towers, operator)
	if len(matched) == 0 {
		return &Result{Grid: []model.GridPoint{}}, nil
	}

	bounds := Bounds(polygon)
	totalArea := AreaKm2(polygon)
	candidates := GenerateGrid(bounds, stepKm)

	var (
		grid    []model.GridPoint
		signals []float64
		covered int
	)

	for _, pt := range candidates {
		if !PointInPolygon(pt, polygon) {
			continue
		}

		nearest, distKm := closestTower(pt, matched)

		prof := a.Profile
		if a.UseTowerFrequency && nearest.FrequencyMHz != nil {
			prof.FrequencyMHz = *nearest.FrequencyMHz
		}
		signal := propagation.SignalFromTower(distKm, prof)

		if signal >= thresholdDBm {
			covered++
		}
		signals = append(signals, signal)
		grid = append(grid, model.GridPoint{
			Position:  pt,
			SignalDBm: signal,
			Quality:   model.QualityFor(signal),
		})
	}

	res := &Result{Grid: grid, Stats: Stats{TotalAreaKm2: totalArea, PointsAnalyzed: len(signals), PointsCovered: covered}}
	if len(signals) > 0 {
		res.Stats.CoveragePct = float64(covered) / float64(len(signals)) * 100

		avg := stat.Mean(signals, nil)
		lo := floats.Min(signals)
		hi := floats.Max(signals)
		sorted := append([]float64(nil), signals...)
		sort.Float64s(sorted)
		med := stat.Quantile(0.5, stat.Empirical, sorted, nil)

		res.Stats.AvgSignalDBm = &avg
		res.Stats.MinSignalDBm = &lo
		res.Stats.MaxSignalDBm = &hi
		res.Stats.MedianSignalDBm = &med
	}
	res.Stats.GapAreaKm2 = totalArea * (1 - res.Stats.CoveragePct/100)

	zap.L().Debug("coverage: analysis complete",
		zap.Int("towers", len(matched)),
		zap.Int("points_analyzed", res.Stats.PointsAnalyzed),
		zap.Int("points_covered", covered),
		zap.Float64("coverage_pct", res.Stats.CoveragePct),
		zap.Float64("total_area_km2", totalArea),
	)

	return res, nil
}

// filterByOperator returns the towers matching the operator filter; an empty
// filter matches everything.
func filterByOperator(towers []model.Tower, operator string) []model.Tower {
	if operator == "" {
		return towers
	}
	var out []model.Tower
	for _, t := range towers {
		if t.Operator == operator {
			out = append(out, t)
		}
	}
	return out
}

// closestTower returns the tower nearest to pt by great-circle distance.
// The caller guarantees towers is non-empty.
func closestTower(pt model.Coordinate, towers []model.Tower) (model.Tower, float64) {
	best := towers[0]
	bestDist := math.Inf(1)
	for _, t := range towers {
		if d := geodesy.Haversine(pt, t.Position); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best, bestDist
}
