// Package recommend converts coverage gaps into ranked tower-placement
// recommendations: gaps are clustered by proximity, each cluster is scored by
// the population its combined area represents, and the best sites are
// returned in priority order.
//
// Clustering is a single-pass greedy grouping and is order-sensitive: a gap
// joins the first cluster whose seed (first member) lies within the
// clustering radius, so the same gap set in a different input order can
// produce different clusters. Callers needing a stable grouping should sort
// their gaps before calling.
package recommend

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/signalfield/coverage-cli/internal/geodesy"
	"github.com/signalfield/coverage-cli/internal/model"
)

const (
	// DefaultClusterRadiusKm groups gaps within this distance of a cluster
	// seed into one site.
	DefaultClusterRadiusKm = 2.0

	// DefaultPopulationDensity is the assumed population per km² of gap
	// area. A fixed domain assumption, not a fitted value.
	DefaultPopulationDensity = 500.0

	// typicalCoverageRadiusKm is the nominal reach of a single macro tower,
	// used to cap population estimates for small gaps.
	typicalCoverageRadiusKm = 3.5

	maxRecommendationLimit = 20
)

// Engine generates tower-placement recommendations from gap zones. The zero
// value is not useful; use NewEngine.
type Engine struct {
	ClusterRadiusKm   float64
	PopulationDensity float64
}

// NewEngine returns an engine with the default clustering radius and
// population density.
func NewEngine() *Engine {
	return &Engine{
		ClusterRadiusKm:   DefaultClusterRadiusKm,
		PopulationDensity: DefaultPopulationDensity,
	}
}

// cluster is a transient grouping of gaps during one Generate call.
type cluster struct {
	id      int
	members []model.GapZone
}

// Generate clusters the gaps, scores one candidate site per cluster, and
// returns up to max recommendations ordered by priority then score. An empty
// gap list yields an empty result. max is clamped to [1, 20].
func (e *Engine) Generate(gaps []model.GapZone, max int) []model.Recommendation {
	if len(gaps) == 0 {
		return []model.Recommendation{}
	}
	if max < 1 {
		max = 1
	}
	if max > maxRecommendationLimit {
		max = maxRecommendationLimit
	}

	clusters := e.clusterGaps(gaps)

	recs := make([]model.Recommendation, 0, len(clusters))
	for _, c := range clusters {
		centroid, totalArea := centroid(c.members)

		score := math.Min(totalArea*(e.PopulationDensity/100), 10.0)

		recs = append(recs, model.Recommendation{
			Position:          centroid,
			Score:             score,
			Priority:          priorityFor(score),
			PopulationReached: e.populationReached(totalArea),
			GapCount:          len(c.members),
			ClusterID:         c.id,
			Reason:            fmt.Sprintf("%d gap(s) covering %.2f km²", len(c.members), totalArea),
		})
	}

	// Priority dominates; score breaks ties within a tier.
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority.Rank() != recs[j].Priority.Rank() {
			return recs[i].Priority.Rank() < recs[j].Priority.Rank()
		}
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > max {
		recs = recs[:max]
	}

	zap.L().Debug("recommend: generated recommendations",
		zap.Int("gaps", len(gaps)),
		zap.Int("clusters", len(clusters)),
		zap.Int("returned", len(recs)),
	)

	return recs
}

// clusterGaps groups gaps in input order: each unassigned gap seeds a new
// cluster and absorbs every later unassigned gap within the clustering radius
// of the seed (not the evolving centroid).
func (e *Engine) clusterGaps(gaps []model.GapZone) []cluster {
	assigned := make([]bool, len(gaps))
	var clusters []cluster

	for i, seed := range gaps {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		c := cluster{id: len(clusters), members: []model.GapZone{seed}}

		for j := i + 1; j < len(gaps); j++ {
			if assigned[j] {
				continue
			}
			if geodesy.Haversine(seed.Position, gaps[j].Position) <= e.ClusterRadiusKm {
				c.members = append(c.members, gaps[j])
				assigned[j] = true
			}
		}
		clusters = append(clusters, c)
	}

	return clusters
}

// centroid returns the arithmetic mean position of the members (not
// area-weighted) and their combined area.
func centroid(members []model.GapZone) (model.Coordinate, float64) {
	var latSum, lngSum, areaSum float64
	for _, g := range members {
		latSum += g.Position.Lat
		lngSum += g.Position.Lng
		areaSum += g.AreaKm2
	}
	n := float64(len(members))
	return model.Coordinate{Lat: latSum / n, Lng: lngSum / n}, areaSum
}

// populationReached estimates the population served by a tower placed on the
// cluster. The estimate is capped proportionally when the gap area is smaller
// than a typical single-tower footprint.
func (e *Engine) populationReached(areaKm2 float64) int {
	typicalArea := math.Pi * typicalCoverageRadiusKm * typicalCoverageRadiusKm
	ratio := math.Min(areaKm2/typicalArea, 1.0)
	if ratio < 0 {
		ratio = 0
	}
	return int(e.PopulationDensity * typicalArea * ratio)
}

// priorityFor maps a score to its priority band.
func priorityFor(score float64) model.Priority {
	switch {
	case score > 5:
		return model.PriorityHigh
	case score >= 2:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
