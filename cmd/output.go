package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/signalfield/coverage-cli/internal/coverage"
	"github.com/signalfield/coverage-cli/internal/model"
)

// runEnvelope wraps command results with a run ID and timestamp so output
// files from different runs stay distinguishable.
type runEnvelope struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Results     any       `json:"results"`
}

func newEnvelope(results any) runEnvelope {
	return runEnvelope{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Results:     results,
	}
}

// openOutput returns the writer for command output: the given file when path
// is non-empty, fallback otherwise. The returned closer is a no-op for the
// fallback.
func openOutput(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "output: create %s", path)
	}
	return f, f.Close, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "output: encode json")
	}
	return nil
}

// gridToGeoJSON renders a coverage grid as a GeoJSON FeatureCollection of
// points carrying signal and quality properties.
func gridToGeoJSON(grid []model.GridPoint) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{}
	for _, p := range grid {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Position.Lng, p.Position.Lat}),
			Properties: map[string]any{
				"signal_dbm": p.SignalDBm,
				"quality":    string(p.Quality),
			},
		})
	}
	return fc, nil
}

// recommendationsToGeoJSON renders recommendations as a GeoJSON
// FeatureCollection of candidate site points.
func recommendationsToGeoJSON(recs []model.Recommendation) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{}
	for _, r := range recs {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{r.Position.Lng, r.Position.Lat}),
			Properties: map[string]any{
				"score":              r.Score,
				"priority":           string(r.Priority),
				"population_reached": r.PopulationReached,
				"gap_count":          r.GapCount,
				"cluster_id":         r.ClusterID,
				"reason":             r.Reason,
			},
		})
	}
	return fc, nil
}

func writeGeoJSON(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "output: marshal geojson")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return eris.Wrap(err, "output: write geojson")
	}
	return nil
}

func printStats(w io.Writer, s coverage.Stats) {
	fmt.Fprintf(w, "Total area:       %10.2f km²\n", s.TotalAreaKm2)
	fmt.Fprintf(w, "Coverage:         %10.1f %%\n", s.CoveragePct)
	fmt.Fprintf(w, "Gap area:         %10.2f km²\n", s.GapAreaKm2)
	fmt.Fprintf(w, "Points analyzed:  %10d\n", s.PointsAnalyzed)
	fmt.Fprintf(w, "Points covered:   %10d\n", s.PointsCovered)
	if s.AvgSignalDBm != nil {
		fmt.Fprintf(w, "Avg signal:       %10.1f dBm\n", *s.AvgSignalDBm)
	}
	if s.MinSignalDBm != nil && s.MaxSignalDBm != nil {
		fmt.Fprintf(w, "Signal range:     %10.1f .. %.1f dBm\n", *s.MinSignalDBm, *s.MaxSignalDBm)
	}
	if s.MedianSignalDBm != nil {
		fmt.Fprintf(w, "Median signal:    %10.1f dBm\n", *s.MedianSignalDBm)
	}
}

func printRecommendations(w io.Writer, recs []model.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No recommendations: no coverage gaps found.")
		return
	}
	fmt.Fprintf(w, "%-4s %-10s %-11s %-6s %-11s %-5s %s\n",
		"#", "LAT", "LNG", "SCORE", "PRIORITY", "POP", "REASON")
	for i, r := range recs {
		fmt.Fprintf(w, "%-4d %-10.5f %-11.5f %-6.2f %-11s %-5d %s\n",
			i+1, r.Position.Lat, r.Position.Lng, r.Score, r.Priority, r.PopulationReached, r.Reason)
	}
}
