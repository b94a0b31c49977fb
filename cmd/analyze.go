package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/signalfield/coverage-cli/internal/coverage"
	"github.com/signalfield/coverage-cli/internal/model"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze coverage over a polygon",
	Long: `Sample the polygon interior on a grid, estimate the signal at each point
from the closest tower, and report coverage statistics.

The polygon file may be GeoJSON (Polygon, MultiPolygon, Feature, or
FeatureCollection) or an ESRI shapefile; multi-polygon inputs are analyzed
concurrently. Towers come from a YAML inventory.

Examples:
  analyze --polygon city.geojson --towers towers.yaml
  analyze --polygon region.shp --towers towers.yaml --operator vivo --threshold-dbm -90
  analyze --polygon city.geojson --towers towers.yaml --format geojson --output heatmap.geojson`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("polygon", "", "polygon file: .geojson, .json, or .shp (required)")
	f.String("towers", "", "YAML tower inventory (required)")
	f.String("operator", "", "only consider towers of this operator")
	f.Float64("threshold-dbm", 0, "coverage threshold in dBm (default from config)")
	f.Float64("step-km", 0, "grid step in km (default from config)")
	f.Bool("tower-frequency", false, "use each tower's own frequency when present")
	f.String("format", "table", "output format: table, json, or geojson")
	f.String("output", "", "output file path (default: stdout)")
	_ = analyzeCmd.MarkFlagRequired("polygon")
	_ = analyzeCmd.MarkFlagRequired("towers")

	rootCmd.AddCommand(analyzeCmd)
}

// polygonResult pairs one polygon's index with its analysis.
type polygonResult struct {
	Polygon int              `json:"polygon"`
	Result  *coverage.Result `json:"result"`
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	polygonPath, _ := cmd.Flags().GetString("polygon")
	towersPath, _ := cmd.Flags().GetString("towers")
	operator, _ := cmd.Flags().GetString("operator")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	useTowerFreq, _ := cmd.Flags().GetBool("tower-frequency")

	threshold := cfg.Analysis.ThresholdDBm
	if cmd.Flags().Changed("threshold-dbm") {
		threshold, _ = cmd.Flags().GetFloat64("threshold-dbm")
	}
	stepKm := cfg.Analysis.GridStepKm
	if cmd.Flags().Changed("step-km") {
		stepKm, _ = cmd.Flags().GetFloat64("step-km")
	}

	log := zap.L().With(zap.String("command", "analyze"))

	polygons, err := loadPolygons(polygonPath)
	if err != nil {
		return err
	}
	towers, err := loadTowers(towersPath)
	if err != nil {
		return err
	}
	log.Info("inputs loaded",
		zap.Int("polygons", len(polygons)),
		zap.Int("towers", len(towers)),
		zap.Float64("threshold_dbm", threshold),
		zap.Float64("step_km", stepKm),
	)

	analyzer := coverage.NewAnalyzer(cfg.Profile)
	analyzer.UseTowerFrequency = useTowerFreq

	// Each polygon is an independent computation; analyze them concurrently.
	results := make([]polygonResult, len(polygons))
	g, _ := errgroup.WithContext(cmd.Context())
	for i, poly := range polygons {
		g.Go(func() error {
			res, err := analyzer.Analyze(poly, towers, operator, threshold, stepKm)
			if err != nil {
				return eris.Wrapf(err, "analyze: polygon %d", i)
			}
			results[i] = polygonResult{Polygon: i, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out, closeOut, err := openOutput(outputPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	switch format {
	case "json":
		return writeJSON(out, newEnvelope(results))
	case "geojson":
		fc, err := gridToGeoJSON(flattenGrids(results))
		if err != nil {
			return err
		}
		return writeGeoJSON(out, fc)
	case "table":
		for _, r := range results {
			if len(results) > 1 {
				fmt.Fprintf(out, "--- polygon %d ---\n", r.Polygon)
			}
			printStats(out, r.Result.Stats)
		}
		return nil
	default:
		return eris.Errorf("analyze: unknown format %q", format)
	}
}

func flattenGrids(results []polygonResult) []model.GridPoint {
	var grid []model.GridPoint
	for _, r := range results {
		grid = append(grid, r.Result.Grid...)
	}
	return grid
}
