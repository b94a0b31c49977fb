package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/signalfield/coverage-cli/internal/coverage"
	"github.com/signalfield/coverage-cli/internal/model"
	"github.com/signalfield/coverage-cli/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend tower placements that close coverage gaps",
	Long: `Generate ranked tower-placement recommendations.

Gaps are either derived from a fresh coverage analysis (--polygon plus
--towers: grid points below the gap threshold become gap zones) or supplied
directly (--gaps with a YAML gap list). Nearby gaps are clustered and each
cluster is scored by the population its combined area represents.

Examples:
  recommend --polygon city.geojson --towers towers.yaml
  recommend --polygon city.geojson --towers towers.yaml --max 10 --format geojson --output sites.geojson
  recommend --gaps gaps.yaml --max 3`,
	RunE: runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.String("polygon", "", "polygon file: .geojson, .json, or .shp")
	f.String("towers", "", "YAML tower inventory")
	f.String("gaps", "", "YAML gap-zone list (alternative to --polygon/--towers)")
	f.String("operator", "", "only consider towers of this operator")
	f.Float64("gap-threshold-dbm", 0, "signal below this is a gap (default from config)")
	f.Float64("step-km", 0, "grid step in km (default from config)")
	f.Bool("tower-frequency", false, "use each tower's own frequency when present")
	f.Int("max", 0, "maximum recommendations, 1-20 (default from config)")
	f.String("format", "table", "output format: table, json, or geojson")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	polygonPath, _ := cmd.Flags().GetString("polygon")
	towersPath, _ := cmd.Flags().GetString("towers")
	gapsPath, _ := cmd.Flags().GetString("gaps")
	operator, _ := cmd.Flags().GetString("operator")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	useTowerFreq, _ := cmd.Flags().GetBool("tower-frequency")

	gapThreshold := cfg.Analysis.GapThresholdDBm
	if cmd.Flags().Changed("gap-threshold-dbm") {
		gapThreshold, _ = cmd.Flags().GetFloat64("gap-threshold-dbm")
	}
	stepKm := cfg.Analysis.GridStepKm
	if cmd.Flags().Changed("step-km") {
		stepKm, _ = cmd.Flags().GetFloat64("step-km")
	}
	max := cfg.Recommend.MaxRecommendations
	if cmd.Flags().Changed("max") {
		max, _ = cmd.Flags().GetInt("max")
	}

	log := zap.L().With(zap.String("command", "recommend"))

	var gaps []model.GapZone
	switch {
	case gapsPath != "":
		var err error
		gaps, err = loadGaps(gapsPath)
		if err != nil {
			return err
		}
	case polygonPath != "" && towersPath != "":
		var err error
		gaps, err = gapsFromAnalysis(polygonPath, towersPath, operator, gapThreshold, stepKm, useTowerFreq)
		if err != nil {
			return err
		}
	default:
		return eris.New("recommend: provide either --gaps or both --polygon and --towers")
	}

	engine := cfg.Engine()
	recs := engine.Generate(gaps, max)
	log.Info("recommendations generated",
		zap.Int("gaps", len(gaps)),
		zap.Int("recommendations", len(recs)),
	)

	out, closeOut, err := openOutput(outputPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	switch format {
	case "json":
		return writeJSON(out, newEnvelope(recs))
	case "geojson":
		fc, err := recommendationsToGeoJSON(recs)
		if err != nil {
			return err
		}
		return writeGeoJSON(out, fc)
	case "table":
		printRecommendations(out, recs)
		return nil
	default:
		return eris.Errorf("recommend: unknown format %q", format)
	}
}

// gapsFromAnalysis runs a coverage analysis over every input polygon and
// extracts the below-threshold grid points as gap zones.
func gapsFromAnalysis(polygonPath, towersPath, operator string, gapThreshold, stepKm float64, useTowerFreq bool) ([]model.GapZone, error) {
	polygons, err := loadPolygons(polygonPath)
	if err != nil {
		return nil, err
	}
	towers, err := loadTowers(towersPath)
	if err != nil {
		return nil, err
	}

	analyzer := coverage.NewAnalyzer(cfg.Profile)
	analyzer.UseTowerFrequency = useTowerFreq

	var gaps []model.GapZone
	for i, poly := range polygons {
		res, err := analyzer.Analyze(poly, towers, operator, gapThreshold, stepKm)
		if err != nil {
			return nil, eris.Wrapf(err, "recommend: analyze polygon %d", i)
		}
		gaps = append(gaps, recommend.GapZonesFromGrid(res.Grid, gapThreshold, stepKm)...)
	}
	return gaps, nil
}
