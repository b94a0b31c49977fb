// Package config loads application configuration from file and environment
// and bootstraps the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/signalfield/coverage-cli/internal/propagation"
	"github.com/signalfield/coverage-cli/internal/recommend"
)

// Config holds the full application configuration.
type Config struct {
	Profile   propagation.Profile `yaml:"profile" mapstructure:"profile"`
	Analysis  AnalysisConfig      `yaml:"analysis" mapstructure:"analysis"`
	Recommend RecommendConfig     `yaml:"recommend" mapstructure:"recommend"`
	Log       LogConfig           `yaml:"log" mapstructure:"log"`
}

// AnalysisConfig holds coverage analysis defaults.
type AnalysisConfig struct {
	ThresholdDBm    float64 `yaml:"threshold_dbm" mapstructure:"threshold_dbm"`
	GridStepKm      float64 `yaml:"grid_step_km" mapstructure:"grid_step_km"`
	GapThresholdDBm float64 `yaml:"gap_threshold_dbm" mapstructure:"gap_threshold_dbm"`
}

// RecommendConfig holds recommendation engine parameters.
type RecommendConfig struct {
	ClusterRadiusKm    float64 `yaml:"cluster_radius_km" mapstructure:"cluster_radius_km"`
	PopulationDensity  float64 `yaml:"population_density" mapstructure:"population_density"`
	MaxRecommendations int     `yaml:"max_recommendations" mapstructure:"max_recommendations"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COVERAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	def := propagation.DefaultProfile()
	v.SetDefault("profile.tx_power_dbm", def.TxPowerDBm)
	v.SetDefault("profile.tx_gain_dbi", def.TxGainDBi)
	v.SetDefault("profile.rx_gain_dbi", def.RxGainDBi)
	v.SetDefault("profile.frequency_mhz", def.FrequencyMHz)
	v.SetDefault("profile.tx_height_m", def.TxHeightM)
	v.SetDefault("profile.rx_height_m", def.RxHeightM)
	v.SetDefault("analysis.threshold_dbm", -85.0)
	v.SetDefault("analysis.grid_step_km", 0.1)
	v.SetDefault("analysis.gap_threshold_dbm", -95.0)
	v.SetDefault("recommend.cluster_radius_km", recommend.DefaultClusterRadiusKm)
	v.SetDefault("recommend.population_density", recommend.DefaultPopulationDensity)
	v.SetDefault("recommend.max_recommendations", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Engine builds a recommendation engine from the configured parameters.
func (c *Config) Engine() *recommend.Engine {
	return &recommend.Engine{
		ClusterRadiusKm:   c.Recommend.ClusterRadiusKm,
		PopulationDensity: c.Recommend.PopulationDensity,
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
