// Package config loads application configuration. Detectors never read
// ambient process state; everything they need arrives through these values.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Graph    GraphConfig    `mapstructure:"graph"`
	Temporal TemporalConfig `mapstructure:"temporal"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
}

// AnalysisConfig carries the tunable heuristics of the pipeline. The
// thresholds are empirically chosen; they are configuration, not constants.
type AnalysisConfig struct {
	// MinDominantFiles is the absolute floor for the frontend/backend
	// folder tie-break (strictly-greater comparison).
	MinDominantFiles int `mapstructure:"min_dominant_files"`

	// MajorityRatio is the strict-majority cutoff for config/scripts
	// folder roles.
	MajorityRatio float64 `mapstructure:"majority_ratio"`

	// MaxDiagramNodes caps dependency-diagram size.
	MaxDiagramNodes int `mapstructure:"max_diagram_nodes"`
}

type GraphConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type TemporalConfig struct {
	Host      string `mapstructure:"host"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

type TracingConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	Environment  string  `mapstructure:"environment"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

type SnapshotConfig struct {
	Dir string `mapstructure:"dir"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MinDominantFiles: 2,
			MajorityRatio:    0.5,
			MaxDiagramNodes:  20,
		},
		Temporal: TemporalConfig{
			Host:      "localhost:7233",
			Namespace: "default",
			TaskQueue: "repolens",
		},
		Tracing:  TracingConfig{SampleRate: 1.0},
		Snapshot: SnapshotConfig{Dir: ".repolens/snapshots"},
	}
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.Analysis.MinDominantFiles < 0 {
		warnings = append(warnings, fmt.Sprintf("analysis min_dominant_files %d is negative", c.Analysis.MinDominantFiles))
	}
	if c.Analysis.MajorityRatio < 0 || c.Analysis.MajorityRatio >= 1 {
		warnings = append(warnings, fmt.Sprintf("analysis majority_ratio %.2f is outside [0, 1)", c.Analysis.MajorityRatio))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		warnings = append(warnings, fmt.Sprintf("tracing sample_rate %.2f is outside [0, 1]", c.Tracing.SampleRate))
	}
	if c.Graph.URI != "" && c.Graph.Username == "" {
		warnings = append(warnings, "graph uri is set but username is empty")
	}

	return warnings
}

// Load reads configuration from file and environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("REPOLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Defaults()
	v.SetDefault("analysis.min_dominant_files", cfg.Analysis.MinDominantFiles)
	v.SetDefault("analysis.majority_ratio", cfg.Analysis.MajorityRatio)
	v.SetDefault("analysis.max_diagram_nodes", cfg.Analysis.MaxDiagramNodes)
	v.SetDefault("temporal.host", cfg.Temporal.Host)
	v.SetDefault("temporal.namespace", cfg.Temporal.Namespace)
	v.SetDefault("temporal.task_queue", cfg.Temporal.TaskQueue)
	v.SetDefault("tracing.sample_rate", cfg.Tracing.SampleRate)
	v.SetDefault("snapshot.dir", cfg.Snapshot.Dir)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if warnings := cfg.Validate(); len(warnings) > 0 {
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
		}
	}

	return cfg, nil
}
