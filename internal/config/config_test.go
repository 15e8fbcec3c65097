package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repolens.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
analysis:
  min_dominant_files: 3
  majority_ratio: 0.6
graph:
  uri: bolt://localhost:7687
  username: neo4j
  password: secret
temporal:
  task_queue: custom-queue
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Analysis.MinDominantFiles != 3 {
		t.Errorf("expected min_dominant_files 3, got %d", cfg.Analysis.MinDominantFiles)
	}
	if cfg.Analysis.MajorityRatio != 0.6 {
		t.Errorf("expected majority_ratio 0.6, got %f", cfg.Analysis.MajorityRatio)
	}
	if cfg.Graph.URI != "bolt://localhost:7687" {
		t.Errorf("unexpected graph uri %q", cfg.Graph.URI)
	}
	if cfg.Temporal.TaskQueue != "custom-queue" {
		t.Errorf("expected custom task queue, got %q", cfg.Temporal.TaskQueue)
	}
	// Unset keys fall back to defaults.
	if cfg.Temporal.Host != "localhost:7233" {
		t.Errorf("expected default temporal host, got %q", cfg.Temporal.Host)
	}
	if cfg.Analysis.MaxDiagramNodes != 20 {
		t.Errorf("expected default max_diagram_nodes, got %d", cfg.Analysis.MaxDiagramNodes)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Analysis.MinDominantFiles != 2 {
		t.Errorf("expected floor 2, got %d", cfg.Analysis.MinDominantFiles)
	}
	if cfg.Analysis.MajorityRatio != 0.5 {
		t.Errorf("expected ratio 0.5, got %f", cfg.Analysis.MajorityRatio)
	}
	if warnings := cfg.Validate(); len(warnings) != 0 {
		t.Errorf("defaults should validate cleanly, got %v", warnings)
	}
}

func TestValidate_Warnings(t *testing.T) {
	cfg := Defaults()
	cfg.Analysis.MajorityRatio = 1.5
	cfg.Tracing.SampleRate = -0.1
	cfg.Graph.URI = "bolt://localhost:7687"

	warnings := cfg.Validate()
	if len(warnings) != 3 {
		t.Errorf("expected 3 warnings, got %v", warnings)
	}
}
