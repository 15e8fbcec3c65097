// Package metrics collects per-run statistics for an analysis pipeline run.
package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// RunMetrics tracks one pipeline run from start to finish.
type RunMetrics struct {
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at,omitempty"`
	Duration   time.Duration `json:"duration_ms,omitempty"`

	Files           int      `json:"files"`
	SkippedRecords  int      `json:"skipped_records"`
	Languages       int      `json:"languages"`
	PrimaryLanguage string   `json:"primary_language,omitempty"`
	Frameworks      []string `json:"frameworks,omitempty"`
	Databases       []string `json:"databases,omitempty"`
	Infrastructure  []string `json:"infrastructure,omitempty"`
	Folders         int      `json:"folders"`
	EntryPoints     int      `json:"entry_points"`
	GraphNodes      int      `json:"graph_nodes"`
	GraphEdges      int      `json:"graph_edges"`
	FlowStages      int      `json:"flow_stages"`

	Phases []PhaseMetrics `json:"phases"`
	Errors []string       `json:"errors,omitempty"`
}

// PhaseMetrics records a single phase's timing.
type PhaseMetrics struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration_ms"`
}

// New starts tracking a run.
func New() *RunMetrics {
	return &RunMetrics{StartedAt: time.Now()}
}

// AddPhase records one phase's duration.
func (m *RunMetrics) AddPhase(name string, d time.Duration) {
	m.Phases = append(m.Phases, PhaseMetrics{Name: name, Duration: d})
}

// Finish marks the run complete.
func (m *RunMetrics) Finish() {
	m.FinishedAt = time.Now()
	m.Duration = m.FinishedAt.Sub(m.StartedAt)
}

// PrintSummary writes a human-readable summary.
func (m *RunMetrics) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n=== repolens analysis report ===\n")
	fmt.Fprintf(w, "Duration:        %s\n", m.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Files analyzed:  %d (skipped %d invalid records)\n", m.Files, m.SkippedRecords)
	if m.PrimaryLanguage != "" {
		fmt.Fprintf(w, "Primary language: %s (%d languages total)\n", m.PrimaryLanguage, m.Languages)
	}
	if len(m.Frameworks) > 0 {
		fmt.Fprintf(w, "Frameworks:      %v\n", m.Frameworks)
	}
	if len(m.Databases) > 0 {
		fmt.Fprintf(w, "Databases:       %v\n", m.Databases)
	}
	if len(m.Infrastructure) > 0 {
		fmt.Fprintf(w, "Infrastructure:  %v\n", m.Infrastructure)
	}
	fmt.Fprintf(w, "Folders:         %d\n", m.Folders)
	fmt.Fprintf(w, "Entry points:    %d\n", m.EntryPoints)
	fmt.Fprintf(w, "Graph:           %d nodes, %d edges\n", m.GraphNodes, m.GraphEdges)
	fmt.Fprintf(w, "Flow stages:     %d\n", m.FlowStages)
	for _, p := range m.Phases {
		fmt.Fprintf(w, "  %-12s %s\n", p.Name, p.Duration.Round(time.Microsecond))
	}
	if len(m.Errors) > 0 {
		fmt.Fprintf(w, "Errors:\n")
		for _, e := range m.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
}

// JSON returns the metrics as formatted JSON.
func (m *RunMetrics) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
