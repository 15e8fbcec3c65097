package temporal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/repolens/repolens/internal/analysis"
	"github.com/repolens/repolens/internal/depgraph"
	"github.com/repolens/repolens/internal/graph"
	"github.com/repolens/repolens/internal/ingest"
	"github.com/repolens/repolens/internal/pipeline"
)

// IngestResult is the serializable result of the ingest activity.
type IngestResult struct {
	RecordsJSON string
	Files       int
}

// AnalyzeResult is the serializable result of the analysis activity.
type AnalyzeResult struct {
	ResultJSON      string
	PrimaryLanguage string
	GraphNodes      int
	GraphEdges      int
}

// Dependencies holds shared resources injected into activities.
type Dependencies struct {
	Analyzer *pipeline.Analyzer
	Graph    graph.Repository
}

var deps *Dependencies

// SetDependencies injects shared resources (called during worker setup).
func SetDependencies(d *Dependencies) {
	deps = d
}

func IngestActivity(ctx context.Context, input AnalysisInput) (IngestResult, error) {
	records, err := ingest.Load(input.InputPath)
	if err != nil {
		return IngestResult{}, fmt.Errorf("loading %s: %w", input.InputPath, err)
	}

	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return IngestResult{}, fmt.Errorf("marshal records: %w", err)
	}

	return IngestResult{RecordsJSON: string(recordsJSON), Files: len(records)}, nil
}

func AnalyzeActivity(ctx context.Context, input AnalysisInput, recordsJSON string) (AnalyzeResult, error) {
	var records []analysis.FileRecord
	if err := json.Unmarshal([]byte(recordsJSON), &records); err != nil {
		return AnalyzeResult{}, err
	}

	result := deps.Analyzer.Analyze(ctx, records)

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("marshal result: %w", err)
	}

	return AnalyzeResult{
		ResultJSON:      string(resultJSON),
		PrimaryLanguage: result.Languages.Primary,
		GraphNodes:      len(result.Graph.Nodes),
		GraphEdges:      countEdges(result.Graph),
	}, nil
}

func StoreGraphActivity(ctx context.Context, input AnalysisInput, resultJSON string) error {
	if deps.Graph == nil {
		return fmt.Errorf("graph repository not configured")
	}

	var result pipeline.Result
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return err
	}

	g := depgraph.FromTransfer(result.Graph)
	if err := deps.Graph.StoreGraph(ctx, input.ProjectID, g); err != nil {
		return fmt.Errorf("storing graph for %s: %w", input.ProjectID, err)
	}
	return nil
}

func countEdges(t depgraph.Transfer) int {
	n := 0
	for _, targets := range t.Edges {
		n += len(targets)
	}
	return n
}
