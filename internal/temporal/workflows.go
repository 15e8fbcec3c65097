package temporal

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/workflow"
)

// AnalysisInput holds the workflow parameters.
type AnalysisInput struct {
	ProjectID string
	InputPath string

	// StoreGraph controls whether the dependency graph is persisted
	// to the graph repository after analysis.
	StoreGraph bool
}

// AnalysisOutput holds the workflow result.
type AnalysisOutput struct {
	ProjectID       string
	ResultJSON      string
	Files           int
	PrimaryLanguage string
	GraphNodes      int
	GraphEdges      int
}

// AnalysisWorkflow orchestrates ingest, analysis and graph persistence.
func AnalysisWorkflow(ctx workflow.Context, input AnalysisInput) (*AnalysisOutput, error) {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	// Step 1: load file records from disk
	var ingestResult IngestResult
	if err := workflow.ExecuteActivity(ctx, IngestActivity, input).Get(ctx, &ingestResult); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	// Step 2: run the analysis pipeline
	var analyzeResult AnalyzeResult
	if err := workflow.ExecuteActivity(ctx, AnalyzeActivity, input, ingestResult.RecordsJSON).Get(ctx, &analyzeResult); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	// Step 3: persist the dependency graph (optional)
	if input.StoreGraph {
		if err := workflow.ExecuteActivity(ctx, StoreGraphActivity, input, analyzeResult.ResultJSON).Get(ctx, nil); err != nil {
			return nil, fmt.Errorf("store graph: %w", err)
		}
	}

	return &AnalysisOutput{
		ProjectID:       input.ProjectID,
		ResultJSON:      analyzeResult.ResultJSON,
		Files:           ingestResult.Files,
		PrimaryLanguage: analyzeResult.PrimaryLanguage,
		GraphNodes:      analyzeResult.GraphNodes,
		GraphEdges:      analyzeResult.GraphEdges,
	}, nil
}
