// Package pipeline orchestrates the structural-inference components over a
// single set of file records.
package pipeline

import (
	"context"
	"time"

	"github.com/repolens/repolens/internal/analysis"
	"github.com/repolens/repolens/internal/analysis/entrypoint"
	"github.com/repolens/repolens/internal/analysis/language"
	"github.com/repolens/repolens/internal/analysis/stack"
	"github.com/repolens/repolens/internal/analysis/structure"
	"github.com/repolens/repolens/internal/depgraph"
	"github.com/repolens/repolens/internal/flow"
	"github.com/repolens/repolens/internal/metrics"
	"github.com/repolens/repolens/internal/observability"
)

// Options tune the heuristics; zero value means defaults.
type Options struct {
	// Thresholds for the folder content-composition fallback.
	Thresholds structure.Thresholds

	// Metrics, when set, receives per-phase timings and result counts.
	Metrics *metrics.RunMetrics
}

// Analyzer runs the full pipeline. It holds no per-run state; one Analyzer
// may serve many runs.
type Analyzer struct {
	opts Options
}

// NewAnalyzer creates an analyzer with the given options.
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Thresholds == (structure.Thresholds{}) {
		opts.Thresholds = structure.DefaultThresholds()
	}
	return &Analyzer{opts: opts}
}

// Analyze computes the structural model for the given records. The four
// detectors are independent and order-insensitive; the graph builder and
// flow synthesizer run after them. Nothing here performs I/O, and malformed
// records are skipped, never fatal.
func (a *Analyzer) Analyze(ctx context.Context, records []analysis.FileRecord) *Result {
	clean := analysis.Sanitize(records)

	res := &Result{SkippedRecords: len(records) - len(clean)}

	a.phase(ctx, "language", len(clean), func() int {
		res.Languages = language.Aggregate(clean)
		return res.Languages.TotalFiles
	})
	a.phase(ctx, "stack", len(clean), func() int {
		res.Frameworks = stack.DetectFrameworks(clean)
		res.Databases = stack.DetectDatabases(clean)
		res.Infrastructure = stack.DetectInfrastructure(clean)
		return len(res.Frameworks) + len(res.Databases) + len(res.Infrastructure)
	})
	a.phase(ctx, "structure", len(clean), func() int {
		res.Folders = structure.ClassifyFoldersWith(clean, a.opts.Thresholds)
		return len(res.Folders)
	})
	a.phase(ctx, "entrypoints", len(clean), func() int {
		res.EntryPoints = entrypoint.Find(clean)
		return len(res.EntryPoints.ApplicationFiles) + len(res.EntryPoints.FrameworkEntries)
	})
	a.phase(ctx, "graph", len(clean), func() int {
		res.Graph = depgraph.Build(clean).ToTransfer()
		return len(res.Graph.Nodes)
	})
	a.phase(ctx, "flow", len(clean), func() int {
		res.Flow = flow.Synthesize(res.EntryPoints, res.Folders, res.Frameworks, res.Databases, res.Infrastructure)
		return len(res.Flow.Stages)
	})

	a.collect(res, len(clean))
	return res
}

// phase wraps one component run with a span and optional timing.
func (a *Analyzer) phase(ctx context.Context, name string, fileCount int, run func() int) {
	_, span := observability.StartPhaseSpan(ctx, name, fileCount)
	defer span.End()

	start := time.Now()
	produced := run()
	observability.RecordPhaseResult(span, produced)

	if a.opts.Metrics != nil {
		a.opts.Metrics.AddPhase(name, time.Since(start))
	}
}

func (a *Analyzer) collect(res *Result, files int) {
	m := a.opts.Metrics
	if m == nil {
		return
	}
	m.Files = files
	m.SkippedRecords = res.SkippedRecords
	m.Languages = len(res.Languages.Languages)
	m.PrimaryLanguage = res.Languages.Primary
	m.Frameworks = res.Frameworks
	m.Databases = res.Databases
	m.Infrastructure = res.Infrastructure
	m.Folders = len(res.Folders)
	m.EntryPoints = len(res.EntryPoints.ApplicationFiles) + len(res.EntryPoints.FrameworkEntries)
	m.GraphNodes = len(res.Graph.Nodes)
	edges := 0
	for _, tos := range res.Graph.Edges {
		edges += len(tos)
	}
	m.GraphEdges = edges
	m.FlowStages = len(res.Flow.Stages)
}
