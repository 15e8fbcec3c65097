package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/analysis"
	"github.com/repolens/repolens/internal/analysis/stack"
	"github.com/repolens/repolens/internal/analysis/structure"
	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/depgraph"
	"github.com/repolens/repolens/internal/flow"
	"github.com/repolens/repolens/internal/ingest"
	"github.com/repolens/repolens/internal/metrics"
	"github.com/repolens/repolens/internal/observability"
	"github.com/repolens/repolens/internal/pipeline"
	"github.com/repolens/repolens/internal/snapshot"
)

func main() {
	var (
		inputPath  string
		configPath string
		jsonReport bool
		mermaidOut bool
		dotOut     bool
		saveSnap   bool
		projectID  string
	)

	rootCmd := &cobra.Command{
		Use:   "repolens",
		Short: "Structural analysis of source repositories",
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the analysis pipeline over a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(configPath, inputPath, projectID, jsonReport, mermaidOut, dotOut, saveSnap)
		},
	}

	analyzeCmd.Flags().StringVar(&inputPath, "input", "", "Input directory")
	analyzeCmd.Flags().StringVar(&configPath, "config", "configs/repolens.yaml", "Config file path")
	analyzeCmd.Flags().StringVar(&projectID, "project", "", "Project identifier (defaults to input path)")
	analyzeCmd.Flags().BoolVar(&jsonReport, "json", false, "Output full result as JSON")
	analyzeCmd.Flags().BoolVar(&mermaidOut, "mermaid", false, "Print dependency and flow diagrams as Mermaid")
	analyzeCmd.Flags().BoolVar(&dotOut, "dot", false, "Print the dependency graph as Graphviz DOT")
	analyzeCmd.Flags().BoolVar(&saveSnap, "snapshot", false, "Save the result as a snapshot")
	_ = analyzeCmd.MarkFlagRequired("input")

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "List the technology detection rules",
		Run: func(cmd *cobra.Command, args []string) {
			printRules("Frameworks", stack.FrameworkRules)
			printRules("Databases", stack.DatabaseRules)
			printRules("Infrastructure", stack.InfrastructureRules)
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Snapshot operations",
	}

	var snapConfigPath string
	snapshotCmd.PersistentFlags().StringVar(&snapConfigPath, "config", "configs/repolens.yaml", "Config file path")

	snapshotListCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(snapConfigPath)
			if err != nil {
				return err
			}
			for _, s := range store.List() {
				tag := s.Tag
				if tag != "" {
					tag = " [" + tag + "]"
				}
				fmt.Printf("%s%s  %s  %s  %d files, %d nodes\n",
					s.ID, tag, s.CreatedAt.Format("2006-01-02 15:04"), s.ProjectID, s.Files, s.GraphNodes)
			}
			return nil
		},
	}

	snapshotDiffCmd := &cobra.Command{
		Use:   "diff <old-id> <new-id>",
		Short: "Compare two snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(snapConfigPath)
			if err != nil {
				return err
			}
			oldSnap, err := store.Load(args[0])
			if err != nil {
				return err
			}
			newSnap, err := store.Load(args[1])
			if err != nil {
				return err
			}
			snapshot.Diff(oldSnap, newSnap).Print(os.Stdout)
			return nil
		},
	}

	snapshotTagCmd := &cobra.Command{
		Use:   "tag <id> <tag>",
		Short: "Assign a tag to a snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(snapConfigPath)
			if err != nil {
				return err
			}
			return store.Tag(args[0], args[1])
		},
	}

	snapshotCmd.AddCommand(snapshotListCmd, snapshotDiffCmd, snapshotTagCmd)

	rootCmd.AddCommand(analyzeCmd, rulesCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalyze(configPath, inputPath, projectID string, jsonReport, mermaidOut, dotOut, saveSnap bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config load failed (%v), using defaults\n", err)
		cfg = config.Defaults()
	}
	if projectID == "" {
		projectID = inputPath
	}

	ctx := context.Background()

	tracingCfg := observability.DefaultTracingConfig()
	tracingCfg.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	tracingCfg.SampleRate = cfg.Tracing.SampleRate
	if cfg.Tracing.Environment != "" {
		tracingCfg.Environment = cfg.Tracing.Environment
	}
	tp, err := observability.InitTracing(ctx, tracingCfg)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer tp.Shutdown(ctx)

	m := metrics.New()

	records, err := loadRecords(ctx, inputPath)
	if err != nil {
		return err
	}

	analyzer := pipeline.NewAnalyzer(pipeline.Options{
		Thresholds: structure.Thresholds{
			MinDominantFiles: cfg.Analysis.MinDominantFiles,
			MajorityRatio:    cfg.Analysis.MajorityRatio,
		},
		Metrics: m,
	})

	result := analyzer.Analyze(ctx, records)
	m.Finish()

	if saveSnap {
		store, err := snapshot.NewStore(cfg.Snapshot.Dir)
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
		snap := snapshot.NewSnapshotFromResult(projectID, inputPath, result)
		if err := store.Save(snap, result); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		fmt.Fprintf(os.Stderr, "snapshot %s saved\n", snap.ID)
	}

	switch {
	case jsonReport:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(data))
	case mermaidOut:
		g := depgraph.FromTransfer(result.Graph)
		fmt.Println(depgraph.ExportMermaid(g, cfg.Analysis.MaxDiagramNodes))
		fmt.Println()
		fmt.Println(flow.ExportMermaid(result.Flow))
	case dotOut:
		g := depgraph.FromTransfer(result.Graph)
		fmt.Println(depgraph.ExportDOT(g))
	default:
		m.PrintSummary(os.Stdout)
	}

	return nil
}

func loadRecords(ctx context.Context, inputPath string) ([]analysis.FileRecord, error) {
	_, span := observability.StartIngestSpan(ctx, inputPath)
	defer span.End()

	records, err := ingest.Load(inputPath)
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("loading %s: %w", inputPath, err)
	}
	observability.RecordPhaseResult(span, len(records))
	return records, nil
}

func openStore(configPath string) (*snapshot.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.Defaults()
	}
	return snapshot.NewStore(cfg.Snapshot.Dir)
}

func printRules(category string, rules []stack.Rule) {
	fmt.Printf("%s:\n", category)
	for _, r := range rules {
		fmt.Printf("  %-16s", r.Name)
		if len(r.Imports) > 0 {
			fmt.Printf(" imports=%v", r.Imports)
		}
		if len(r.Dependencies) > 0 {
			fmt.Printf(" deps=%v", r.Dependencies)
		}
		if len(r.Config) > 0 {
			fmt.Printf(" config=%v", r.Config)
		}
		if len(r.Filenames) > 0 {
			fmt.Printf(" files=%v", r.Filenames)
		}
		if len(r.Extensions) > 0 {
			fmt.Printf(" exts=%v", r.Extensions)
		}
		fmt.Println()
	}
	fmt.Println()
}
