package main

import (
	"context"
	"fmt"
	"log"
	"os"

	temporalclient "go.temporal.io/sdk/client"

	"github.com/repolens/repolens/internal/analysis/structure"
	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/graph"
	graphneo4j "github.com/repolens/repolens/internal/graph/neo4j"
	"github.com/repolens/repolens/internal/observability"
	"github.com/repolens/repolens/internal/pipeline"
	"github.com/repolens/repolens/internal/server"
	temporalmod "github.com/repolens/repolens/internal/temporal"
)

func main() {
	configPath := "configs/repolens.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
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
		log.Fatalf("tracing: %v", err)
	}

	analyzer := pipeline.NewAnalyzer(pipeline.Options{
		Thresholds: structure.Thresholds{
			MinDominantFiles: cfg.Analysis.MinDominantFiles,
			MajorityRatio:    cfg.Analysis.MajorityRatio,
		},
	})

	// Graph repository is optional; the worker runs without persistence
	// when no URI is configured.
	var repo graph.Repository
	if cfg.Graph.URI != "" {
		neoRepo, err := graphneo4j.NewNeo4j(ctx, cfg.Graph.URI, cfg.Graph.Username, cfg.Graph.Password)
		if err != nil {
			log.Fatalf("neo4j: %v", err)
		}
		repo = neoRepo
	}

	temporalmod.SetDependencies(&temporalmod.Dependencies{
		Analyzer: analyzer,
		Graph:    repo,
	})

	c, err := temporalclient.Dial(temporalclient.Options{
		HostPort:  cfg.Temporal.Host,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w, err := temporalmod.StartWorker(c, cfg.Temporal.TaskQueue)
	if err != nil {
		log.Fatalf("worker: %v", err)
	}

	gs := server.NewGracefulServer(&server.HealthConfig{Version: "0.1.0"}, nil)
	gs.Health.RegisterCheck("temporal", server.TemporalHealthChecker(func(ctx context.Context) error {
		_, err := c.CheckHealth(ctx, &temporalclient.CheckHealthRequest{})
		return err
	}))
	if repo != nil {
		gs.Health.RegisterCheck("graph", server.GraphHealthChecker(func(ctx context.Context) error {
			_, err := repo.LoadGraph(ctx, "healthcheck")
			return err
		}))
	}

	gs.Shutdown.RegisterHook("temporal-worker", 20, func(ctx context.Context) error {
		w.Stop()
		return nil
	})
	if repo != nil {
		gs.Shutdown.RegisterHook("graph-store", 90, repo.Close)
	}
	gs.Shutdown.RegisterHook("tracing", 80, tp.Shutdown)

	if err := gs.Start(":8080"); err != nil {
		log.Fatalf("health server: %v", err)
	}

	fmt.Printf("Worker started on task queue: %s\n", cfg.Temporal.TaskQueue)

	gs.Wait()
	fmt.Println("Worker stopped")
}
