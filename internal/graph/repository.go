package graph

import (
	"context"

	"github.com/repolens/repolens/internal/depgraph"
)

// Repository provides persistence for file dependency graphs.
type Repository interface {
	// StoreGraph persists the dependency graph for a project.
	StoreGraph(ctx context.Context, projectID string, g *depgraph.Graph) error
	// LoadGraph retrieves the full graph for a project.
	LoadGraph(ctx context.Context, projectID string) (*depgraph.Graph, error)
	// QueryDependents returns the files that import the given file.
	QueryDependents(ctx context.Context, projectID, path string) ([]string, error)
	// Close releases resources.
	Close(ctx context.Context) error
}
