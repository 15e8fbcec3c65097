package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/repolens/repolens/internal/depgraph"
)

// Neo4jRepository implements graph.Repository using Neo4j. Files become
// :File nodes scoped by project and imports become :IMPORTS relationships.
type Neo4jRepository struct {
	driver neo4j.DriverWithContext
}

// NewNeo4j creates a Neo4j-backed repository.
func NewNeo4j(ctx context.Context, uri, username, password string) (*Neo4jRepository, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}
	return &Neo4jRepository{driver: driver}, nil
}

func (r *Neo4jRepository) StoreGraph(ctx context.Context, projectID string, g *depgraph.Graph) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	t := g.ToTransfer()

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, node := range t.Nodes {
			_, err := tx.Run(ctx,
				"MERGE (f:File {project: $project, path: $path})",
				map[string]any{"project": projectID, "path": node})
			if err != nil {
				return nil, err
			}
		}
		for from, targets := range t.Edges {
			for _, to := range targets {
				_, err := tx.Run(ctx,
					"MERGE (a:File {project: $project, path: $from}) "+
						"MERGE (b:File {project: $project, path: $to}) "+
						"MERGE (a)-[:IMPORTS]->(b)",
					map[string]any{"project": projectID, "from": from, "to": to})
				if err != nil {
					return nil, err
				}
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("store graph %s: %w", projectID, err)
	}
	return nil
}

func (r *Neo4jRepository) LoadGraph(ctx context.Context, projectID string) (*depgraph.Graph, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx,
			"MATCH (f:File {project: $project}) "+
				"OPTIONAL MATCH (f)-[:IMPORTS]->(t:File {project: $project}) "+
				"RETURN f.path AS path, collect(t.path) AS imports",
			map[string]any{"project": projectID})
		if err != nil {
			return nil, err
		}

		g := depgraph.NewGraph()
		for records.Next(ctx) {
			rec := records.Record()
			path, _ := rec.Get("path")
			imports, _ := rec.Get("imports")

			from := path.(string)
			g.AddNode(from)
			for _, to := range imports.([]any) {
				if to != nil {
					g.AddEdge(from, to.(string))
				}
			}
		}
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*depgraph.Graph), nil
}

func (r *Neo4jRepository) QueryDependents(ctx context.Context, projectID, path string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx,
			"MATCH (a:File {project: $project})-[:IMPORTS]->(b:File {project: $project, path: $path}) "+
				"RETURN a.path AS path ORDER BY path",
			map[string]any{"project": projectID, "path": path})
		if err != nil {
			return nil, err
		}

		var dependents []string
		for records.Next(ctx) {
			rec := records.Record()
			p, _ := rec.Get("path")
			dependents = append(dependents, p.(string))
		}
		return dependents, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

func (r *Neo4jRepository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}
