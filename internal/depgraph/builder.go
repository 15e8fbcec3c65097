package depgraph

import "github.com/repolens/repolens/internal/analysis"

// Build assembles the file-level dependency graph for a set of records.
// Every file with content becomes a node; each import that resolves to a
// different repository file becomes an edge. Unresolvable imports are
// dropped silently.
func Build(records []analysis.FileRecord) *Graph {
	g := NewGraph()

	paths := make([]string, 0, len(records))
	for _, r := range records {
		paths = append(paths, r.Path)
	}
	res := newResolver(paths)

	for _, r := range records {
		if r.Path == "" || r.Content == "" {
			continue
		}
		g.AddNode(r.Path)

		for _, ident := range extractImports(r.Path, r.Content) {
			target := res.resolve(ident)
			if target == "" || target == r.Path {
				continue
			}
			g.AddEdge(r.Path, target)
		}
	}
	return g
}
