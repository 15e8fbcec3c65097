// Package depgraph builds directed file-level dependency graphs from import
// statements, without reproducing any real build tool's resolution.
package depgraph

import "sort"

// Graph is a directed file-level dependency graph. Every edge endpoint is a
// node, self-loops are excluded, and edges carry set semantics: adding one
// twice is a no-op.
type Graph struct {
	nodes   map[string]struct{}
	edges   map[string]map[string]struct{}
	reverse map[string]map[string]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   map[string]struct{}{},
		edges:   map[string]map[string]struct{}{},
		reverse: map[string]map[string]struct{}{},
	}
}

// AddNode inserts a node.
func (g *Graph) AddNode(node string) {
	g.nodes[node] = struct{}{}
}

// AddEdge inserts a directed edge; both endpoints become nodes. A self-loop
// is dropped silently.
func (g *Graph) AddEdge(from, to string) {
	if from == to {
		return
	}
	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}
	if g.edges[from] == nil {
		g.edges[from] = map[string]struct{}{}
	}
	g.edges[from][to] = struct{}{}
	if g.reverse[to] == nil {
		g.reverse[to] = map[string]struct{}{}
	}
	g.reverse[to][from] = struct{}{}
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(node string) bool {
	_, ok := g.nodes[node]
	return ok
}

// Upstream returns the sorted nodes this node points to. Unknown and leaf
// nodes yield an empty list, never an error.
func (g *Graph) Upstream(node string) []string {
	return sortedKeys(g.edges[node])
}

// Downstream returns the sorted nodes pointing to this node.
func (g *Graph) Downstream(node string) []string {
	return sortedKeys(g.reverse[node])
}

// Nodes returns all nodes sorted.
func (g *Graph) Nodes() []string {
	return sortedKeys(g.nodes)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, tos := range g.edges {
		n += len(tos)
	}
	return n
}

// Transfer is the plain serializable form of a graph.
type Transfer struct {
	Nodes []string            `json:"nodes"`
	Edges map[string][]string `json:"edges"`
}

// ToTransfer converts the graph into its transfer object. Node and edge
// lists are sorted for stable output.
func (g *Graph) ToTransfer() Transfer {
	t := Transfer{
		Nodes: g.Nodes(),
		Edges: make(map[string][]string, len(g.edges)),
	}
	for from, tos := range g.edges {
		t.Edges[from] = sortedKeys(tos)
	}
	return t
}

// FromTransfer reconstructs a graph from a transfer object.
func FromTransfer(t Transfer) *Graph {
	g := NewGraph()
	for _, n := range t.Nodes {
		g.AddNode(n)
	}
	for from, tos := range t.Edges {
		for _, to := range tos {
			g.AddEdge(from, to)
		}
	}
	return g
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
