package depgraph

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultMaxDiagramNodes caps diagram size so large repositories stay
// readable; the most-connected nodes are kept.
const DefaultMaxDiagramNodes = 20

// ExportMermaid generates a Mermaid "graph TD" diagram of the dependency
// graph. When the graph exceeds maxNodes, nodes are ranked by combined
// upstream+downstream degree and only the top maxNodes are drawn.
func ExportMermaid(g *Graph, maxNodes int) string {
	if maxNodes <= 0 {
		maxNodes = DefaultMaxDiagramNodes
	}

	nodes := g.Nodes()
	if len(nodes) > maxNodes {
		type ranked struct {
			node   string
			degree int
		}
		rankedNodes := make([]ranked, 0, len(nodes))
		for _, n := range nodes {
			rankedNodes = append(rankedNodes, ranked{n, len(g.Upstream(n)) + len(g.Downstream(n))})
		}
		sort.SliceStable(rankedNodes, func(i, j int) bool {
			return rankedNodes[i].degree > rankedNodes[j].degree
		})
		nodes = nodes[:0]
		for _, r := range rankedNodes[:maxNodes] {
			nodes = append(nodes, r.node)
		}
		sort.Strings(nodes)
	}

	included := make(map[string]string, len(nodes))
	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, n := range nodes {
		id := sanitizeID(n)
		included[n] = id
		label := truncateLabel(baseName(n), 30)
		fmt.Fprintf(&b, "    %s[%s]\n", id, label)
	}

	for _, n := range nodes {
		for _, dep := range g.Upstream(n) {
			depID, ok := included[dep]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "    %s --> %s\n", included[n], depID)
		}
	}

	b.WriteString("\n    classDef default fill:#f9f9f9,stroke:#333,stroke-width:2px")
	return b.String()
}

// ExportDOT generates a Graphviz DOT representation of the graph.
func ExportDOT(g *Graph) string {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [fontname=\"Helvetica\" shape=box];\n\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&b, "  \"%s\" [label=\"%s\"];\n", n, baseName(n))
	}
	b.WriteString("\n")
	for _, from := range g.Nodes() {
		for _, to := range g.Upstream(from) {
			fmt.Fprintf(&b, "  \"%s\" -> \"%s\";\n", from, to)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// sanitizeID rewrites a path into an identifier safe for diagram syntax.
func sanitizeID(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
		case c == '/', c == '.', c == '-', c == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}

func truncateLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
