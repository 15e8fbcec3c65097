package depgraph

import (
	"fmt"
	"strings"
	"testing"
)

func TestExportMermaid(t *testing.T) {
	g := NewGraph()
	g.AddEdge("src/a.py", "src/b.py")

	out := ExportMermaid(g, 0)

	if !strings.HasPrefix(out, "graph TD\n") {
		t.Errorf("expected graph TD header, got %q", out[:20])
	}
	if !strings.Contains(out, "src_a_py[a.py]") {
		t.Error("missing sanitized node with base-name label")
	}
	if !strings.Contains(out, "src_a_py --> src_b_py") {
		t.Error("missing edge")
	}
	if !strings.Contains(out, "classDef default") {
		t.Error("missing classDef footer")
	}
}

func TestExportMermaid_CapsByDegree(t *testing.T) {
	g := NewGraph()
	// hub has degree 5; the spokes have degree 1 each.
	for i := 0; i < 5; i++ {
		g.AddEdge("hub.py", fmt.Sprintf("spoke%d.py", i))
	}
	g.AddNode("isolated.py")

	out := ExportMermaid(g, 3)

	if !strings.Contains(out, "hub_py") {
		t.Error("expected highest-degree node kept")
	}
	if strings.Contains(out, "isolated_py") {
		t.Error("expected zero-degree node dropped")
	}
	if got := strings.Count(out, "["); got != 3 {
		t.Errorf("expected 3 drawn nodes, got %d", got)
	}
}

func TestExportMermaid_EdgesToExcludedNodesDropped(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a.py", "b.py")
	g.AddEdge("a.py", "c.py")
	g.AddEdge("b.py", "c.py")
	g.AddNode("d.py")

	out := ExportMermaid(g, 2)
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "-->") && strings.Contains(line, "d_py") {
			t.Errorf("edge references excluded node: %q", line)
		}
	}
}

func TestExportDOT(t *testing.T) {
	g := NewGraph()
	g.AddEdge("src/a.py", "src/b.py")

	out := ExportDOT(g)

	if !strings.HasPrefix(out, "digraph dependencies {") {
		t.Errorf("expected digraph header, got %q", out[:30])
	}
	if !strings.Contains(out, `"src/a.py" [label="a.py"];`) {
		t.Error("missing node declaration")
	}
	if !strings.Contains(out, `"src/a.py" -> "src/b.py";`) {
		t.Error("missing edge")
	}
}
