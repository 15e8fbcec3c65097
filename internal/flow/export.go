package flow

import (
	"fmt"
	"strings"
)

// ExportMermaid generates a Mermaid "graph LR" diagram of the flow. An
// empty flow renders a single placeholder node rather than failing.
func ExportMermaid(f ExecutionFlow) string {
	if len(f.Stages) == 0 {
		return "graph LR\n    Empty[No execution flow detected]"
	}

	var b strings.Builder
	b.WriteString("graph LR\n")
	for _, s := range f.Stages {
		label := s.Description
		if label == "" {
			label = s.ID
		}
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", s.ID, label)
	}

	for _, c := range f.Connections {
		if c.Label != "" {
			fmt.Fprintf(&b, "    %s -->|%s| %s\n", c.From, truncate(c.Label, 20), c.To)
		} else {
			fmt.Fprintf(&b, "    %s --> %s\n", c.From, c.To)
		}
	}

	b.WriteString("\n")
	for _, s := range f.Stages {
		fmt.Fprintf(&b, "    style %s %s\n", s.ID, stageStyle(s.Type))
	}
	return strings.TrimRight(b.String(), "\n")
}

func stageStyle(stageType string) string {
	switch stageType {
	case "entry_point":
		return "fill:#e1f5e1,stroke:#4caf50,stroke-width:3px"
	case "frontend":
		return "fill:#e3f2fd,stroke:#2196f3,stroke-width:2px"
	case "backend":
		return "fill:#fff3e0,stroke:#ff9800,stroke-width:2px"
	case "database":
		return "fill:#fce4ec,stroke:#e91e63,stroke-width:2px"
	case "external_services":
		return "fill:#f3e5f5,stroke:#9c27b0,stroke-width:2px"
	default:
		return "fill:#f5f5f5,stroke:#757575,stroke-width:2px"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
