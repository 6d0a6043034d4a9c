package flowgraph

import (
	"fmt"
	"strings"
)

// Mermaid renders the graph as a Mermaid flowchart, the format embedded
// in docs and the editor preview pane.
func Mermaid(g *Graph) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	for _, n := range g.Nodes {
		b.WriteString("    " + nodeDefinition(n) + "\n")
	}

	for _, e := range g.Edges {
		from, to := safeID(e.From), safeID(e.To)
		switch {
		case e.Kind == EdgeEffect:
			// Dashed: side effects, not jumps.
			b.WriteString(fmt.Sprintf("    %s -.->|%q| %s\n", from, e.Label, to))
		case e.Label != "":
			b.WriteString(fmt.Sprintf("    %s -->|%q| %s\n", from, e.Label, to))
		default:
			b.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
		}
	}

	// Terminal styling.
	b.WriteString("    style END_NODE fill:#0d6,stroke:#0a5,color:#fff\n")

	return b.String()
}

func nodeDefinition(n Node) string {
	id := safeID(n.ID)
	label := escMermaid(n.Label)
	switch n.Kind {
	case NodeStart:
		return fmt.Sprintf("%s([%s])", id, label)
	case NodeEnd:
		return fmt.Sprintf("%s([%s])", id, label)
	case NodeMessage:
		return fmt.Sprintf(`%s[/"%s"/]`, id, label)
	default:
		return fmt.Sprintf(`%s["%s"]`, id, label)
	}
}

func safeID(id string) string {
	if id == "end" {
		// "end" is a Mermaid keyword.
		return "END_NODE"
	}
	if id == "start" {
		return "START_NODE"
	}
	r := strings.NewReplacer("-", "_", " ", "_", ".", "_")
	return r.Replace(id)
}

func escMermaid(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	s = strings.ReplaceAll(s, `'`, "#apos;")
	return s
}
