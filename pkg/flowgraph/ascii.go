package flowgraph

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ASCII renders the graph as a vertical box diagram for terminals. Rule
// jumps and side effects are listed beneath their origin question.
func ASCII(g *Graph) string {
	var b strings.Builder

	var questions []Node
	for _, n := range g.Nodes {
		if n.Kind == NodeQuestion {
			questions = append(questions, n)
		}
	}
	if len(questions) == 0 {
		b.WriteString("(empty survey)\n")
		return b.String()
	}

	// Uniform box width so every box and connector aligns.
	const indent = 4
	boxWidth := 24
	for _, q := range questions {
		if w := runewidth.StringWidth(boxContent(q)); w > boxWidth {
			boxWidth = w
		}
	}
	pad := strings.Repeat(" ", indent)
	connPad := strings.Repeat(" ", indent+1+boxWidth/2)

	b.WriteString(pad + "● Start\n")
	b.WriteString(connPad + "│\n")

	lastBlock := ""
	for i, q := range questions {
		if q.Block != lastBlock {
			b.WriteString(pad + "┤ block: " + q.Block + "\n")
			lastBlock = q.Block
		}
		writeBox(&b, q, pad, boxWidth)

		for _, e := range g.Edges {
			if e.From != q.ID || e.Kind == EdgeSequence {
				continue
			}
			arrow := "↷"
			if e.Kind == EdgeEffect {
				arrow = "◇"
			}
			b.WriteString(fmt.Sprintf("%s  %s %s → %s\n", connPad, arrow, e.Label, e.To))
		}

		if i < len(questions)-1 {
			b.WriteString(connPad + "│\n")
		}
	}

	b.WriteString(connPad + "│\n")
	b.WriteString(pad + "◆ End\n")

	if len(g.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range g.Warnings {
			b.WriteString("  ⚠ " + w + "\n")
		}
	}

	return b.String()
}

func boxContent(n Node) string {
	label := n.Label
	if label == n.ID {
		return " " + n.ID + " "
	}
	return fmt.Sprintf(" %s  %s ", n.ID, truncate(label, 40))
}

func writeBox(b *strings.Builder, n Node, pad string, boxWidth int) {
	content := boxContent(n)
	cw := runewidth.StringWidth(content)
	if cw > boxWidth {
		content = runewidth.Truncate(content, boxWidth, "…")
		cw = runewidth.StringWidth(content)
	}
	mid := boxWidth / 2

	b.WriteString(pad + "┌" + strings.Repeat("─", boxWidth) + "┐\n")
	b.WriteString(pad + "│" + content + strings.Repeat(" ", boxWidth-cw) + "│\n")
	b.WriteString(pad + "└" + strings.Repeat("─", mid) + "┬" + strings.Repeat("─", boxWidth-mid-1) + "┘\n")
}

func truncate(s string, max int) string {
	// Cell-width based so a multi-byte rune is never split mid-sequence.
	return runewidth.Truncate(s, max, "…")
}
