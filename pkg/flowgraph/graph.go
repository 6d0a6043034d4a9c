// Package flowgraph derives the authoring/visualization graph from a
// survey registry and rule set: nodes for questions, messages and the
// synthetic start/end, edges for the default sequence and every
// rule-driven jump. Building the graph never mutates its inputs and may
// run on every editor keystroke.
package flowgraph

import (
	"fmt"

	"github.com/quillform/quill/pkg/engine"
	"github.com/quillform/quill/pkg/registry"
	"github.com/quillform/quill/pkg/schema"
)

// Node kinds.
const (
	NodeStart    = "start"
	NodeEnd      = "end"
	NodeQuestion = "question"
	NodeMessage  = "message"
)

// Edge kinds.
const (
	EdgeSequence = "sequence"
	EdgeRule     = "rule"
	EdgeEffect   = "effect" // hide_options / pipe_answer annotations
)

// Node is a vertex of the derived graph.
type Node struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Block string `json:"block,omitempty"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

// Graph is the full derived view handed to the editor.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	// Warnings carries authoring problems found while resolving rules
	// (dangling references, malformed rules). They annotate the graph
	// instead of blocking it.
	Warnings []string `json:"warnings,omitempty"`
}

// Build derives the graph. It resolves every rule action through the
// same navigator the runtime uses, so what the editor draws is exactly
// what a respondent would experience.
func Build(reg *registry.Registry, rules []schema.Rule) *Graph {
	g := &Graph{}

	g.Nodes = append(g.Nodes, Node{ID: "start", Kind: NodeStart, Label: "Start"})
	for _, serial := range reg.GlobalOrder {
		q, _ := reg.Lookup(serial)
		label := q.Label
		if label == "" {
			label = serial
		}
		g.Nodes = append(g.Nodes, Node{
			ID:    serial,
			Kind:  NodeQuestion,
			Label: label,
			Block: reg.QuestionBlock[serial],
		})
	}
	g.Nodes = append(g.Nodes, Node{ID: "end", Kind: NodeEnd, Label: "End"})

	// Default sequence edges.
	if len(reg.GlobalOrder) == 0 {
		g.Edges = append(g.Edges, Edge{From: "start", To: "end", Kind: EdgeSequence})
		return g
	}
	g.Edges = append(g.Edges, Edge{From: "start", To: reg.GlobalOrder[0], Kind: EdgeSequence})
	for i, serial := range reg.GlobalOrder {
		if i+1 < len(reg.GlobalOrder) {
			g.Edges = append(g.Edges, Edge{From: serial, To: reg.GlobalOrder[i+1], Kind: EdgeSequence})
		} else {
			g.Edges = append(g.Edges, Edge{From: serial, To: "end", Kind: EdgeSequence})
		}
	}

	// Rule edges.
	msgSeen := make(map[string]string) // message text → node id
	for _, r := range rules {
		owner := r.If.Question
		if owner == "" || r.Then.Type == "" {
			g.Warnings = append(g.Warnings, (&engine.MalformedRuleError{RuleID: r.ID, Missing: "if.question or then.type"}).Error())
			continue
		}
		if _, ok := reg.Lookup(owner); !ok {
			g.Warnings = append(g.Warnings, (&engine.DanglingReferenceError{RuleID: r.ID, Kind: "question", Ref: owner}).Error())
			continue
		}
		label := conditionLabel(r.If)

		switch r.Then.Type {
		case schema.ActionShowMessage:
			id, ok := msgSeen[r.Then.Text]
			if !ok {
				id = fmt.Sprintf("msg_%d", len(msgSeen)+1)
				msgSeen[r.Then.Text] = id
				g.Nodes = append(g.Nodes, Node{ID: id, Kind: NodeMessage, Label: r.Then.Text})
			}
			g.Edges = append(g.Edges, Edge{From: owner, To: id, Kind: EdgeRule, Label: label})

		case schema.ActionHideOptions:
			if _, ok := reg.Lookup(r.Then.Target); !ok {
				g.Warnings = append(g.Warnings, (&engine.DanglingReferenceError{RuleID: r.ID, Kind: "question", Ref: r.Then.Target}).Error())
				continue
			}
			g.Edges = append(g.Edges, Edge{
				From:  owner,
				To:    r.Then.Target,
				Kind:  EdgeEffect,
				Label: fmt.Sprintf("%s: hide %d option(s)", label, len(r.Then.Options)),
			})

		case schema.ActionPipeAnswer:
			if _, ok := reg.Lookup(r.Then.Target); !ok {
				g.Warnings = append(g.Warnings, (&engine.DanglingReferenceError{RuleID: r.ID, Kind: "question", Ref: r.Then.Target}).Error())
				continue
			}
			g.Edges = append(g.Edges, Edge{
				From:  owner,
				To:    r.Then.Target,
				Kind:  EdgeEffect,
				Label: fmt.Sprintf("pipe %s → %s", r.Then.Source, r.Then.Field),
			})

		default:
			nav, err := engine.Resolve(r.Then, engine.Context{Current: owner, Registry: reg})
			if err != nil {
				g.Warnings = append(g.Warnings, fmt.Sprintf("rule %q: %v", r.ID, err))
				continue
			}
			to := nav.Target
			if nav.Terminal {
				to = "end"
			}
			g.Edges = append(g.Edges, Edge{From: owner, To: to, Kind: EdgeRule, Label: label})
		}
	}

	return g
}

// conditionLabel renders a condition as a short edge label.
func conditionLabel(c schema.Condition) string {
	switch c.Operator {
	case schema.OpAnswered:
		return fmt.Sprintf("%s answered", c.Question)
	case schema.OpEquals:
		return fmt.Sprintf("%s = %s", c.Question, c.Value)
	case schema.OpNotEquals:
		return fmt.Sprintf("%s ≠ %s", c.Question, c.Value)
	}
	return c.Question
}
