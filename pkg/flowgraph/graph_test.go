package flowgraph

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/quillform/quill/pkg/registry"
	"github.com/quillform/quill/pkg/schema"
)

func graphSurvey() *schema.Survey {
	return &schema.Survey{
		APIVersion: "survey/v1",
		Meta:       schema.Meta{Name: "g"},
		Blocks: []schema.Block{
			{ID: "a", Name: "Screening", Questions: []schema.Question{
				{
					Serial: "Q1",
					Type:   schema.TypeMultipleChoice,
					Label:  "Attend?",
					Config: &schema.QuestionConfig{Options: []schema.Option{
						{Serial: "yes"}, {Serial: "no"},
					}},
					Rules: []schema.Rule{
						{
							ID:   "skip",
							If:   schema.Condition{Question: "Q1", Operator: schema.OpEquals, Value: "no"},
							Then: schema.Action{Type: schema.ActionSkipBlock},
						},
						{
							ID:   "sorry",
							If:   schema.Condition{Question: "Q1", Operator: schema.OpEquals, Value: "no"},
							Then: schema.Action{Type: schema.ActionShowMessage, Text: "Sorry!"},
						},
						{
							ID:   "hide",
							If:   schema.Condition{Question: "Q1", Operator: schema.OpEquals, Value: "no"},
							Then: schema.Action{Type: schema.ActionHideOptions, Target: "Q3", Options: []string{"x", "y"}},
						},
					},
				},
				{Serial: "Q2", Type: schema.TypeText, Label: "Highlight?"},
			}},
			{ID: "b", Name: "Closing", Questions: []schema.Question{
				{
					Serial: "Q3",
					Type:   schema.TypeCheckbox,
					Label:  "Improve?",
					Config: &schema.QuestionConfig{Options: []schema.Option{
						{Serial: "x"}, {Serial: "y"}, {Serial: "z"},
					}},
					Rules: []schema.Rule{{
						ID:   "finish",
						If:   schema.Condition{Question: "Q3", Operator: schema.OpAnswered},
						Then: schema.Action{Type: schema.ActionEnd},
					}},
				},
			}},
		},
	}
}

func buildGraph(t *testing.T, s *schema.Survey) *Graph {
	t.Helper()
	return Build(registry.Build(s), s.Rules())
}

func findEdge(g *Graph, from, to, kind string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.From == from && e.To == to && e.Kind == kind {
			return e, true
		}
	}
	return Edge{}, false
}

func TestBuildNodes(t *testing.T) {
	g := buildGraph(t, graphSurvey())

	kinds := make(map[string]string)
	for _, n := range g.Nodes {
		kinds[n.ID] = n.Kind
	}
	if kinds["start"] != NodeStart || kinds["end"] != NodeEnd {
		t.Errorf("missing synthetic start/end nodes: %v", kinds)
	}
	for _, q := range []string{"Q1", "Q2", "Q3"} {
		if kinds[q] != NodeQuestion {
			t.Errorf("node %s kind = %q, want question", q, kinds[q])
		}
	}
	if kinds["msg_1"] != NodeMessage {
		t.Errorf("expected a message node, got %v", kinds)
	}
}

func TestBuildSequenceEdges(t *testing.T) {
	g := buildGraph(t, graphSurvey())

	for _, pair := range [][2]string{{"start", "Q1"}, {"Q1", "Q2"}, {"Q2", "Q3"}, {"Q3", "end"}} {
		if _, ok := findEdge(g, pair[0], pair[1], EdgeSequence); !ok {
			t.Errorf("missing sequence edge %s → %s", pair[0], pair[1])
		}
	}
}

func TestBuildRuleEdges(t *testing.T) {
	g := buildGraph(t, graphSurvey())

	// skip_block from Q1 resolves to the next block's entry Q3.
	e, ok := findEdge(g, "Q1", "Q3", EdgeRule)
	if !ok {
		t.Fatal("missing rule edge Q1 → Q3")
	}
	if !strings.Contains(e.Label, "Q1 = no") {
		t.Errorf("edge label = %q, want the condition", e.Label)
	}

	// end action points at the synthetic end node.
	if _, ok := findEdge(g, "Q3", "end", EdgeRule); !ok {
		t.Error("missing rule edge Q3 → end")
	}

	// show_message hangs off its owner.
	if _, ok := findEdge(g, "Q1", "msg_1", EdgeRule); !ok {
		t.Error("missing message edge Q1 → msg_1")
	}
}

func TestBuildEffectEdges(t *testing.T) {
	g := buildGraph(t, graphSurvey())

	e, ok := findEdge(g, "Q1", "Q3", EdgeEffect)
	if !ok {
		t.Fatal("missing effect edge for hide_options")
	}
	if !strings.Contains(e.Label, "hide 2 option(s)") {
		t.Errorf("effect label = %q, want hide count", e.Label)
	}
}

func TestBuildWarnsOnDanglingRule(t *testing.T) {
	s := graphSurvey()
	s.Blocks[0].Questions[0].Rules = append(s.Blocks[0].Questions[0].Rules, schema.Rule{
		ID:   "bad",
		If:   schema.Condition{Question: "Q1", Operator: schema.OpAnswered},
		Then: schema.Action{Type: schema.ActionGotoQuestion, Question: "Q99"},
	})
	g := buildGraph(t, s)

	found := false
	for _, w := range g.Warnings {
		if strings.Contains(w, "Q99") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want one naming Q99", g.Warnings)
	}
	if _, ok := findEdge(g, "Q1", "Q99", EdgeRule); ok {
		t.Error("dangling rule must not produce an edge")
	}
}

func TestBuildEmptySurvey(t *testing.T) {
	s := &schema.Survey{APIVersion: "survey/v1", Meta: schema.Meta{Name: "empty"}}
	g := buildGraph(t, s)

	if _, ok := findEdge(g, "start", "end", EdgeSequence); !ok {
		t.Error("empty survey should connect start directly to end")
	}
}

func TestMermaid(t *testing.T) {
	g := buildGraph(t, graphSurvey())
	out := Mermaid(g)

	if !strings.HasPrefix(out, "flowchart TD\n") {
		t.Error("missing flowchart header")
	}
	for _, want := range []string{
		"START_NODE([Start])",
		"END_NODE([End])",
		`Q1["Attend?"]`,
		"Q3 --> END_NODE",
		"style END_NODE",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("mermaid output missing %q\n%s", want, out)
		}
	}
	// "end" is a Mermaid keyword and must never appear as a bare node id.
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "end ") {
			t.Errorf("unescaped end node id in line %q", line)
		}
	}
}

func TestASCII(t *testing.T) {
	g := buildGraph(t, graphSurvey())
	out := ASCII(g)

	for _, want := range []string{"● Start", "◆ End", "Q1", "Q3", "block: a", "block: b"} {
		if !strings.Contains(out, want) {
			t.Errorf("ascii output missing %q\n%s", want, out)
		}
	}
}

// TestASCIITruncatesWideLabelCleanly: truncation of a long label must cut
// on a rune boundary, never mid-sequence.
func TestASCIITruncatesWideLabelCleanly(t *testing.T) {
	s := graphSurvey()
	s.Blocks[0].Questions[0].Label = strings.Repeat("é", 60)
	out := ASCII(buildGraph(t, s))

	if !utf8.ValidString(out) {
		t.Error("ascii output contains invalid UTF-8")
	}
	if !strings.Contains(out, "…") {
		t.Error("long label should end in an ellipsis")
	}
}
