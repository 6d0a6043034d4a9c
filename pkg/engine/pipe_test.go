package engine

import (
	"testing"

	"github.com/quillform/quill/pkg/schema"
)

func TestPipedValue(t *testing.T) {
	answers := AnswerSet{
		"Q1": "yes",
		"Q3": []string{"reports", "api"},
	}

	if got := PipedValue(schema.PipeLabel, "Q1", answers); got != "yes" {
		t.Errorf("piped = %q, want yes", got)
	}
	if got := PipedValue(schema.PipeDescription, "Q3", answers); got != "reports, api" {
		t.Errorf("piped = %q, want joined multi-select", got)
	}
	// Unanswered source pipes the empty string; never an error.
	if got := PipedValue(schema.PipeLabel, "Q9", answers); got != "" {
		t.Errorf("piped = %q, want empty for unanswered source", got)
	}
}

func TestApplyPipingLabel(t *testing.T) {
	reg, rules := engineFixture()
	q, _ := reg.Lookup("Q3")

	out := ApplyPiping(q, rules, AnswerSet{"Q1": "yes"})
	if out.Label != "Why did you answer yes?" {
		t.Errorf("label = %q, want the piped form", out.Label)
	}
	// The canonical definition is never touched.
	if q.Label != "Why did you answer {{Q1}}?" {
		t.Errorf("original label mutated to %q", q.Label)
	}
}

// TestApplyPipingUnsatisfied: the answered-gated pipe rule leaves the
// token in place until Q1 has an answer.
func TestApplyPipingUnsatisfied(t *testing.T) {
	reg, rules := engineFixture()
	q, _ := reg.Lookup("Q3")

	out := ApplyPiping(q, rules, AnswerSet{})
	if out.Label != "Why did you answer {{Q1}}?" {
		t.Errorf("label = %q, want untouched token", out.Label)
	}
}

// TestApplyPipingEmptySource: a satisfied rule with an unanswered source
// substitutes the empty string.
func TestApplyPipingEmptySource(t *testing.T) {
	q := &schema.Question{Serial: "Q2", Type: schema.TypeText, Label: "About {{Q9}}:"}
	rules := []schema.Rule{{
		ID:   "pipe",
		If:   schema.Condition{Question: "Q1", Operator: schema.OpEquals, Value: "yes"},
		Then: schema.Action{Type: schema.ActionPipeAnswer, Source: "Q9", Target: "Q2", Field: schema.PipeLabel},
	}}

	out := ApplyPiping(q, rules, AnswerSet{"Q1": "yes"})
	if out.Label != "About :" {
		t.Errorf("label = %q, want empty substitution", out.Label)
	}
}

func TestApplyPipingPlaceholder(t *testing.T) {
	q := &schema.Question{
		Serial: "Q2",
		Type:   schema.TypeText,
		Config: &schema.QuestionConfig{Placeholder: "e.g. {{Q1}}"},
	}
	rules := []schema.Rule{{
		ID:   "pipe",
		If:   schema.Condition{Question: "Q1", Operator: schema.OpAnswered},
		Then: schema.Action{Type: schema.ActionPipeAnswer, Source: "Q1", Target: "Q2", Field: schema.PipePlaceholder},
	}}

	out := ApplyPiping(q, rules, AnswerSet{"Q1": "weekly"})
	if out.Config.Placeholder != "e.g. weekly" {
		t.Errorf("placeholder = %q, want piped", out.Config.Placeholder)
	}
	if q.Config.Placeholder != "e.g. {{Q1}}" {
		t.Errorf("original config mutated to %q", q.Config.Placeholder)
	}
}

// TestApplyPipingIdempotent: the same snapshot pipes the same text.
func TestApplyPipingIdempotent(t *testing.T) {
	reg, rules := engineFixture()
	q, _ := reg.Lookup("Q3")
	answers := AnswerSet{"Q1": "no"}

	a := ApplyPiping(q, rules, answers)
	b := ApplyPiping(q, rules, answers)
	if a.Label != b.Label {
		t.Errorf("idempotence broken: %q vs %q", a.Label, b.Label)
	}
}
