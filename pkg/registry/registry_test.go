package registry

import (
	"testing"

	"github.com/quillform/quill/pkg/schema"
)

func testSurvey() *schema.Survey {
	return &schema.Survey{
		APIVersion: "survey/v1",
		Meta:       schema.Meta{Name: "t"},
		Blocks: []schema.Block{
			{ID: "intro", Name: "Introduction", Questions: []schema.Question{
				{Serial: "Q1", Type: schema.TypeMultipleChoice, Config: &schema.QuestionConfig{
					Options: []schema.Option{
						{Serial: "yes", Label: "Yes"},
						{Serial: "no", Label: "No"},
					},
				}},
				{Serial: "Q2", Type: schema.TypeText},
			}},
			{ID: "detail", Name: "Details", Questions: []schema.Question{
				{Serial: "Q3", Type: schema.TypeText},
			}},
			{ID: "wrap", Name: "Wrap up", Questions: []schema.Question{
				{Serial: "Q4", Type: schema.TypeRating},
				{Serial: "Q5", Type: schema.TypeText},
			}},
		},
	}
}

func TestBuildGlobalOrder(t *testing.T) {
	r := Build(testSurvey())

	want := []string{"Q1", "Q2", "Q3", "Q4", "Q5"}
	if len(r.GlobalOrder) != len(want) {
		t.Fatalf("global order = %v, want %v", r.GlobalOrder, want)
	}
	for i := range want {
		if r.GlobalOrder[i] != want[i] {
			t.Errorf("GlobalOrder[%d] = %q, want %q", i, r.GlobalOrder[i], want[i])
		}
	}

	if r.QuestionBlock["Q3"] != "detail" {
		t.Errorf("Q3 block = %q, want detail", r.QuestionBlock["Q3"])
	}
	if r.BlockNames["wrap"] != "Wrap up" {
		t.Errorf("wrap name = %q, want %q", r.BlockNames["wrap"], "Wrap up")
	}
}

func TestBuildOptionEntries(t *testing.T) {
	r := Build(testSurvey())

	opts := r.Options["Q1"]
	if len(opts) != 2 {
		t.Fatalf("Q1 options = %d, want 2", len(opts))
	}
	if opts[0].Value != "yes" {
		t.Errorf("value = %q, want yes", opts[0].Value)
	}
	if opts[0].Label != "yes – Yes" {
		t.Errorf("label = %q, want %q", opts[0].Label, "yes – Yes")
	}

	if _, ok := r.Options["Q2"]; ok {
		t.Error("Q2 has no options, expected no entry")
	}
}

// TestBuildDuplicateSerialLastWins documents registry behavior on
// duplicate serials; the validator flags them, the registry does not.
func TestBuildDuplicateSerialLastWins(t *testing.T) {
	s := testSurvey()
	s.Blocks[1].Questions = append(s.Blocks[1].Questions, schema.Question{
		Serial: "Q1", Type: schema.TypeText, Label: "shadow",
	})
	r := Build(s)

	q, ok := r.Lookup("Q1")
	if !ok {
		t.Fatal("Q1 missing")
	}
	if q.Label != "shadow" {
		t.Errorf("Q1 label = %q, want the later definition", q.Label)
	}
}

func TestLookupHelpers(t *testing.T) {
	r := Build(testSurvey())

	if r.First() != "Q1" {
		t.Errorf("First = %q, want Q1", r.First())
	}
	if got := r.IndexOf("Q3"); got != 2 {
		t.Errorf("IndexOf(Q3) = %d, want 2", got)
	}
	if got := r.IndexOf("Q99"); got != -1 {
		t.Errorf("IndexOf(Q99) = %d, want -1", got)
	}

	if entry, ok := r.BlockEntry("wrap"); !ok || entry != "Q4" {
		t.Errorf("BlockEntry(wrap) = %q,%v, want Q4,true", entry, ok)
	}
	if _, ok := r.BlockEntry("missing"); ok {
		t.Error("BlockEntry(missing) should not resolve")
	}
}

func TestNextGlobal(t *testing.T) {
	r := Build(testSurvey())

	if next, ok := r.NextGlobal("Q2"); !ok || next != "Q3" {
		t.Errorf("NextGlobal(Q2) = %q,%v, want Q3,true", next, ok)
	}
	if _, ok := r.NextGlobal("Q5"); ok {
		t.Error("NextGlobal(last) should not resolve")
	}
	if _, ok := r.NextGlobal("Q99"); ok {
		t.Error("NextGlobal(unknown) should not resolve")
	}
}

func TestNextInBlock(t *testing.T) {
	r := Build(testSurvey())

	if next, ok := r.NextInBlock("Q1"); !ok || next != "Q2" {
		t.Errorf("NextInBlock(Q1) = %q,%v, want Q2,true", next, ok)
	}
	// Q2 is the last of its block; the caller falls back to global order.
	if _, ok := r.NextInBlock("Q2"); ok {
		t.Error("NextInBlock(Q2) should not resolve")
	}
}

func TestNextBlock(t *testing.T) {
	r := Build(testSurvey())

	if next, ok := r.NextBlock("Q1"); !ok || next != "detail" {
		t.Errorf("NextBlock(Q1) = %q,%v, want detail,true", next, ok)
	}
	if _, ok := r.NextBlock("Q5"); ok {
		t.Error("NextBlock from the last block should not resolve")
	}
}

// TestBuildDoesNotMutateSurvey rebuilds twice and checks determinism.
func TestBuildDeterministic(t *testing.T) {
	s := testSurvey()
	a := Build(s)
	b := Build(s)

	if len(a.GlobalOrder) != len(b.GlobalOrder) {
		t.Fatal("rebuild changed order length")
	}
	for i := range a.GlobalOrder {
		if a.GlobalOrder[i] != b.GlobalOrder[i] {
			t.Errorf("order diverged at %d: %q vs %q", i, a.GlobalOrder[i], b.GlobalOrder[i])
		}
	}
}
