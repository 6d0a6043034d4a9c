package engine

import (
	"github.com/quillform/quill/pkg/registry"
	"github.com/quillform/quill/pkg/schema"
)

// engineSurvey builds the shared fixture: three blocks, branching on Q1,
// option suppression and piping driven by the Q1 answer.
func engineSurvey() *schema.Survey {
	return &schema.Survey{
		APIVersion: "survey/v1",
		Meta:       schema.Meta{Name: "fixture", EndMessage: "Bye"},
		Blocks: []schema.Block{
			{ID: "screen", Name: "Screening", Questions: []schema.Question{
				{
					Serial: "Q1",
					Type:   schema.TypeMultipleChoice,
					Label:  "Do you use the product?",
					Config: &schema.QuestionConfig{Options: []schema.Option{
						{Serial: "yes", Label: "Yes"},
						{Serial: "no", Label: "No"},
					}},
					Rules: []schema.Rule{
						{
							ID:   "q1-skip",
							If:   schema.Condition{Question: "Q1", Operator: schema.OpEquals, Value: "no"},
							Then: schema.Action{Type: schema.ActionSkipBlock},
						},
						{
							ID:   "q1-msg",
							If:   schema.Condition{Question: "Q1", Operator: schema.OpEquals, Value: "no"},
							Then: schema.Action{Type: schema.ActionShowMessage, Text: "Thanks anyway"},
						},
						{
							ID:   "q1-hide-b",
							If:   schema.Condition{Question: "Q1", Operator: schema.OpEquals, Value: "yes"},
							Then: schema.Action{Type: schema.ActionHideOptions, Target: "Q2", Options: []string{"opt_b"}},
						},
						{
							ID:   "q1-hide-c",
							If:   schema.Condition{Question: "Q1", Operator: schema.OpEquals, Value: "yes"},
							Then: schema.Action{Type: schema.ActionHideOptions, Target: "Q2", Options: []string{"opt_c"}},
						},
						{
							ID:   "q1-pipe",
							If:   schema.Condition{Question: "Q1", Operator: schema.OpAnswered},
							Then: schema.Action{Type: schema.ActionPipeAnswer, Source: "Q1", Target: "Q3", Field: schema.PipeLabel},
						},
					},
				},
				{
					Serial: "Q2",
					Type:   schema.TypeMultipleChoice,
					Label:  "Which plan?",
					Config: &schema.QuestionConfig{Options: []schema.Option{
						{Serial: "opt_a", Label: "Starter"},
						{Serial: "opt_b", Label: "Team"},
						{Serial: "opt_c", Label: "Enterprise"},
					}},
					Rules: []schema.Rule{
						{
							ID:   "q2-goto",
							If:   schema.Condition{Question: "Q2", Operator: schema.OpEquals, Value: "opt_a"},
							Then: schema.Action{Type: schema.ActionGotoQuestion, Question: "Q5"},
						},
					},
				},
			}},
			{ID: "detail", Name: "Details", Questions: []schema.Question{
				{Serial: "Q3", Type: schema.TypeText, Label: "Why did you answer {{Q1}}?"},
				{Serial: "Q4", Type: schema.TypeText, Label: "Anything else?"},
			}},
			{ID: "final", Name: "Final", Questions: []schema.Question{
				{Serial: "Q5", Type: schema.TypeText, Label: "Closing thoughts?"},
			}},
		},
	}
}

func engineFixture() (*registry.Registry, []schema.Rule) {
	s := engineSurvey()
	return registry.Build(s), s.Rules()
}
