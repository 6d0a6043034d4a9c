package engine

import (
	"strings"

	"github.com/quillform/quill/pkg/schema"
)

// PipedValue returns the display string substituted for a pipe_answer
// source. An unanswered source pipes the empty string; it never fails.
// Piping is idempotent: the same answer snapshot always yields the same
// value.
// The field parameter names where the value lands; the value itself is
// the same for every destination field.
func PipedValue(field schema.PipeField, source string, answers AnswerSet) string {
	v, ok := answers[source]
	if !ok {
		return ""
	}
	return DisplayString(v)
}

// ApplyPiping returns a render-time copy of the question with every
// satisfied pipe_answer rule applied. Target fields may reference the
// source answer with a "{{serial}}" placeholder; a field without the
// placeholder is left untouched. The canonical question definition is
// never mutated.
func ApplyPiping(q *schema.Question, rules []schema.Rule, answers AnswerSet) *schema.Question {
	out := *q
	if q.Config != nil {
		cfg := *q.Config
		out.Config = &cfg
	}

	for _, r := range rules {
		if r.Then.Type != schema.ActionPipeAnswer || r.Then.Target != q.Serial {
			continue
		}
		if wellFormed(r) != nil || !Evaluate(r.If, answers) {
			continue
		}
		value := PipedValue(r.Then.Field, r.Then.Source, answers)
		token := "{{" + r.Then.Source + "}}"

		switch r.Then.Field {
		case schema.PipeLabel:
			out.Label = strings.ReplaceAll(out.Label, token, value)
		case schema.PipeDescription:
			out.Description = strings.ReplaceAll(out.Description, token, value)
		case schema.PipePlaceholder:
			if out.Config == nil {
				out.Config = &schema.QuestionConfig{}
			}
			out.Config.Placeholder = strings.ReplaceAll(out.Config.Placeholder, token, value)
		}
	}
	return &out
}
