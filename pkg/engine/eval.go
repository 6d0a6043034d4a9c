package engine

import "github.com/quillform/quill/pkg/schema"

// Evaluate reports whether a rule's condition holds against the current
// answer snapshot.
//
// equals against a multi-select answer is membership, not full-array
// equality, and not_equals is the plain negation of that membership.
// Rule authors depend on this asymmetry; do not "fix" it.
//
// Value/answer type mismatches are soft: both sides are coerced to
// strings and simply compare unequal when the representations differ.
// A condition over an absent answer evaluates against no members, so
// equals is false and not_equals is true — never a panic.
func Evaluate(cond schema.Condition, answers AnswerSet) bool {
	if cond.Question == "" {
		return false
	}
	switch cond.Operator {
	case schema.OpAnswered:
		return answers.Answered(cond.Question)
	case schema.OpEquals:
		return contains(members(answers[cond.Question]), cond.Value)
	case schema.OpNotEquals:
		return !contains(members(answers[cond.Question]), cond.Value)
	}
	// Unknown operator: never satisfied, consistent with the malformed
	// rule policy.
	return false
}

// wellFormed reports whether a rule carries the fields evaluation needs.
// Malformed rules are skipped entirely, never treated as satisfied.
func wellFormed(r schema.Rule) error {
	if r.If.Question == "" {
		return &MalformedRuleError{RuleID: r.ID, Missing: "if.question"}
	}
	if r.If.Operator == "" {
		return &MalformedRuleError{RuleID: r.ID, Missing: "if.operator"}
	}
	if r.Then.Type == "" {
		return &MalformedRuleError{RuleID: r.ID, Missing: "then.type"}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
