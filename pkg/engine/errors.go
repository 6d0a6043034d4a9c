package engine

import "fmt"

// DanglingReferenceError reports a rule action that points at a question
// or block absent from the registry. The navigator never follows such a
// reference; authoring surfaces warn on it, and the respondent runtime
// advances to the natural global-order successor instead.
type DanglingReferenceError struct {
	RuleID string
	Kind   string // "question" or "block"
	Ref    string
}

func (e *DanglingReferenceError) Error() string {
	if e.RuleID != "" {
		return fmt.Sprintf("rule %q references unknown %s %q", e.RuleID, e.Kind, e.Ref)
	}
	return fmt.Sprintf("reference to unknown %s %q", e.Kind, e.Ref)
}

// MalformedRuleError reports a rule missing required fields. Such rules
// are skipped entirely during evaluation (treated as never satisfied).
type MalformedRuleError struct {
	RuleID  string
	Missing string
}

func (e *MalformedRuleError) Error() string {
	return fmt.Sprintf("rule %q is malformed: missing %s", e.RuleID, e.Missing)
}
