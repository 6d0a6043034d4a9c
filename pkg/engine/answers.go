// Package engine implements the survey branching runtime: condition
// evaluation, action resolution, option suppression and answer piping.
// Every function is a pure projection of immutable inputs — a survey
// registry, a rule list and an answer snapshot — so concurrent respondent
// sessions never need synchronization.
package engine

import (
	"sort"
	"strconv"
	"strings"
)

// AnswerSet maps question serials to the respondent's current answer:
// a scalar for single-value questions, a slice for multi-select, or a
// map for matrix types. The engine treats it as an immutable snapshot
// per evaluation call; the surrounding response-collection flow owns it.
type AnswerSet map[string]any

// Answered reports whether serial has a non-empty answer. Empty strings,
// empty slices and nil all count as unanswered.
func (a AnswerSet) Answered(serial string) bool {
	v, ok := a[serial]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// coerce renders a scalar answer or condition value as its canonical
// string form. Type mismatches between rule values and answers are
// resolved by comparing these representations: differing representations
// simply compare unequal, they never fail the evaluation.
func coerce(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return stringify(t)
	}
}

// members returns the comparable string forms of an answer: one element
// per entry for multi-select answers, a single element otherwise. An
// absent or nil answer yields no members, so equals is false and
// not_equals is true against it.
func members(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, coerce(e))
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return []string{coerce(v)}
	}
}

// DisplayString coerces an answer to the form piped into question text:
// scalars via coerce, multi-select answers joined with ", ".
func DisplayString(v any) string {
	switch t := v.(type) {
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, coerce(e))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(t, ", ")
	default:
		return coerce(v)
	}
}

// stringify is the fallback for structured answers (matrix maps and the
// like): deterministic key-sorted "k: v" pairs.
func stringify(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+coerce(m[k]))
	}
	return strings.Join(parts, "; ")
}
