package engine

import (
	"github.com/quillform/quill/pkg/registry"
	"github.com/quillform/quill/pkg/schema"
)

// VisibleOptions returns the target question's options minus every option
// suppressed by a currently-satisfied hide_options rule. Multiple
// matching rules union their hide sets; authored order is preserved for
// whatever remains. Questions without an option-bearing type have no
// options to suppress, so the call is a no-op returning nil.
func VisibleOptions(serial string, rules []schema.Rule, answers AnswerSet, reg *registry.Registry) []registry.OptionEntry {
	q, ok := reg.Lookup(serial)
	if !ok || !schema.OptionBearing(q.Type) {
		return nil
	}
	full := reg.Options[serial]
	if len(full) == 0 {
		return nil
	}

	hidden := hiddenOptions(serial, rules, answers)
	if len(hidden) == 0 {
		out := make([]registry.OptionEntry, len(full))
		copy(out, full)
		return out
	}

	out := make([]registry.OptionEntry, 0, len(full))
	for _, opt := range full {
		if !hidden[opt.Value] {
			out = append(out, opt)
		}
	}
	return out
}

// hiddenOptions computes the union of the hide sets of all satisfied
// hide_options rules targeting serial.
func hiddenOptions(serial string, rules []schema.Rule, answers AnswerSet) map[string]bool {
	var hidden map[string]bool
	for _, r := range rules {
		if r.Then.Type != schema.ActionHideOptions || r.Then.Target != serial {
			continue
		}
		if wellFormed(r) != nil || !Evaluate(r.If, answers) {
			continue
		}
		if hidden == nil {
			hidden = make(map[string]bool)
		}
		for _, opt := range r.Then.Options {
			hidden[opt] = true
		}
	}
	return hidden
}
