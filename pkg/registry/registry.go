// Package registry flattens a survey's block/question tree into the
// lookup maps and global presentation order the navigation engine works
// against. Build is pure and deterministic for a given survey snapshot;
// callers rebuild on every schema edit rather than patching in place.
package registry

import "github.com/quillform/quill/pkg/schema"

// OptionEntry is an option prepared for editor display and suppression:
// Value is the option's serial, Label is "{serial} – {label}".
type OptionEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Registry holds the flattened view of one survey version.
type Registry struct {
	// Questions maps serial → question definition. Duplicate serials
	// resolve last-wins; that is an authoring-time problem the validator
	// flags, not something the runtime recovers from.
	Questions map[string]*schema.Question

	// Options maps serial → selectable option list for questions whose
	// config carries a non-empty option list. Other questions have no entry.
	Options map[string][]OptionEntry

	// GlobalOrder lists every question serial in block-then-question order.
	GlobalOrder []string

	// QuestionBlock maps serial → owning block id.
	QuestionBlock map[string]string

	// BlockOrder lists block ids in the order they are encountered.
	BlockOrder []string

	// BlockNames maps block id → display name.
	BlockNames map[string]string
}

// Build flattens the survey in a single pass.
func Build(s *schema.Survey) *Registry {
	r := &Registry{
		Questions:     make(map[string]*schema.Question),
		Options:       make(map[string][]OptionEntry),
		QuestionBlock: make(map[string]string),
		BlockNames:    make(map[string]string),
	}

	for bi := range s.Blocks {
		b := &s.Blocks[bi]
		r.BlockOrder = append(r.BlockOrder, b.ID)
		r.BlockNames[b.ID] = b.Name

		for qi := range b.Questions {
			q := &b.Questions[qi]
			if q.Serial == "" {
				continue
			}
			r.Questions[q.Serial] = q
			r.QuestionBlock[q.Serial] = b.ID
			r.GlobalOrder = append(r.GlobalOrder, q.Serial)

			if q.Config != nil && len(q.Config.Options) > 0 {
				entries := make([]OptionEntry, 0, len(q.Config.Options))
				for _, opt := range q.Config.Options {
					entries = append(entries, OptionEntry{
						Label: opt.Serial + " – " + opt.Label,
						Value: opt.Serial,
					})
				}
				r.Options[q.Serial] = entries
			}
		}
	}
	return r
}

// Lookup returns the question for a serial.
func (r *Registry) Lookup(serial string) (*schema.Question, bool) {
	q, ok := r.Questions[serial]
	return q, ok
}

// IndexOf returns the position of serial in GlobalOrder, or -1.
func (r *Registry) IndexOf(serial string) int {
	for i, s := range r.GlobalOrder {
		if s == serial {
			return i
		}
	}
	return -1
}

// First returns the entry question of the whole survey ("" if empty).
func (r *Registry) First() string {
	if len(r.GlobalOrder) == 0 {
		return ""
	}
	return r.GlobalOrder[0]
}

// BlockEntry returns the entry question of a block: the first serial in
// global order whose owning block matches.
func (r *Registry) BlockEntry(blockID string) (string, bool) {
	for _, serial := range r.GlobalOrder {
		if r.QuestionBlock[serial] == blockID {
			return serial, true
		}
	}
	return "", false
}

// NextGlobal returns the question after serial in global order.
func (r *Registry) NextGlobal(serial string) (string, bool) {
	i := r.IndexOf(serial)
	if i < 0 || i+1 >= len(r.GlobalOrder) {
		return "", false
	}
	return r.GlobalOrder[i+1], true
}

// NextInBlock returns the next question sharing serial's block. The
// caller decides what to do when the block is exhausted.
func (r *Registry) NextInBlock(serial string) (string, bool) {
	block, ok := r.QuestionBlock[serial]
	if !ok {
		return "", false
	}
	i := r.IndexOf(serial)
	if i < 0 {
		return "", false
	}
	for _, next := range r.GlobalOrder[i+1:] {
		if r.QuestionBlock[next] == block {
			return next, true
		}
	}
	return "", false
}

// NextBlock returns the block id immediately following serial's block in
// block order.
func (r *Registry) NextBlock(serial string) (string, bool) {
	block, ok := r.QuestionBlock[serial]
	if !ok {
		return "", false
	}
	for i, id := range r.BlockOrder {
		if id == block {
			if i+1 < len(r.BlockOrder) {
				return r.BlockOrder[i+1], true
			}
			return "", false
		}
	}
	return "", false
}
