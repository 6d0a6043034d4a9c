package engine

import (
	"github.com/quillform/quill/pkg/registry"
	"github.com/quillform/quill/pkg/schema"
)

// Session replays one respondent's walk through a survey. The engine
// underneath stays stateless; the session owns the only mutable pieces —
// the answer snapshot and the current-question pointer — so preview
// tools, the TUI and the flow-test runner share the same walking logic.
type Session struct {
	reg      *registry.Registry
	rules    []schema.Rule
	answers  AnswerSet
	current  string
	path     []string
	messages []string
	terminal bool
	errs     []error
}

// NewSession starts a walk at the survey's first question.
func NewSession(reg *registry.Registry, rules []schema.Rule) *Session {
	s := &Session{
		reg:     reg,
		rules:   rules,
		answers: make(AnswerSet),
		current: reg.First(),
	}
	if s.current == "" {
		s.terminal = true
	} else {
		s.path = append(s.path, s.current)
	}
	return s
}

// Current returns the serial of the question being presented, or "" once
// the walk is terminal.
func (s *Session) Current() string {
	if s.terminal {
		return ""
	}
	return s.current
}

// CurrentQuestion returns the current question with piping applied, ready
// for presentation.
func (s *Session) CurrentQuestion() *schema.Question {
	if s.terminal {
		return nil
	}
	q, ok := s.reg.Lookup(s.current)
	if !ok {
		return nil
	}
	return ApplyPiping(q, s.rules, s.answers)
}

// VisibleOptions returns the suppression-filtered options of the current
// question.
func (s *Session) VisibleOptions() []registry.OptionEntry {
	if s.terminal {
		return nil
	}
	return VisibleOptions(s.current, s.rules, s.answers, s.reg)
}

// Answer records value for the current question and advances the walk.
// It returns the navigation result of the transition.
func (s *Session) Answer(value any) Result {
	if s.terminal {
		return Result{Terminal: true}
	}
	s.answers[s.current] = value

	res := NextTarget(s.current, s.rules, s.answers, s.reg)
	s.messages = append(s.messages, res.Messages...)
	s.errs = append(s.errs, res.Errs...)

	if res.Terminal {
		s.terminal = true
		return res
	}
	s.current = res.Target
	s.path = append(s.path, s.current)
	return res
}

// Back rewinds to the previously visited question, clearing its recorded
// answer so re-answering re-evaluates the same rules. Returns false at
// the start of the walk.
func (s *Session) Back() bool {
	if s.terminal {
		// A survey with no questions starts terminal with an empty path;
		// there is nothing to rewind to.
		if len(s.path) == 0 {
			return false
		}
		s.terminal = false
		s.current = s.path[len(s.path)-1]
		delete(s.answers, s.current)
		return true
	}
	if len(s.path) < 2 {
		return false
	}
	s.path = s.path[:len(s.path)-1]
	s.current = s.path[len(s.path)-1]
	delete(s.answers, s.current)
	return true
}

// Terminal reports whether the walk has ended.
func (s *Session) Terminal() bool { return s.terminal }

// Path returns the serials visited so far, in order.
func (s *Session) Path() []string {
	out := make([]string, len(s.path))
	copy(out, s.path)
	return out
}

// Messages returns every show_message text collected during the walk.
func (s *Session) Messages() []string {
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}

// Errors returns the soft errors (dangling references, malformed rules)
// encountered so far. They never stop a walk.
func (s *Session) Errors() []error {
	out := make([]error, len(s.errs))
	copy(out, s.errs)
	return out
}

// Answers returns a copy of the current answer snapshot.
func (s *Session) Answers() AnswerSet {
	out := make(AnswerSet, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}
