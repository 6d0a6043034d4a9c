package schema

import "fmt"

// ActionType tags the Action variant. The set is closed: the navigator
// switches over it exhaustively and rejects unknown tags at validation
// time, so a rule can never steer the survey into an undefined state.
type ActionType string

const (
	// Navigational actions.
	ActionGotoQuestion      ActionType = "goto_question"
	ActionGotoBlock         ActionType = "goto_block"
	ActionGotoBlockQuestion ActionType = "goto_block_question"
	ActionSkipQuestion      ActionType = "skip_question"
	ActionSkipBlock         ActionType = "skip_block"
	ActionEnd               ActionType = "end"
	ActionSkipEnd           ActionType = "skip_end"

	// Side-effect actions.
	ActionShowMessage ActionType = "show_message"
	ActionHideOptions ActionType = "hide_options"
	ActionPipeAnswer  ActionType = "pipe_answer"
)

// PipeField names the presentation field a pipe_answer action writes into.
type PipeField string

const (
	PipeLabel       PipeField = "label"
	PipeDescription PipeField = "description"
	PipePlaceholder PipeField = "config.placeholder"
)

// Action is the tagged variant on the "then" side of a rule. Only the
// fields matching Type are meaningful; the rest stay empty.
type Action struct {
	Type ActionType `yaml:"type" json:"type" jsonschema:"required,enum=goto_question,enum=goto_block,enum=goto_block_question,enum=skip_question,enum=skip_block,enum=end,enum=skip_end,enum=show_message,enum=hide_options,enum=pipe_answer"`

	// goto_question / goto_block_question: target question serial.
	Question string `yaml:"question,omitempty" json:"question,omitempty"`

	// goto_block: target block id.
	Block string `yaml:"block,omitempty" json:"block,omitempty"`

	// show_message: the message text.
	Text string `yaml:"text,omitempty" json:"text,omitempty"`

	// hide_options / pipe_answer: target question serial.
	Target string `yaml:"target,omitempty" json:"target,omitempty"`

	// hide_options: option serials to suppress on the target question.
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`

	// pipe_answer: source question serial and destination field.
	Source string    `yaml:"source,omitempty" json:"source,omitempty"`
	Field  PipeField `yaml:"field,omitempty"  json:"field,omitempty" jsonschema:"enum=label,enum=description,enum=config.placeholder"`
}

// Navigational reports whether the action moves the question pointer
// (as opposed to show_message/hide_options/pipe_answer side effects).
func (a Action) Navigational() bool {
	switch a.Type {
	case ActionGotoQuestion, ActionGotoBlock, ActionGotoBlockQuestion,
		ActionSkipQuestion, ActionSkipBlock, ActionEnd, ActionSkipEnd:
		return true
	}
	return false
}

// Terminal reports whether the action ends the survey outright.
func (a Action) Terminal() bool {
	return a.Type == ActionEnd || a.Type == ActionSkipEnd
}

// KnownActionType reports whether t is in the closed action vocabulary.
func KnownActionType(t ActionType) bool {
	switch t {
	case ActionGotoQuestion, ActionGotoBlock, ActionGotoBlockQuestion,
		ActionSkipQuestion, ActionSkipBlock, ActionEnd, ActionSkipEnd,
		ActionShowMessage, ActionHideOptions, ActionPipeAnswer:
		return true
	}
	return false
}

// String renders a short human-readable form for graph edge labels and
// error messages.
func (a Action) String() string {
	switch a.Type {
	case ActionGotoQuestion, ActionGotoBlockQuestion:
		return fmt.Sprintf("%s → %s", a.Type, a.Question)
	case ActionGotoBlock:
		return fmt.Sprintf("goto_block → %s", a.Block)
	case ActionShowMessage:
		return "show_message"
	case ActionHideOptions:
		return fmt.Sprintf("hide_options on %s", a.Target)
	case ActionPipeAnswer:
		return fmt.Sprintf("pipe %s → %s.%s", a.Source, a.Target, a.Field)
	default:
		return string(a.Type)
	}
}
