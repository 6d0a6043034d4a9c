package schema

// RuleBuilder constructs Rule values without mutating any existing rule.
// The editor previously patched nested rule fields in place by dotted
// path; building a fresh value keeps snapshots immutable and safe to
// share across concurrent evaluations.
type RuleBuilder struct {
	rule Rule
}

// NewRule starts a builder for a rule with the given id.
func NewRule(id string) *RuleBuilder {
	return &RuleBuilder{rule: Rule{ID: id}}
}

// When sets the condition to operator(question, value).
func (b *RuleBuilder) When(question, operator, value string) *RuleBuilder {
	b.rule.If = Condition{Question: question, Operator: operator, Value: value}
	return b
}

// WhenAnswered sets the condition to "question has any non-empty answer".
func (b *RuleBuilder) WhenAnswered(question string) *RuleBuilder {
	b.rule.If = Condition{Question: question, Operator: OpAnswered}
	return b
}

// GotoQuestion targets a question serial directly.
func (b *RuleBuilder) GotoQuestion(serial string) *RuleBuilder {
	b.rule.Then = Action{Type: ActionGotoQuestion, Question: serial}
	return b
}

// GotoBlock targets a block's entry question.
func (b *RuleBuilder) GotoBlock(blockID string) *RuleBuilder {
	b.rule.Then = Action{Type: ActionGotoBlock, Block: blockID}
	return b
}

// GotoBlockQuestion targets a question serial inside another block.
func (b *RuleBuilder) GotoBlockQuestion(serial string) *RuleBuilder {
	b.rule.Then = Action{Type: ActionGotoBlockQuestion, Question: serial}
	return b
}

// SkipQuestion advances past the current question.
func (b *RuleBuilder) SkipQuestion() *RuleBuilder {
	b.rule.Then = Action{Type: ActionSkipQuestion}
	return b
}

// SkipBlock advances to the entry question of the next block.
func (b *RuleBuilder) SkipBlock() *RuleBuilder {
	b.rule.Then = Action{Type: ActionSkipBlock}
	return b
}

// End terminates the survey.
func (b *RuleBuilder) End() *RuleBuilder {
	b.rule.Then = Action{Type: ActionEnd}
	return b
}

// ShowMessage displays text without moving the question pointer.
func (b *RuleBuilder) ShowMessage(text string) *RuleBuilder {
	b.rule.Then = Action{Type: ActionShowMessage, Text: text}
	return b
}

// HideOptions suppresses the named options on the target question.
func (b *RuleBuilder) HideOptions(target string, options ...string) *RuleBuilder {
	opts := make([]string, len(options))
	copy(opts, options)
	b.rule.Then = Action{Type: ActionHideOptions, Target: target, Options: opts}
	return b
}

// PipeAnswer substitutes source's answer into field of the target question.
func (b *RuleBuilder) PipeAnswer(source, target string, field PipeField) *RuleBuilder {
	b.rule.Then = Action{Type: ActionPipeAnswer, Source: source, Target: target, Field: field}
	return b
}

// Build returns the finished rule by value. The builder can keep being
// used afterwards; later edits do not affect already-built rules.
func (b *RuleBuilder) Build() Rule {
	r := b.rule
	if len(r.Then.Options) > 0 {
		opts := make([]string, len(r.Then.Options))
		copy(opts, r.Then.Options)
		r.Then.Options = opts
	}
	return r
}
