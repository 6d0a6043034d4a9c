package engine

import (
	"github.com/quillform/quill/pkg/registry"
	"github.com/quillform/quill/pkg/schema"
)

// Context carries the navigation inputs for a single Resolve call.
type Context struct {
	Current  string
	Registry *registry.Registry
}

// Result is the outcome of resolving navigation from one question.
// Exactly one of Target/Terminal is meaningful: an empty Target with
// Terminal false means the action was non-navigational.
type Result struct {
	Target   string            // next question serial; empty when terminal or non-navigational
	Terminal bool              // survey ends here
	Messages []string          // show_message side effects collected on the way
	Meta     map[string]string // extra display data, e.g. "nextBlockName" for skip_block
	Errs     []error           // soft errors (dangling references) surfaced to the caller
}

// Resolve computes the concrete outcome of a single navigational action.
// It is a pure function of (action, context): no state survives the call.
//
// A dangling target produces a *DanglingReferenceError and an empty
// result — the resolver never advances to an undefined question. Callers
// at respondent runtime fall back to the global-order successor;
// authoring callers surface the error instead.
func Resolve(action schema.Action, ctx Context) (Result, error) {
	reg := ctx.Registry

	switch action.Type {
	case schema.ActionGotoQuestion, schema.ActionGotoBlockQuestion:
		// The target serial is taken verbatim; only existence is checked.
		if _, ok := reg.Lookup(action.Question); !ok {
			return Result{}, &DanglingReferenceError{Kind: "question", Ref: action.Question}
		}
		return Result{Target: action.Question}, nil

	case schema.ActionGotoBlock:
		entry, ok := reg.BlockEntry(action.Block)
		if !ok {
			return Result{}, &DanglingReferenceError{Kind: "block", Ref: action.Block}
		}
		return Result{Target: entry}, nil

	case schema.ActionSkipQuestion:
		// Prefer the next question within the current block; when the
		// block is exhausted, fall back to plain global order. Both tiers
		// are required: a skip on the last question of a block lands on
		// the next block's entry question, not on end.
		if next, ok := reg.NextInBlock(ctx.Current); ok {
			return Result{Target: next}, nil
		}
		if next, ok := reg.NextGlobal(ctx.Current); ok {
			return Result{Target: next}, nil
		}
		return Result{Terminal: true}, nil

	case schema.ActionSkipBlock:
		nextBlock, ok := reg.NextBlock(ctx.Current)
		if !ok {
			// Skipping out of the last block ends the survey.
			return Result{Terminal: true}, nil
		}
		entry, ok := reg.BlockEntry(nextBlock)
		if !ok {
			// Following block exists but holds no questions; treat like
			// running off the end.
			return Result{Terminal: true}, nil
		}
		return Result{
			Target: entry,
			Meta:   map[string]string{"nextBlockName": reg.BlockNames[nextBlock]},
		}, nil

	case schema.ActionEnd, schema.ActionSkipEnd:
		return Result{Terminal: true}, nil

	case schema.ActionShowMessage, schema.ActionHideOptions, schema.ActionPipeAnswer:
		// Non-navigational; suppression and piping are separate passes.
		return Result{}, nil
	}

	return Result{}, &DanglingReferenceError{Kind: "action", Ref: string(action.Type)}
}

// NextTarget is the single entry point the response-collection layer
// calls after each answer submission. It evaluates the rules owned by the
// current question in authored order, collects show_message side effects
// from every satisfied message rule, and follows the first satisfied
// navigational rule. When no rule fires — or the winning rule dangles —
// it advances to the natural global-order successor, so a broken rule can
// degrade the branching but never strand the respondent.
func NextTarget(current string, rules []schema.Rule, answers AnswerSet, reg *registry.Registry) Result {
	res := Result{}

	for _, r := range rules {
		if r.If.Question != current {
			continue
		}
		if err := wellFormed(r); err != nil {
			// Malformed rules are skipped, not fatal; keep the error so
			// authoring tools can log it. Only the owning question's
			// transition reports it, so a walk collects each one once.
			res.Errs = append(res.Errs, err)
			continue
		}
		if !Evaluate(r.If, answers) {
			continue
		}

		if r.Then.Type == schema.ActionShowMessage {
			res.Messages = append(res.Messages, r.Then.Text)
			continue
		}
		if !r.Then.Navigational() {
			continue
		}

		nav, err := Resolve(r.Then, Context{Current: current, Registry: reg})
		if err != nil {
			if de, ok := err.(*DanglingReferenceError); ok && de.RuleID == "" {
				de.RuleID = r.ID
			}
			res.Errs = append(res.Errs, err)
			continue // fall through to later rules, then the natural successor
		}
		res.Target = nav.Target
		res.Terminal = nav.Terminal
		res.Meta = nav.Meta
		return res
	}

	// No navigational rule fired: natural advance in document order.
	if next, ok := reg.NextGlobal(current); ok {
		res.Target = next
		return res
	}
	res.Terminal = true
	return res
}
