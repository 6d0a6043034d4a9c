package flowtest

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/quillform/quill/pkg/engine"
	"github.com/quillform/quill/pkg/registry"
	"github.com/quillform/quill/pkg/schema"
)

// maxSteps bounds a walk so a rule cycle cannot hang the runner.
const maxSteps = 10000

// Run replays every scenario of a flow-test file against the survey and
// returns the aggregated output.
func Run(survey *schema.Survey, spec *Spec) (*Output, error) {
	reg := registry.Build(survey)
	rules := survey.Rules()

	out := &Output{Survey: survey.Meta.Name}
	for _, sc := range spec.Scenarios {
		res := runScenario(reg, rules, sc)
		out.Scenarios = append(out.Scenarios, res)
		out.Summary.Total++
		switch res.Status {
		case "passed":
			out.Summary.Passed++
		case "failed":
			out.Summary.Failed++
		default:
			out.Summary.Errors++
		}
	}
	return out, nil
}

func runScenario(reg *registry.Registry, rules []schema.Rule, sc Scenario) Result {
	res := Result{ScenarioName: sc.Name}

	walk, err := replay(reg, rules, sc)
	if err != nil {
		res.Status = "error"
		res.Error = err.Error()
		return res
	}

	res.Assertions = evaluate(sc, walk)
	res.Status = "passed"
	for _, a := range res.Assertions {
		if !a.Passed {
			res.Status = "failed"
			break
		}
	}
	return res
}

// replay walks the survey, answering each presented question from the
// scenario's scripted answers.
func replay(reg *registry.Registry, rules []schema.Rule, sc Scenario) (*walkResult, error) {
	sess := engine.NewSession(reg, rules)
	visible := make(map[string][]string)

	for steps := 0; !sess.Terminal(); steps++ {
		if steps >= maxSteps {
			return nil, fmt.Errorf("scenario %q: walk exceeded %d steps, aborting", sc.Name, maxSteps)
		}
		current := sess.Current()

		if opts := sess.VisibleOptions(); opts != nil {
			vals := make([]string, len(opts))
			for i, o := range opts {
				vals[i] = o.Value
			}
			visible[current] = vals
		}

		answer, ok := sc.Answers[current]
		if !ok {
			return nil, fmt.Errorf("scenario %q: no scripted answer for question %q", sc.Name, current)
		}
		sess.Answer(answer)
	}

	return &walkResult{
		Path:     sess.Path(),
		Terminal: sess.Terminal(),
		Messages: sess.Messages(),
		Answers:  sess.Answers(),
		Visible:  visible,
	}, nil
}

// evaluate checks every assertion the scenario declares against the walk.
func evaluate(sc Scenario, walk *walkResult) []AssertionResult {
	var out []AssertionResult

	if sc.ExpectPath != nil {
		out = append(out, checkPath(sc.ExpectPath, walk.Path))
	}
	if sc.ExpectTerminal != nil {
		out = append(out, AssertionResult{
			Type:     "expect_terminal",
			Expected: fmt.Sprintf("%v", *sc.ExpectTerminal),
			Actual:   fmt.Sprintf("%v", walk.Terminal),
			Passed:   *sc.ExpectTerminal == walk.Terminal,
			Message:  "terminal state",
		})
	}
	if sc.ExpectMessages != nil {
		out = append(out, checkMessages(sc.ExpectMessages, walk.Messages))
	}
	for serial, want := range sc.ExpectVisible {
		out = append(out, checkVisible(serial, want, walk.Visible[serial]))
	}
	for _, expression := range sc.Expect {
		out = append(out, checkExpr(expression, walk))
	}
	return out
}

func checkPath(want, got []string) AssertionResult {
	a := AssertionResult{
		Type:     "expect_path",
		Expected: strings.Join(want, " → "),
		Actual:   strings.Join(got, " → "),
	}
	a.Passed = equalStrings(want, got)
	if a.Passed {
		a.Message = "path matches"
	} else {
		a.Message = "path mismatch"
	}
	return a
}

func checkMessages(want, got []string) AssertionResult {
	a := AssertionResult{
		Type:     "expect_messages",
		Expected: strings.Join(want, " | "),
		Actual:   strings.Join(got, " | "),
	}
	a.Passed = equalStrings(want, got)
	if a.Passed {
		a.Message = "messages match"
	} else {
		a.Message = "messages mismatch"
	}
	return a
}

func checkVisible(serial string, want, got []string) AssertionResult {
	a := AssertionResult{
		Type:     "expect_visible",
		Key:      serial,
		Expected: strings.Join(want, ", "),
		Actual:   strings.Join(got, ", "),
	}
	a.Passed = equalStrings(want, got)
	if a.Passed {
		a.Message = fmt.Sprintf("visible options of %s match", serial)
	} else {
		a.Message = fmt.Sprintf("visible options of %s mismatch", serial)
	}
	return a
}

// checkExpr compiles and runs one free-form boolean expression against
// the finished walk.
func checkExpr(expression string, walk *walkResult) AssertionResult {
	a := AssertionResult{Type: "expect", Key: expression, Expected: "true"}

	env := map[string]any{
		"path":     walk.Path,
		"terminal": walk.Terminal,
		"messages": walk.Messages,
		"answers":  walk.Answers,
		"visited":  toSet(walk.Path),
	}
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		a.Message = fmt.Sprintf("compile %q: %v", expression, err)
		return a
	}
	output, err := expr.Run(program, env)
	if err != nil {
		a.Message = fmt.Sprintf("eval %q: %v", expression, err)
		return a
	}
	result, ok := output.(bool)
	if !ok {
		a.Message = fmt.Sprintf("expression %q did not return bool (got %T: %v)", expression, output, output)
		return a
	}
	a.Actual = fmt.Sprintf("%v", result)
	a.Passed = result
	if result {
		a.Message = "expression holds"
	} else {
		a.Message = "expression is false"
	}
	return a
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
