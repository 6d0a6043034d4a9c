package flowtest

// Result captures the outcome of replaying one scenario.
type Result struct {
	ScenarioName string            `json:"scenario_name"`
	Status       string            `json:"status"` // passed, failed, error
	Assertions   []AssertionResult `json:"assertions"`
	Error        string            `json:"error,omitempty"`
}

// AssertionResult is the outcome of a single assertion check.
type AssertionResult struct {
	Type     string `json:"type"`          // expect_path, expect_terminal, expect_messages, expect_visible, expect
	Key      string `json:"key,omitempty"` // path index, question serial, or expression text
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message"`
}

// Summary aggregates results across scenarios.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Errors int `json:"errors"`
}

// Output is the top-level JSON structure for quill test --json.
type Output struct {
	Survey    string   `json:"survey"`
	Scenarios []Result `json:"scenarios"`
	Summary   Summary  `json:"summary"`
}

// walkResult holds the observed data collected from one replayed walk,
// used as input to the assertion evaluator.
type walkResult struct {
	Path     []string
	Terminal bool
	Messages []string
	Answers  map[string]any
	Visible  map[string][]string // question serial → option values seen when presented
}
