// Package flowtest defines the flow-scenario schema, assertion evaluator,
// and runner for replaying scripted answer sets against a survey.
package flowtest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is one flow-test file: a survey path plus the scenarios to replay
// against it.
type Spec struct {
	Survey    string     `yaml:"survey"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario scripts one respondent walk and the outcomes to assert.
// All expect fields are optional — omitted fields are not asserted.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Answers maps question serial to the scripted answer. The runner
	// looks answers up by whatever question the walk presents, so order
	// here does not matter.
	Answers map[string]any `yaml:"answers"`

	ExpectPath     []string `yaml:"expect_path,omitempty"`
	ExpectTerminal *bool    `yaml:"expect_terminal,omitempty"`
	ExpectMessages []string `yaml:"expect_messages,omitempty"`

	// ExpectVisible maps question serial to the option values that must
	// be visible at the moment the question is presented.
	ExpectVisible map[string][]string `yaml:"expect_visible,omitempty"`

	// Expect holds free-form boolean expressions evaluated against the
	// finished walk. Available identifiers: path, terminal, messages,
	// answers, visited.
	Expect []string `yaml:"expect,omitempty"`
}

// Load reads and parses a flow-test file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read flow spec: %w", err)
	}
	return Parse(data)
}

// Parse parses a Spec from raw YAML bytes.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse flow spec: %w", err)
	}
	return &spec, nil
}
