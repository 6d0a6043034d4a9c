// Package schema defines the Go struct types for the survey YAML document
// and provides strict YAML parsing.
package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Survey is the top-level document: an ordered list of blocks plus the
// branching rules attached to their questions. A survey document is an
// immutable snapshot — the engine never mutates it during evaluation.
type Survey struct {
	APIVersion string  `yaml:"apiVersion" json:"apiVersion" jsonschema:"required,enum=survey/v1"`
	Meta       Meta    `yaml:"meta"       json:"meta"       jsonschema:"required"`
	Blocks     []Block `yaml:"blocks"     json:"blocks"     jsonschema:"required"`
}

// Meta contains survey metadata shown in the editor.
type Meta struct {
	Name        string `yaml:"name"                  json:"name" jsonschema:"required"`
	Title       string `yaml:"title,omitempty"       json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	EndMessage  string `yaml:"end_message,omitempty" json:"end_message,omitempty"`
}

// Block is an ordered group of questions presented together; it is the
// unit of skip_block/goto_block navigation.
type Block struct {
	ID        string     `yaml:"id"                  json:"id" jsonschema:"required"`
	Name      string     `yaml:"name,omitempty"      json:"name,omitempty"`
	Questions []Question `yaml:"questions,omitempty" json:"questions,omitempty"`
}

// Question types. The set is closed — validation rejects anything else.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeCheckbox       = "checkbox"
	TypeDropdown       = "dropdown"
	TypeRanking        = "ranking"
	TypeText           = "text"
	TypeNumber         = "number"
	TypeRating         = "rating"
	TypeDate           = "date"
	TypeMatrix         = "matrix"
)

// OptionBearing reports whether a question type carries a selectable
// option list that suppression rules can act on.
func OptionBearing(questionType string) bool {
	switch questionType {
	case TypeMultipleChoice, TypeCheckbox, TypeDropdown, TypeRanking:
		return true
	}
	return false
}

// Question is a single survey question. Serial is the stable
// human-authored key ("Q3") that rules address it by — unique within a
// survey version and immutable once rules reference it. ID is the
// storage identifier and plays no role in navigation.
type Question struct {
	ID          string          `yaml:"id,omitempty"          json:"id,omitempty"`
	Serial      string          `yaml:"serial"                json:"serial" jsonschema:"required"`
	Type        string          `yaml:"type"                  json:"type"   jsonschema:"required,enum=multiple_choice,enum=checkbox,enum=dropdown,enum=ranking,enum=text,enum=number,enum=rating,enum=date,enum=matrix"`
	Label       string          `yaml:"label,omitempty"       json:"label,omitempty"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Config      *QuestionConfig `yaml:"config,omitempty"      json:"config,omitempty"`
	Rules       []Rule          `yaml:"rules,omitempty"       json:"rules,omitempty"`
}

// QuestionConfig holds type-specific presentation settings.
type QuestionConfig struct {
	Options     []Option `yaml:"options,omitempty"     json:"options,omitempty"`
	Placeholder string   `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Min         *int     `yaml:"min,omitempty"         json:"min,omitempty"`
	Max         *int     `yaml:"max,omitempty"         json:"max,omitempty"`
	Rows        []string `yaml:"rows,omitempty"        json:"rows,omitempty"`
}

// Option is a single selectable answer option. Serial is its stable key,
// referenced by hide_options rules and stored as the answer value.
type Option struct {
	Serial string `yaml:"serial" json:"serial" jsonschema:"required"`
	Label  string `yaml:"label,omitempty"  json:"label,omitempty"`
}

// Rule is a declarative branching rule owned by the question whose answer
// its condition inspects. Rules are evaluated read-only at runtime and
// never mutated during evaluation.
type Rule struct {
	ID   string    `yaml:"id,omitempty" json:"id,omitempty"`
	If   Condition `yaml:"if"           json:"if"   jsonschema:"required"`
	Then Action    `yaml:"then"         json:"then" jsonschema:"required"`
}

// Condition operators.
const (
	OpEquals    = "equals"
	OpNotEquals = "not_equals"
	OpAnswered  = "answered"
)

// Condition compares the current answer of a question against a value.
// For OpAnswered the value is ignored.
type Condition struct {
	Question string `yaml:"question"        json:"question" jsonschema:"required"`
	Operator string `yaml:"operator"        json:"operator" jsonschema:"required,enum=equals,enum=not_equals,enum=answered"`
	Value    string `yaml:"value,omitempty" json:"value,omitempty"`
}

// Rules flattens every question's rules in document order — block order
// first, question order within each block.
func (s *Survey) Rules() []Rule {
	var rules []Rule
	for _, b := range s.Blocks {
		for _, q := range b.Questions {
			rules = append(rules, q.Rules...)
		}
	}
	return rules
}

// LoadFile reads and parses a survey YAML file with strict unknown-field
// rejection (yaml.v3 KnownFields). Returns the parsed Survey or an error.
func LoadFile(path string) (*Survey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open survey: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a survey from an io.Reader with strict unknown-field rejection.
func Load(r io.Reader) (*Survey, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Survey
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode survey: %w", err)
	}
	return &s, nil
}
