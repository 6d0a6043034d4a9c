package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidationError represents a single validation error with location context.
type ValidationError struct {
	Phase    string `json:"phase"` // structural, semantic, domain
	Path     string `json:"path"`  // JSON-path-like location (e.g., "blocks[0].questions[2]")
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Path, e.Message)
}

// ValidateFile performs the full 3-phase validation pipeline on a survey file.
// Phase 1: Structural (strict YAML decode)
// Phase 2: Semantic (JSON Schema validation)
// Phase 3: Domain (custom Go rules)
//
// Validation is an authoring-time concern: the runtime navigator never
// refuses a survey, it degrades per the engine's soft-error policy. A
// returned error slice with only warnings still means "usable".
func ValidateFile(path string) (*Survey, []*ValidationError) {
	var allErrors []*ValidationError

	s, err := LoadFile(path)
	if err != nil {
		allErrors = append(allErrors, &ValidationError{
			Phase:    "structural",
			Message:  err.Error(),
			Severity: "error",
		})
		return nil, allErrors
	}

	allErrors = append(allErrors, validateSemantic(s)...)
	allErrors = append(allErrors, ValidateDomain(s)...)

	if len(allErrors) > 0 {
		return s, allErrors
	}
	return s, nil
}

// validateSemantic validates the survey against the generated JSON Schema.
func validateSemantic(s *Survey) []*ValidationError {
	fail := func(msg string) []*ValidationError {
		return []*ValidationError{{Phase: "semantic", Message: msg, Severity: "error"}}
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fail(fmt.Sprintf("marshal for schema validation: %v", err))
	}

	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return fail(fmt.Sprintf("generate schema: %v", err))
	}

	var schemaDoc interface{}
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return fail(fmt.Sprintf("unmarshal schema: %v", err))
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("survey-v1.json", schemaDoc); err != nil {
		return fail(fmt.Sprintf("add schema resource: %v", err))
	}
	sch, err := c.Compile("survey-v1.json")
	if err != nil {
		return fail(fmt.Sprintf("compile schema: %v", err))
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fail(fmt.Sprintf("unmarshal document: %v", err))
	}

	if err := sch.Validate(doc); err != nil {
		var errs []*ValidationError
		if ve, ok := err.(*sjsonschema.ValidationError); ok {
			for _, cause := range flattenValidationErrors(ve) {
				errs = append(errs, &ValidationError{
					Phase:    "semantic",
					Path:     strings.Join(cause.InstanceLocation, "/"),
					Message:  fmt.Sprintf("%v", cause.ErrorKind),
					Severity: "error",
				})
			}
		} else {
			errs = fail(err.Error())
		}
		return errs
	}
	return nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}

// ValidateDomain performs Phase 3 domain-level validation.
// Returns a slice of errors; empty means valid.
func ValidateDomain(s *Survey) []*ValidationError {
	var errs []*ValidationError

	if s.APIVersion != "survey/v1" {
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     "apiVersion",
			Message:  fmt.Sprintf("unrecognized apiVersion %q, expected %q", s.APIVersion, "survey/v1"),
			Severity: "error",
		})
	}

	if len(s.Blocks) == 0 {
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     "blocks",
			Message:  "survey must contain at least one block",
			Severity: "error",
		})
	}

	// Collect serials and block ids first so rule references can be
	// checked against the whole document regardless of order.
	questionSerials := make(map[string]string) // serial → first path seen
	blockIDs := make(map[string]bool)
	optionSerials := make(map[string]map[string]bool) // question serial → option serials

	for bi, b := range s.Blocks {
		blockPath := fmt.Sprintf("blocks[%d]", bi)
		if b.ID == "" {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     blockPath + ".id",
				Message:  "block requires an id",
				Severity: "error",
			})
		}
		if blockIDs[b.ID] && b.ID != "" {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     blockPath + ".id",
				Message:  fmt.Sprintf("duplicate block id %q", b.ID),
				Severity: "error",
			})
		}
		blockIDs[b.ID] = true

		for qi, q := range b.Questions {
			qPath := fmt.Sprintf("%s.questions[%d]", blockPath, qi)
			if q.Serial == "" {
				errs = append(errs, &ValidationError{
					Phase:    "domain",
					Path:     qPath + ".serial",
					Message:  "question requires a serial label",
					Severity: "error",
				})
				continue
			}
			if prev, ok := questionSerials[q.Serial]; ok {
				// The registry resolves duplicates last-wins; flag it for
				// the author since rules addressing the serial become
				// ambiguous.
				errs = append(errs, &ValidationError{
					Phase:    "domain",
					Path:     qPath + ".serial",
					Message:  fmt.Sprintf("duplicate question serial %q (first at %s)", q.Serial, prev),
					Severity: "error",
				})
			}
			questionSerials[q.Serial] = qPath

			errs = append(errs, validateQuestion(qPath, q)...)

			if q.Config != nil && len(q.Config.Options) > 0 {
				set := make(map[string]bool, len(q.Config.Options))
				for oi, opt := range q.Config.Options {
					if opt.Serial == "" {
						errs = append(errs, &ValidationError{
							Phase:    "domain",
							Path:     fmt.Sprintf("%s.config.options[%d].serial", qPath, oi),
							Message:  "option requires a serial",
							Severity: "error",
						})
						continue
					}
					if set[opt.Serial] {
						errs = append(errs, &ValidationError{
							Phase:    "domain",
							Path:     fmt.Sprintf("%s.config.options[%d].serial", qPath, oi),
							Message:  fmt.Sprintf("duplicate option serial %q on question %q", opt.Serial, q.Serial),
							Severity: "error",
						})
					}
					set[opt.Serial] = true
				}
				optionSerials[q.Serial] = set
			}
		}
	}

	// Rule checks need the full serial/block maps built above.
	for bi, b := range s.Blocks {
		for qi, q := range b.Questions {
			for ri, r := range q.Rules {
				rPath := fmt.Sprintf("blocks[%d].questions[%d].rules[%d]", bi, qi, ri)
				errs = append(errs, validateRule(rPath, q, r, questionSerials, blockIDs, optionSerials)...)
			}
		}
	}

	return errs
}

// validateQuestion checks type-specific constraints on a single question.
func validateQuestion(path string, q Question) []*ValidationError {
	var errs []*ValidationError

	switch q.Type {
	case TypeMultipleChoice, TypeCheckbox, TypeDropdown, TypeRanking:
		if q.Config == nil || len(q.Config.Options) == 0 {
			errs = append(errs, &ValidationError{
				Phase:    "domain",
				Path:     path + ".config.options",
				Message:  fmt.Sprintf("question %q of type %s requires a non-empty option list", q.Serial, q.Type),
				Severity: "error",
			})
		}
	case TypeText, TypeNumber, TypeRating, TypeDate, TypeMatrix:
		// no structural requirements
	default:
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     path + ".type",
			Message:  fmt.Sprintf("question %q has unknown type %q", q.Serial, q.Type),
			Severity: "error",
		})
	}

	if q.Config != nil && q.Config.Min != nil && q.Config.Max != nil && *q.Config.Min > *q.Config.Max {
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     path + ".config",
			Message:  fmt.Sprintf("question %q has min %d greater than max %d", q.Serial, *q.Config.Min, *q.Config.Max),
			Severity: "error",
		})
	}

	return errs
}

// validateRule checks one rule's condition and action. Dangling
// references are authoring errors here; at respondent runtime the
// navigator falls back to the natural successor instead of failing.
func validateRule(path string, owner Question, r Rule, serials map[string]string, blocks map[string]bool, options map[string]map[string]bool) []*ValidationError {
	var errs []*ValidationError

	add := func(subPath, msg, severity string) {
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     path + subPath,
			Message:  msg,
			Severity: severity,
		})
	}

	// Malformed rules are skipped entirely at runtime; tell the author.
	if r.If.Question == "" {
		add(".if.question", fmt.Sprintf("rule %q is missing if.question and will never fire", r.ID), "error")
	} else if _, ok := serials[r.If.Question]; !ok {
		add(".if.question", fmt.Sprintf("rule %q condition references unknown question %q", r.ID, r.If.Question), "error")
	} else if r.If.Question != owner.Serial {
		add(".if.question", fmt.Sprintf("rule %q inspects %q but is attached to %q; it fires when %q is answered", r.ID, r.If.Question, owner.Serial, r.If.Question), "warning")
	}

	switch r.If.Operator {
	case OpEquals, OpNotEquals, OpAnswered:
	case "":
		add(".if.operator", fmt.Sprintf("rule %q is missing if.operator and will never fire", r.ID), "error")
	default:
		add(".if.operator", fmt.Sprintf("rule %q has unknown operator %q", r.ID, r.If.Operator), "error")
	}

	if !KnownActionType(r.Then.Type) {
		if r.Then.Type == "" {
			add(".then.type", fmt.Sprintf("rule %q is missing then.type and will never fire", r.ID), "error")
		} else {
			add(".then.type", fmt.Sprintf("rule %q has unknown action type %q", r.ID, r.Then.Type), "error")
		}
		return errs
	}

	switch r.Then.Type {
	case ActionGotoQuestion, ActionGotoBlockQuestion:
		if r.Then.Question == "" {
			add(".then.question", fmt.Sprintf("rule %q %s requires a target question", r.ID, r.Then.Type), "error")
		} else if _, ok := serials[r.Then.Question]; !ok {
			add(".then.question", fmt.Sprintf("rule %q targets unknown question %q", r.ID, r.Then.Question), "error")
		}
	case ActionGotoBlock:
		if r.Then.Block == "" {
			add(".then.block", fmt.Sprintf("rule %q goto_block requires a target block", r.ID), "error")
		} else if !blocks[r.Then.Block] {
			add(".then.block", fmt.Sprintf("rule %q targets unknown block %q", r.ID, r.Then.Block), "error")
		}
	case ActionShowMessage:
		if strings.TrimSpace(r.Then.Text) == "" {
			add(".then.text", fmt.Sprintf("rule %q show_message has empty text", r.ID), "warning")
		}
	case ActionHideOptions:
		if r.Then.Target == "" {
			add(".then.target", fmt.Sprintf("rule %q hide_options requires a target question", r.ID), "error")
			break
		}
		if _, ok := serials[r.Then.Target]; !ok {
			add(".then.target", fmt.Sprintf("rule %q hides options on unknown question %q", r.ID, r.Then.Target), "error")
			break
		}
		if len(r.Then.Options) == 0 {
			add(".then.options", fmt.Sprintf("rule %q hide_options lists no options", r.ID), "warning")
		}
		known := options[r.Then.Target]
		for oi, opt := range r.Then.Options {
			if !known[opt] {
				add(fmt.Sprintf(".then.options[%d]", oi), fmt.Sprintf("rule %q hides unknown option %q on question %q", r.ID, opt, r.Then.Target), "error")
			}
		}
	case ActionPipeAnswer:
		if r.Then.Source == "" {
			add(".then.source", fmt.Sprintf("rule %q pipe_answer requires a source question", r.ID), "error")
		} else if _, ok := serials[r.Then.Source]; !ok {
			add(".then.source", fmt.Sprintf("rule %q pipes from unknown question %q", r.ID, r.Then.Source), "error")
		}
		if r.Then.Target == "" {
			add(".then.target", fmt.Sprintf("rule %q pipe_answer requires a target question", r.ID), "error")
		} else if _, ok := serials[r.Then.Target]; !ok {
			add(".then.target", fmt.Sprintf("rule %q pipes into unknown question %q", r.ID, r.Then.Target), "error")
		}
		switch r.Then.Field {
		case PipeLabel, PipeDescription, PipePlaceholder:
		case "":
			add(".then.field", fmt.Sprintf("rule %q pipe_answer requires a field", r.ID), "error")
		default:
			add(".then.field", fmt.Sprintf("rule %q pipes into unknown field %q", r.ID, r.Then.Field), "error")
		}
	}

	return errs
}
