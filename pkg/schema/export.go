package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateJSONSchema produces a JSON Schema Draft 2020-12 document from
// the Go Survey struct using invopop/jsonschema. Editors use it for
// completion and inline validation of survey documents.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&Survey{})
	s.ID = "https://github.com/quillform/quill/schemas/survey-v1.json"
	s.Title = "Quill Survey v1"
	s.Description = "Schema for quill survey YAML documents (Draft 2020-12)"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
