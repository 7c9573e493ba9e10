package mistakes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://mistakes.json"

// schemaJSON describes the persisted array. Unknown properties are
// tolerated so older or foreign writers still load.
const schemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["question", "correctAnswer", "userAnswer", "mode"],
    "properties": {
      "question":      {"type": "string", "minLength": 1},
      "correctAnswer": {"type": "integer"},
      "userAnswer":    {"type": "integer"},
      "mode":          {"enum": ["multiplication", "division"]}
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// Decode parses a persisted array. Blank input decodes to an empty slice.
// Input that is not valid JSON, or does not match the record schema, is an
// error.
func Decode(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return recs, nil
}

// Encode renders recs in the persisted format. An empty collection is
// written as "[]".
func Encode(recs []Record) ([]byte, error) {
	if recs == nil {
		recs = []Record{}
	}
	return json.Marshal(recs)
}
