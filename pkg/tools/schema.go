package tools

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// MustSchemaFor returns the JSON schema of T and panics if it cannot be
// inferred. Meant for package-level tool declarations.
func MustSchemaFor[T any]() *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("inferring schema: %v", err))
	}
	return schema
}

// SchemaToMap converts a tool's parameter schema to the generic map shape the
// model APIs expect. A nil schema or one without properties becomes an empty
// object schema.
func SchemaToMap(params any) (map[string]any, error) {
	m := map[string]any{}
	if params != nil {
		buf, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(buf, &m); err != nil {
			return nil, err
		}
		if m == nil {
			m = map[string]any{}
		}
	}

	if _, ok := m["type"]; !ok {
		m["type"] = "object"
	}
	if _, ok := m["properties"]; !ok {
		m["properties"] = map[string]any{}
	}

	return m, nil
}
