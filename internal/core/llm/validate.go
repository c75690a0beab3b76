package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/fuel-docs/constants"
)

var compiled sync.Map // constants.DocumentKind -> *jsonschema.Schema

func compiledSchema(kind constants.DocumentKind) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(kind); ok {
		return s.(*jsonschema.Schema), nil
	}
	schemaMap := Schema(kind)
	if schemaMap == nil {
		return nil, fmt.Errorf("no schema for kind %q", kind)
	}
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	url := string(kind) + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	actual, _ := compiled.LoadOrStore(kind, schema)
	return actual.(*jsonschema.Schema), nil
}

// ValidateJSON validates data against the schema of kind.
func ValidateJSON(kind constants.DocumentKind, data []byte) error {
	schema, err := compiledSchema(kind)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
