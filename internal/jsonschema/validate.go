package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const resourceName = "schema.json"

// Validator checks decoded documents against a compiled Schema.
type Validator struct {
	compiled *sjsonschema.Schema
}

// NewValidator compiles s.
func NewValidator(s *Schema) (*Validator, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	compiler := sjsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{compiled: compiled}, nil
}

// ValidateJSON validates raw JSON bytes.
func (v *Validator) ValidateJSON(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := v.compiled.Validate(doc); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// Validate validates any JSON-encodable value. Named map types and
// json.Number values are normalized by a JSON round trip first.
func (v *Validator) Validate(doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	return v.ValidateJSON(b)
}
