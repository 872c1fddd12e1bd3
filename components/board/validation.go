package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator validates widget configuration payloads against the
// template schema for their type.
type ConfigValidator interface {
	Validate(tpl WidgetTemplate, config map[string]any) error
}

// JSONSchemaValidator compiles template schemas and validates config maps.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[WidgetType]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[WidgetType]*jsonschema.Schema),
	}
}

// Validate ensures the provided configuration satisfies the widget schema.
func (v *JSONSchemaValidator) Validate(tpl WidgetTemplate, config map[string]any) error {
	if len(tpl.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(tpl)
	if err != nil {
		return err
	}
	var payload map[string]any
	if config == nil {
		payload = map[string]any{}
	} else {
		data, err := json.Marshal(config)
		if err != nil {
			return fmt.Errorf("board: marshal config for %s: %w", tpl.Type, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("board: normalize config for %s: %w", tpl.Type, err)
		}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("board: configuration for %s failed validation: %w", tpl.Type, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(tpl WidgetTemplate) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[tpl.Type]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(tpl.Schema)
	if err != nil {
		return nil, fmt.Errorf("board: marshal schema %s: %w", tpl.Type, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(tpl.Type) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("board: load schema %s: %w", tpl.Type, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("board: compile schema %s: %w", tpl.Type, err)
	}
	v.mu.Lock()
	v.compiled[tpl.Type] = compiled
	v.mu.Unlock()
	return compiled, nil
}
