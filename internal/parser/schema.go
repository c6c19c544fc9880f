package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildCardJSONSchema returns the JSON-Schema the repaired LLM output must
// satisfy before a BusinessCard is constructed from it. The repair pass runs
// first, so the schema only ever sees present, non-null keys.
func buildCardJSONSchema() map[string]any {
	stringProp := map[string]any{"type": "string"}

	phoneList := map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":    "string",
			"pattern": `^\+?[0-9]+$`,
		},
	}
	emailList := map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":    "string",
			"pattern": `^[^@\s]+@[^@\s]+\.[^@\s]+$`,
		},
	}
	websiteList := map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":    "string",
			"pattern": `^https?://\S+$`,
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"first_name", "last_name", "company_name", "position"},
		"properties": map[string]any{
			"first_name":   stringProp,
			"middle_name":  stringProp,
			"last_name":    stringProp,
			"company_name": stringProp,
			"position":     stringProp,
			"department":   stringProp,
			"mobile":       phoneList,
			"telephone":    phoneList,
			"email":        emailList,
			"website":      websiteList,
			"address":      stringProp,
			"extension":    stringProp,
			"notes":        stringProp,
		},
	}
}

// validateAgainstSchema validates data against schemaMap.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
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
