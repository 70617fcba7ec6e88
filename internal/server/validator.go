package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas
var schemaFiles embed.FS

// Validator checks JSON API submissions against the embedded hand schema
// before anything touches the store.
type Validator struct {
	hand *jsonschema.Schema
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	data, err := schemaFiles.ReadFile("schemas/hand.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read hand schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	const schemaURL = "https://pokertracker.local/schemas/hand.json"
	if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add hand schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile hand schema: %w", err)
	}

	return &Validator{hand: schema}, nil
}

// ValidateHand validates a raw POST /api/hands body.
func (v *Validator) ValidateHand(body []byte) error {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := v.hand.Validate(doc); err != nil {
		return fmt.Errorf("invalid hand: %w", err)
	}
	return nil
}
