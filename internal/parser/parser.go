// Package parser wraps the LLM collaborator: it builds the extraction
// prompt, repairs the model's JSON output, validates it, and constructs the
// canonical BusinessCard record. Every failure surfaces as a nil record and
// an error, never a panic, so the orchestrator can degrade gracefully.
package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cardscan-io/cardscan/internal/models"
	"github.com/cardscan-io/cardscan/internal/normalize"
	"github.com/cardscan-io/cardscan/internal/providers"
)

// ErrNotJSON indicates the model produced something other than a JSON object.
var ErrNotJSON = errors.New("llm response is not a JSON object")

var (
	requiredFields  = []string{"first_name", "last_name", "company_name", "position"}
	optionalStrings = []string{"middle_name", "department", "address", "extension", "notes"}
)

// Service extracts structured card data from OCR text via an LLM provider.
type Service struct {
	provider    providers.Provider
	model       string
	temperature float64
}

// NewService creates an extraction service bound to a provider and model.
func NewService(provider providers.Provider, model string) *Service {
	return &Service{provider: provider, model: model, temperature: 0.1}
}

// Extract sends the combined card text to the LLM and returns a validated
// BusinessCard, or nil with an error describing why extraction failed.
func (s *Service) Extract(ctx context.Context, text string) (*models.BusinessCard, error) {
	prompt := BuildPrompt(text)

	response, err := s.provider.Complete(ctx, providers.Config{
		Model:       s.model,
		Temperature: s.temperature,
		Prompt:      prompt,
	})
	if err != nil {
		slog.Error("LLM call failed", "model", s.model, "err", err)
		return nil, fmt.Errorf("llm call: %w", err)
	}

	cleaned := stripFences(response)
	if !strings.HasPrefix(cleaned, "{") {
		slog.Error("LLM did not return a JSON object", "model", s.model, "output_prefix", prefix(cleaned, 80))
		return nil, ErrNotJSON
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		slog.Error("Failed to parse LLM JSON", "model", s.model, "err", err)
		return nil, fmt.Errorf("parse llm json: %w", err)
	}

	repairFields(fields)

	repaired, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("re-encode repaired json: %w", err)
	}
	if err := validateAgainstSchema(buildCardJSONSchema(), repaired); err != nil {
		slog.Error("LLM output failed schema validation", "model", s.model, "err", err)
		return nil, fmt.Errorf("validate llm output: %w", err)
	}

	var card models.BusinessCard
	if err := json.Unmarshal(repaired, &card); err != nil {
		return nil, fmt.Errorf("build card record: %w", err)
	}

	slog.Info("Successfully parsed business card data", "model", s.model)
	return &card, nil
}

// stripFences removes Markdown code-fence wrappers the model sometimes adds
// despite the JSON-only instruction.
func stripFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// repairFields is the normalization pass over decoded LLM output:
// multi-valued fields are coerced to lists (scalars wrapped, empties
// dropped), phone entries are reduced to digits with an optional leading
// plus, website entries gain a scheme, null optionals and unknown keys are
// removed. Required keys are left for schema validation to judge.
func repairFields(fields map[string]any) {
	for _, key := range []string{"mobile", "telephone"} {
		if list := normalize.Phones(normalize.StringList(fields[key])); list != nil {
			fields[key] = list
		} else {
			delete(fields, key)
		}
	}

	if list := normalize.StringList(fields["email"]); list != nil {
		fields["email"] = list
	} else {
		delete(fields, "email")
	}

	if list := normalize.WebsiteURLs(normalize.StringList(fields["website"])); list != nil {
		fields["website"] = list
	} else {
		delete(fields, "website")
	}

	for _, key := range requiredFields {
		if v, ok := fields[key].(string); ok {
			fields[key] = strings.TrimSpace(v)
		}
	}

	for _, key := range optionalStrings {
		switch v := fields[key].(type) {
		case string:
			fields[key] = strings.TrimSpace(v)
		case nil:
			delete(fields, key)
		default:
			delete(fields, key)
		}
	}

	known := make(map[string]struct{}, len(models.FieldNames()))
	for _, name := range models.FieldNames() {
		known[name] = struct{}{}
	}
	for key := range fields {
		if _, ok := known[key]; !ok {
			delete(fields, key)
		}
	}
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
