package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// responseSchema declares the expected shape of a server payload. Responses
// are validated before they reach the session state machine so malformed
// server data surfaces as a recoverable error, never a panic mid-session.
type responseSchema struct {
	Name       string
	Definition map[string]any
}

var answerOptionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":          map[string]any{"type": "string"},
		"answer_text": map[string]any{"type": "string"},
	},
	"required": []any{"id", "answer_text"},
}

// questionDetailsSchema validates GET /api/question-details/{id}.
var questionDetailsSchema = &responseSchema{
	Name: "question-details",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":            map[string]any{"type": "string"},
						"question_text": map[string]any{"type": "string"},
						"answers": map[string]any{
							"type":  "array",
							"items": answerOptionSchema,
						},
					},
					"required": []any{"id", "question_text", "answers"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

// testHistorySchema validates GET /api/test-history.
var testHistorySchema = &responseSchema{
	Name: "test-history",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"history": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"test_id":         map[string]any{"type": "string"},
						"set_name":        map[string]any{"type": "string"},
						"completed_at":    map[string]any{"type": "string"},
						"sum_correct":     map[string]any{"type": "integer"},
						"total_questions": map[string]any{"type": "integer"},
						"time_spent":      map[string]any{"type": "integer"},
						"answers": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"question_id":    map[string]any{"type": "string"},
									"question_text":  map[string]any{"type": "string"},
									"is_correct":     map[string]any{"type": "boolean"},
									"correct_answer": map[string]any{"type": "string"},
									"answers": map[string]any{
										"type":  "array",
										"items": answerOptionSchema,
									},
								},
								"required": []any{"question_id", "question_text", "is_correct"},
							},
						},
					},
					"required": []any{"test_id", "set_name", "sum_correct", "total_questions", "time_spent"},
				},
			},
		},
		"required": []any{"history"},
	},
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validatePayload validates raw JSON against the given response schema.
func validatePayload(schema *responseSchema, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON in %s response: %w", schema.Name, err)
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("unexpected %s response shape: %w", schema.Name, err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *responseSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
