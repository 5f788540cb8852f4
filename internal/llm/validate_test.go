package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func planSchema() *Schema {
	return &Schema{
		Name:        "test-plan",
		Description: "A test plan",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":      map[string]any{"type": "string"},
				"days":       map[string]any{"type": "integer", "minimum": 1},
				"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			},
			"required": []any{"title", "days"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"title":"Walk","days":7,"difficulty":"easy"}`, false},
		{"optional omitted", `{"title":"Walk","days":14}`, false},
		{"missing required", `{"title":"Walk"}`, true},
		{"wrong type", `{"title":"Walk","days":"seven"}`, true},
		{"below minimum", `{"title":"Walk","days":0}`, true},
		{"bad enum", `{"title":"Walk","days":7,"difficulty":"extreme"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(planSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			var invalid *ErrInvalidResponse
			if err != nil && !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_StringSliceDefinition(t *testing.T) {
	schema := &Schema{
		Name: "test-string-slices",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tasks": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
				},
			},
			"required": []string{"tasks"},
		},
	}

	if err := validateResponse(schema, json.RawMessage(`{"tasks":["a","b"]}`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := validateResponse(schema, json.RawMessage(`{"tasks":["a"]}`)); err == nil {
		t.Fatal("expected error for too few items")
	}
	if err := validateResponse(schema, json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected error for missing tasks")
	}
}

func TestUnwrapJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"whitespace", "\n  {\"a\":1}  \n", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", "Here is your plan:\n{\"a\":{\"b\":2}}\nEnjoy!", `{"a":{"b":2}}`},
		{"no object", "sorry", "sorry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unwrapJSON(tt.in); got != tt.want {
				t.Fatalf("unwrapJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeContent(t *testing.T) {
	raw, err := decodeContent(planSchema(), "```json\n{\"title\":\"Walk\",\"days\":7}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"title":"Walk","days":7}` {
		t.Fatalf("unexpected content: %s", raw)
	}

	raw, err = decodeContent(nil, "plain text")
	if err != nil || string(raw) != "plain text" {
		t.Fatalf("expected pass-through, got %q, %v", raw, err)
	}
}
