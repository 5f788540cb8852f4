package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":      map[string]any{"type": "string"},
			"duration":   map[string]any{"type": "integer"},
			"difficulty": map[string]any{"type": "string", "enum": []string{"easy", "medium", "hard"}},
			"dailyTasks": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 3,
			},
		},
		"required": []string{"title", "duration"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["title"].Type != "STRING" {
		t.Fatalf("expected STRING for title, got %s", schema.Properties["title"].Type)
	}
	if schema.Properties["duration"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for duration, got %s", schema.Properties["duration"].Type)
	}
	if len(schema.Properties["difficulty"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["difficulty"].Enum))
	}
	if schema.Properties["dailyTasks"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for dailyTasks, got %s", schema.Properties["dailyTasks"].Type)
	}
	if schema.Properties["dailyTasks"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for dailyTasks items, got %s", schema.Properties["dailyTasks"].Items.Type)
	}
	if mi := schema.Properties["dailyTasks"].MinItems; mi == nil || *mi != 3 {
		t.Fatalf("expected minItems 3, got %v", mi)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
