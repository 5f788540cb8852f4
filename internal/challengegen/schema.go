package challengegen

import "github.com/abhisek/goalify/internal/llm"

// PlanSchema is the shape requested from the model. All properties are
// required and no others are allowed, which strict structured output needs.
var PlanSchema = &llm.Schema{
	Name:        "challenge-plan",
	Description: "A personalized multi-day challenge toward a goal",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short, motivating challenge title",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Two or three sentences on what the challenge involves and why it helps",
			},
			"duration": map[string]any{
				"type":        "integer",
				"description": "Length of the challenge in days",
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"easy", "medium", "hard"},
			},
			"dailyTasks": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concrete things to do every day",
			},
			"milestones": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Checkpoints reached along the way",
			},
			"tips": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Short pieces of advice",
			},
		},
		"required":             []any{"title", "description", "duration", "difficulty", "dailyTasks", "milestones", "tips"},
		"additionalProperties": false,
	},
}
