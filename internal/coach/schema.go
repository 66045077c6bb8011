package coach

import "github.com/abhisek/aipath/internal/llm"

// AdviceSchema defines the JSON schema for career advice.
var AdviceSchema = &llm.Schema{
	Name:        "career-advice",
	Description: "Personalised first-month plan for an AI career path",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three sentences explaining why this path fits the person",
			},
			"actions": map[string]any{
				"type":        "array",
				"description": "Concrete actions for the first month, most important first",
				"items":       map[string]any{"type": "string"},
				"minItems":    3,
				"maxItems":    3,
			},
			"resources": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Title of a well-known book, course, library or community",
						},
						"kind": map[string]any{
							"type": "string",
							"enum": []any{"book", "course", "library", "community", "paper"},
						},
					},
					"required":             []any{"name", "kind"},
					"additionalProperties": false,
				},
			},
			"watchout": map[string]any{
				"type":        "string",
				"description": "One common pitfall for people starting on this path",
			},
		},
		"required":             []any{"summary", "actions", "resources", "watchout"},
		"additionalProperties": false,
	},
}
