package llm

import "strings"

// aliases maps the short names accepted in configuration to model IDs.
var aliases = map[string]map[string]string{
	Anthropic: {
		"claude-haiku":  "claude-haiku-4-5",
		"claude-sonnet": "claude-sonnet-4-5",
	},
	Gemini: {
		"gemini-flash": "gemini-2.5-flash",
		"gemini-pro":   "gemini-2.5-pro",
	},
}

func resolveModel(provider, name string) string {
	if id, ok := aliases[provider][name]; ok {
		return id
	}
	return name
}

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost prices one call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// prices covers the models the default config and the aliases select.
var prices = map[string]ModelCost{
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-5": {3, 15},
	"gpt-4o-mini":       {0.15, 0.6},
	"gpt-4o":            {2.5, 10},
	"gpt-4.1-mini":      {0.4, 1.6},
	"gemini-2.5-flash":  {0.3, 2.5},
	"gemini-2.5-pro":    {1.25, 10},
}

// LookupCost prices a model as recorded in the request log. OpenRouter's
// vendor prefix is ignored and dated snapshots such as
// claude-haiku-4-5-20251001 or gpt-4o-2024-08-06 match their base model.
func LookupCost(model string) (ModelCost, bool) {
	if i := strings.LastIndex(model, "/"); i >= 0 {
		model = model[i+1:]
	}
	for base, c := range prices {
		if model == base || isSnapshot(model, base) {
			return c, true
		}
	}
	return ModelCost{}, false
}

func isSnapshot(model, base string) bool {
	date, ok := strings.CutPrefix(model, base+"-")
	if !ok || date == "" {
		return false
	}
	return strings.Trim(date, "0123456789-") == ""
}
