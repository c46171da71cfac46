// internal/store/schema.go
package store

// surveySchemaJSON constrains incoming survey payloads. Motivations are
// rank-ordered with at most three entries; the enums mirror the survey
// screens in the client.
const surveySchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"gender": {
			"type": "string",
			"enum": ["", "female", "male", "non-binary", "prefer-not-to-say"]
		},
		"categories": {
			"type": "array",
			"items": {"type": "string"}
		},
		"budget": {
			"type": "string",
			"enum": ["", "budget", "moderate", "premium", "luxury", "varies"]
		},
		"motivations": {
			"type": "array",
			"items": {"type": "string"},
			"maxItems": 3
		},
		"brandPreference": {"type": "string"},
		"shoppingPattern": {"type": "string"},
		"stylePreferences": {
			"type": "array",
			"items": {"type": "string"}
		},
		"dealSensitivity": {"type": "string"},
		"otherCategory": {"type": "string"}
	},
	"additionalProperties": false
}`
