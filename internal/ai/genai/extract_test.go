// internal/ai/genai/extract_test.go
package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{
			name:  "bare object",
			input: `{"optimized_search":"x","reasoning":"y"}`,
			want:  `{"optimized_search":"x","reasoning":"y"}`,
			found: true,
		},
		{
			name:  "surrounded by prose",
			input: "Sure! Here is the JSON you asked for:\n{\"a\": 1}\nLet me know if you need anything else.",
			want:  `{"a": 1}`,
			found: true,
		},
		{
			name:  "markdown fence",
			input: "```json\n{\"a\": {\"b\": 2}}\n```",
			want:  `{"a": {"b": 2}}`,
			found: true,
		},
		{
			name:  "braces inside strings ignored",
			input: `{"text": "a } b { c", "n": 1}`,
			want:  `{"text": "a } b { c", "n": 1}`,
			found: true,
		},
		{
			name:  "escaped quote inside string",
			input: `{"text": "say \"hi}\"", "n": 2} trailing`,
			want:  `{"text": "say \"hi}\"", "n": 2}`,
			found: true,
		},
		{
			name:  "unbalanced",
			input: `{"a": 1`,
			found: false,
		},
		{
			name:  "no object",
			input: "nothing here",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.input)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	got, ok := ExtractJSONArray("The rankings are: [{\"position\":1,\"rank\":2}] — done.")
	assert.True(t, ok)
	assert.Equal(t, `[{"position":1,"rank":2}]`, got)

	_, ok = ExtractJSONArray("no array")
	assert.False(t, ok)
}
