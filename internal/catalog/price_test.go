// internal/catalog/price_test.go
package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{
			name:     "bare number",
			raw:      `42`,
			expected: 42,
		},
		{
			name:     "bare float",
			raw:      `19.99`,
			expected: 19.99,
		},
		{
			name:     "plain numeric string",
			raw:      `"12.50"`,
			expected: 12.5,
		},
		{
			name:     "currency symbol prefix",
			raw:      `"£12.50"`,
			expected: 12.5,
		},
		{
			name:     "thousands separators",
			raw:      `"$1,234.56"`,
			expected: 1234.56,
		},
		{
			name:     "trailing text after number",
			raw:      `"29.99 USD"`,
			expected: 29.99,
		},
		{
			name:     "object with raw field",
			raw:      `{"raw": "£12.50"}`,
			expected: 12.5,
		},
		{
			name:     "object with value field",
			raw:      `{"value": 99.95}`,
			expected: 99.95,
		},
		{
			name:     "nested object",
			raw:      `{"price": {"amount": "7.25"}}`,
			expected: 7.25,
		},
		{
			name:     "null",
			raw:      `null`,
			expected: 0,
		},
		{
			name:     "unparseable string",
			raw:      `"call for price"`,
			expected: 0,
		},
		{
			name:     "object without known fields",
			raw:      `{"display": "cheap"}`,
			expected: 0,
		},
		{
			name:     "empty",
			raw:      ``,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, normalizePrice(json.RawMessage(tt.raw)), 0.0001)
		})
	}
}
