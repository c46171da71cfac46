// internal/catalog/price.go
package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// Alternate field names providers nest a price under, tried in order.
var priceFields = []string{"raw", "value", "amount", "price"}

// normalizePrice turns a heterogeneous provider price into a float64.
// Accepted shapes: a bare JSON number; a numeric string with optional
// currency symbol and thousands separators; an object carrying the price
// under one of priceFields, normalized recursively. Anything else is 0.
func normalizePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return parsePriceString(str)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, field := range priceFields {
			if nested, ok := obj[field]; ok {
				if v := normalizePrice(nested); v != 0 {
					return v
				}
			}
		}
	}

	return 0
}

// parsePriceString extracts the leading numeric run of a formatted price
// such as "$1,234.56" or "£12.50". Thousands separators are stripped
// before parsing.
func parsePriceString(s string) float64 {
	s = strings.TrimSpace(s)

	start := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsDigit(r)
	})
	if start < 0 {
		return 0
	}

	var b strings.Builder
scan:
	for _, r := range s[start:] {
		switch {
		case unicode.IsDigit(r) || r == '.':
			b.WriteRune(r)
		case r == ',':
			// thousands separator
		default:
			break scan
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
