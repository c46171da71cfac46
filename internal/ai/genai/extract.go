// internal/ai/genai/extract.go
package genai

import "strings"

// ExtractJSONObject returns the first balanced {...} span in s. Model replies
// often wrap the requested JSON in prose or markdown fences, so extraction
// runs before any parse attempt.
func ExtractJSONObject(s string) (string, bool) {
	return extractBalanced(s, '{', '}')
}

// ExtractJSONArray returns the first balanced [...] span in s.
func ExtractJSONArray(s string) (string, bool) {
	return extractBalanced(s, '[', ']')
}

func extractBalanced(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
