package validators

import (
	"strings"
	"unicode/utf8"
)

// SanitizeString trims surrounding whitespace and caps the value at maxLen
// runes. Truncation happens on rune boundaries so multibyte input stays
// valid UTF-8.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && utf8.RuneCountInString(trimmed) > maxLen {
		runes := []rune(trimmed)
		return string(runes[:maxLen])
	}
	return trimmed
}
