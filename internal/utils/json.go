package utils

import (
	"strings"
)

// SanitizeJSON cleans raw model output down to a parseable JSON document.
// Models wrap answers in Markdown code fences (```json ... ```) even when
// told not to; strip those and surrounding whitespace.
func SanitizeJSON(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")

	return strings.TrimSpace(cleaned)
}
