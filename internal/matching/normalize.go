package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// apostrophe variants unified to ASCII '
var apostrophes = map[rune]bool{
	'\'': true,
	'’':  true,
	'‘':  true,
	'`':  true,
	'´':  true,
}

// Normalize projects a free-form product or business name onto a canonical
// form: lowercase, diacritics stripped, apostrophe variants unified,
// punctuation other than apostrophes removed, internal whitespace collapsed.
// The output is a fixed point: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}

	// NFD decomposition splits accented letters into base + combining mark
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	lastSpace := true // leading whitespace never emitted

	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark from decomposition, drop
		case apostrophes[r]:
			b.WriteRune('\'')
			lastSpace = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			// whitespace and punctuation both collapse to a single space
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// normalizeCode canonicalizes a SKU or product code for exact comparison
func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
