package utils

import (
	"unicode"
)

// IsWordLike reports whether s looks like a dictionary headword:
// letters with optional apostrophes, hyphens or periods. Patterns,
// numbers and shell noise are rejected before any lookup runs.
func IsWordLike(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case r == '\'' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return hasLetter
}
