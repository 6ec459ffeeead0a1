package analysis

import (
	"strings"
	"unicode"
)

// RootWord returns the lower-cased leading word of pwd: everything before the
// first digit or non-word character. Word characters are letters, non-decimal
// numerals and '_'.
//
// An empty result means the password starts with a digit or symbol; such
// passwords are left out of root word rankings.
func RootWord(pwd string) string {
	lower := strings.ToLower(pwd)
	if end := strings.IndexFunc(lower, isRootBoundary); end >= 0 {
		return lower[:end]
	}
	return lower
}

// isRootBoundary reports whether r ends a root word.
func isRootBoundary(r rune) bool {
	if unicode.IsDigit(r) {
		return true
	}
	return !(r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r))
}
