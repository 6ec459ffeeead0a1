package analysis

import (
	"strings"
	"unicode"
)

// Character classes, in the order they appear in compositions.
const (
	classLower   = "lower"
	classUpper   = "upper"
	classDigit   = "digit"
	classSpecial = "special"
)

// Mask converts pwd to a hashcat-style mask: ?l lower-case, ?u upper-case,
// ?d digit and ?s anything else.
func Mask(pwd string) string {
	var sb strings.Builder
	sb.Grow(len(pwd) * 2)
	for _, r := range pwd {
		switch {
		case unicode.IsLower(r):
			sb.WriteString("?l")
		case unicode.IsUpper(r):
			sb.WriteString("?u")
		case unicode.IsDigit(r):
			sb.WriteString("?d")
		default:
			sb.WriteString("?s")
		}
	}
	return sb.String()
}

// Composition names the character classes pwd is made of, joined with '+'
// in the fixed order lower, upper, digit, special. For example "Summer2024!"
// is "lower+upper+digit+special".
func Composition(pwd string) string {
	var lower, upper, digit, special bool
	for _, r := range pwd {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}

	classes := make([]string, 0, 4)
	if lower {
		classes = append(classes, classLower)
	}
	if upper {
		classes = append(classes, classUpper)
	}
	if digit {
		classes = append(classes, classDigit)
	}
	if special {
		classes = append(classes, classSpecial)
	}
	return strings.Join(classes, "+")
}

// minUsernameLength is the shortest username ContainsUsername considers.
const minUsernameLength = 3

// ContainsUsername reports whether pwd contains username, ignoring case.
func ContainsUsername(username, pwd string) bool {
	if len([]rune(username)) < minUsernameLength {
		return false
	}
	return strings.Contains(strings.ToLower(pwd), strings.ToLower(username))
}
