package analysis

import (
	"unicode"

	"github.com/nao1215/pwaudit/internal/model"
)

// TrailingDigits evaluates the three trailing-digit predicates of pwd.
// The predicates overlap on purpose: "pass123" ends with one, two and three
// digits, and is counted in each tally.
func TrailingDigits(pwd string) model.TrailingDigits {
	n := trailingDigitCount(pwd)
	return model.TrailingDigits{
		Single: n >= 1,
		Double: n >= 2,
		Triple: n >= 3,
	}
}

// trailingDigitCount returns the length of the run of decimal digits at the
// end of pwd.
func trailingDigitCount(pwd string) int {
	runes := []rune(pwd)
	n := 0
	for i := len(runes) - 1; i >= 0 && unicode.IsDigit(runes[i]); i-- {
		n++
	}
	return n
}

// TrailingYear returns the 19xx or 20xx year pwd ends with.
// The whole four digit year is returned, so "hunter2021" yields "2021".
func TrailingYear(pwd string) (string, bool) {
	runes := []rune(pwd)
	if len(runes) < 4 {
		return "", false
	}

	year := runes[len(runes)-4:]
	century := string(year[:2])
	if century != "19" && century != "20" {
		return "", false
	}
	if !unicode.IsDigit(year[2]) || !unicode.IsDigit(year[3]) {
		return "", false
	}
	return string(year), true
}
