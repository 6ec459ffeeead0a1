package model

// TrailingDigits holds the three trailing-digit predicates of a password.
// They are evaluated independently: a password ending in "123" sets all three.
type TrailingDigits struct {
	// Single is true when the password ends with at least one digit.
	Single bool `json:"single"`

	// Double is true when the password ends with at least two digits.
	Double bool `json:"double"`

	// Triple is true when the password ends with at least three digits.
	Triple bool `json:"triple"`
}

// PasswordMetric holds every value the analyzer derives from one password.
type PasswordMetric struct {
	// Password is the measured password.
	Password string `json:"password"`

	// Length is the number of code points in the password.
	Length int `json:"length"`

	// Entropy is the Shannon entropy of the password's characters, in bits.
	Entropy float64 `json:"entropy"`

	// TrailingDigits are the trailing-digit predicates.
	TrailingDigits TrailingDigits `json:"trailing_digits"`

	// Year is the 19xx/20xx year the password ends with, or "".
	Year string `json:"year,omitempty"`

	// RootWord is the lower-cased leading word of the password, or ""
	// when the password starts with a digit or symbol.
	RootWord string `json:"root_word,omitempty"`

	// Mask is the hashcat-style character class mask (?l?u?d?s).
	Mask string `json:"mask"`

	// Composition names the set of character classes used, e.g. "lower+digit".
	Composition string `json:"composition"`
}

// CalendarCensus counts calendar words found in passwords, one distribution
// per lexicon.
type CalendarCensus struct {
	Seasons            *Distribution[string]
	Months             *Distribution[string]
	MonthAbbreviations *Distribution[string]
	Days               *Distribution[string]
}

// NewCalendarCensus creates a CalendarCensus with empty distributions.
func NewCalendarCensus() CalendarCensus {
	return CalendarCensus{
		Seasons:            NewDistribution[string](),
		Months:             NewDistribution[string](),
		MonthAbbreviations: NewDistribution[string](),
		Days:               NewDistribution[string](),
	}
}

// NoSpecialCharacter is the Character value reported when a corpus
// contains no special characters at all.
const NoSpecialCharacter = "None"

// SpecialCharacter is the result of the corpus-wide special character census.
type SpecialCharacter struct {
	// Character is the most used special character, or NoSpecialCharacter.
	Character string `json:"character"`

	// Count is how many times Character occurs across the corpus.
	Count int `json:"count"`

	// Total is the number of special characters across the corpus.
	Total int `json:"total"`

	// Percent is Count as a percentage of Total. Zero when Total is zero.
	Percent float64 `json:"percent"`

	// Found is false when the corpus has no special characters.
	Found bool `json:"found"`
}
