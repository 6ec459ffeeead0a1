package model

import "time"

// Share is one line of a rendered distribution: a key, its count and the
// count as a percentage of the total number of entries.
type Share[K comparable] struct {
	Key     K       `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// EntropyRank is one line of the entropy leaderboard.
type EntropyRank struct {
	Password string  `json:"password"`
	Entropy  float64 `json:"entropy"`
}

// TrailingDigitSummary holds the three trailing-digit tallies.
// The tallies overlap and do not add up to the number of entries.
type TrailingDigitSummary struct {
	Single Share[string] `json:"single"`
	Double Share[string] `json:"double"`
	Triple Share[string] `json:"triple"`
}

// Report is the aggregated result of analyzing one credential dump.
// Apart from RunID and GeneratedAt it is a pure function of the corpus and
// the high value target set.
type Report struct {
	// RunID identifies the pipeline run that produced the report.
	RunID string `json:"run_id"`

	// Source is the path of the analyzed credential dump.
	Source string `json:"source"`

	// GeneratedAt is when the report was aggregated.
	GeneratedAt time.Time `json:"generated_at"`

	// TopN is the size of every "top" ranking in the report.
	TopN int `json:"top_n"`

	// TotalEntries is the number of valid records in the corpus.
	TotalEntries int `json:"total_entries"`

	// UniquePasswords is the number of distinct passwords.
	UniquePasswords int `json:"unique_passwords"`

	// Compromised lists every dump record belonging to a high value target.
	Compromised []CompromisedTarget `json:"compromised"`

	// CompromisedByUser groups Compromised per username, first seen first.
	CompromisedByUser []Share[string] `json:"compromised_by_user"`

	// TopPasswords ranks the most common passwords.
	TopPasswords []Share[string] `json:"top_passwords"`

	// TopRootWords ranks the most common root words.
	TopRootWords []Share[string] `json:"top_root_words"`

	// Lengths is the password length distribution, shortest first.
	Lengths []Share[int] `json:"lengths"`

	// TrailingDigits holds the overlapping trailing-digit tallies.
	TrailingDigits TrailingDigitSummary `json:"trailing_digits"`

	// Years ranks every trailing year, most common first.
	Years []Share[string] `json:"years"`

	// Seasons lists matched season words in lexicon order.
	Seasons []Share[string] `json:"seasons"`

	// Months lists matched month names in lexicon order.
	Months []Share[string] `json:"months"`

	// MonthAbbreviations lists matched month abbreviations in lexicon order.
	MonthAbbreviations []Share[string] `json:"month_abbreviations"`

	// Days lists matched day names in lexicon order.
	Days []Share[string] `json:"days"`

	// SpecialCharacter is the corpus-wide special character census.
	SpecialCharacter SpecialCharacter `json:"special_character"`

	// TopEntropy ranks distinct passwords by entropy, highest first.
	TopEntropy []EntropyRank `json:"top_entropy"`

	// TopMasks ranks the most common hashcat masks.
	TopMasks []Share[string] `json:"top_masks"`

	// Compositions is the character class composition distribution,
	// most common first.
	Compositions []Share[string] `json:"compositions"`

	// UsernameReuse counts passwords that contain their own username.
	UsernameReuse Share[string] `json:"username_reuse"`
}

// HasCompromisedTargets reports whether any high value target was found.
func (r *Report) HasCompromisedTargets() bool {
	return len(r.Compromised) > 0
}
