package analysis

import (
	"slices"
	"strings"

	"github.com/nao1215/pwaudit/internal/model"
)

// Lexicon is a fixed, ordered list of lower-case words searched for inside
// passwords.
type Lexicon struct {
	name  string
	words []string
}

// Name returns the lexicon name.
func (l Lexicon) Name() string {
	return l.name
}

// Words returns a copy of the lexicon words in lexicon order.
func (l Lexicon) Words() []string {
	return slices.Clone(l.words)
}

// Matches returns the lexicon words that occur anywhere in pwd, ignoring
// case, in lexicon order. Matching is plain substring search: "fall" matches
// "waterfall1".
func (l Lexicon) Matches(pwd string) []string {
	lower := strings.ToLower(pwd)
	matches := make([]string, 0)
	for _, w := range l.words {
		if strings.Contains(lower, w) {
			matches = append(matches, w)
		}
	}
	return matches
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// Calendar lexicons. These tables are the single place a non-English word
// list would be added.
var (
	Seasons = Lexicon{
		name:  "seasons",
		words: []string{"spring", "summer", "autumn", "fall", "winter"},
	}

	Months = Lexicon{
		name:  "months",
		words: slices.Clone(monthNames),
	}

	MonthAbbreviations = Lexicon{
		name:  "month abbreviations",
		words: abbreviate(monthNames, 3),
	}

	Days = Lexicon{
		name:  "days",
		words: []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
	}
)

// abbreviate returns the first n characters of each word.
func abbreviate(words []string, n int) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w[:min(n, len(w))]
	}
	return out
}

// CalendarMatch lists the calendar words found in one password.
type CalendarMatch struct {
	Seasons            []string
	Months             []string
	MonthAbbreviations []string
	Days               []string
}

// CalendarWords searches pwd against every calendar lexicon.
func CalendarWords(pwd string) CalendarMatch {
	return CalendarMatch{
		Seasons:            Seasons.Matches(pwd),
		Months:             Months.Matches(pwd),
		MonthAbbreviations: MonthAbbreviations.Matches(pwd),
		Days:               Days.Matches(pwd),
	}
}

// CalendarWordCensus counts calendar words across passwords. A password
// contributes once to every word it contains.
func CalendarWordCensus(passwords []string) model.CalendarCensus {
	census := model.NewCalendarCensus()
	for _, pwd := range passwords {
		m := CalendarWords(pwd)
		for _, w := range m.Seasons {
			census.Seasons.Add(w)
		}
		for _, w := range m.Months {
			census.Months.Add(w)
		}
		for _, w := range m.MonthAbbreviations {
			census.MonthAbbreviations.Add(w)
		}
		for _, w := range m.Days {
			census.Days.Add(w)
		}
	}
	return census
}
