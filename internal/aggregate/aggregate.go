// Package aggregate reduces per-password metrics into the ranked,
// percentage-normalized views of a model.Report.
package aggregate

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/nao1215/pwaudit/internal/analysis"
	"github.com/nao1215/pwaudit/internal/model"
	"github.com/nao1215/pwaudit/internal/target"
)

// DefaultTopN is the size of every "top" ranking unless WithTopN says otherwise.
const DefaultTopN = 10

var (
	// ErrEmptyCorpus is returned when the corpus has no valid records.
	// Percentages over zero entries are undefined, so no report is built.
	ErrEmptyCorpus = errors.New("no valid credential records to analyze")

	// ErrIncompleteInput is returned when the metrics do not line up with
	// the corpus records.
	ErrIncompleteInput = errors.New("metrics do not match corpus records")
)

// Input holds the outputs of the earlier pipeline stages.
type Input struct {
	// Corpus is the loaded credential dump.
	Corpus *model.Corpus

	// Compromised is the cross-reference result, in corpus order.
	Compromised []model.CompromisedTarget

	// Metrics holds one PasswordMetric per corpus record, in corpus order.
	Metrics []model.PasswordMetric

	// SpecialCharacter is the corpus-wide special character census.
	SpecialCharacter model.SpecialCharacter

	// Calendar is the corpus-wide calendar word census.
	Calendar model.CalendarCensus
}

type options struct {
	topN   int
	now    func() time.Time
	runID  string
	source string
}

// Option configures Aggregate.
type Option func(*options)

// WithTopN sets the size of the top rankings. Non-positive values are ignored.
func WithTopN(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.topN = n
		}
	}
}

// WithClock sets the function used to timestamp the report.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRunID sets the run identifier recorded in the report.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}

// WithSource sets the dump path recorded in the report.
func WithSource(path string) Option {
	return func(o *options) {
		o.source = path
	}
}

// Aggregate builds the report for one corpus.
func Aggregate(in Input, opts ...Option) (*model.Report, error) {
	o := options{
		topN: DefaultTopN,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	total := in.Corpus.TotalCount()
	if total == 0 {
		return nil, ErrEmptyCorpus
	}
	if len(in.Metrics) != total {
		return nil, fmt.Errorf("%w: %d metrics for %d records", ErrIncompleteInput, len(in.Metrics), total)
	}

	passwords := model.NewDistribution[string]()
	roots := model.NewDistribution[string]()
	lengths := model.NewDistribution[int]()
	years := model.NewDistribution[string]()
	masks := model.NewDistribution[string]()
	compositions := model.NewDistribution[string]()
	var single, double, triple, reuse int

	records := in.Corpus.Records()
	for i, m := range in.Metrics {
		passwords.Add(m.Password)
		if m.RootWord != "" {
			roots.Add(m.RootWord)
		}
		lengths.Add(m.Length)
		if m.Year != "" {
			years.Add(m.Year)
		}
		masks.Add(m.Mask)
		compositions.Add(m.Composition)

		if m.TrailingDigits.Single {
			single++
		}
		if m.TrailingDigits.Double {
			double++
		}
		if m.TrailingDigits.Triple {
			triple++
		}
		if analysis.ContainsUsername(records[i].Username, m.Password) {
			reuse++
		}
	}

	report := &model.Report{
		RunID:             o.runID,
		Source:            o.source,
		GeneratedAt:       o.now(),
		TopN:              o.topN,
		TotalEntries:      total,
		UniquePasswords:   passwords.Len(),
		Compromised:       slices.Clone(in.Compromised),
		CompromisedByUser: target.Summarize(in.Compromised),
		TopPasswords:      toShares(passwords.MostCommon(o.topN), total),
		TopRootWords:      toShares(roots.MostCommon(o.topN), total),
		Lengths:           lengthShares(lengths, total),
		TrailingDigits: model.TrailingDigitSummary{
			Single: share("single", single, total),
			Double: share("double", double, total),
			Triple: share("triple", triple, total),
		},
		Years:              toShares(years.MostCommon(0), total),
		Seasons:            lexiconShares(analysis.Seasons, in.Calendar.Seasons, total),
		Months:             lexiconShares(analysis.Months, in.Calendar.Months, total),
		MonthAbbreviations: lexiconShares(analysis.MonthAbbreviations, in.Calendar.MonthAbbreviations, total),
		Days:               lexiconShares(analysis.Days, in.Calendar.Days, total),
		SpecialCharacter:   in.SpecialCharacter,
		TopEntropy:         topEntropy(in.Metrics, o.topN),
		TopMasks:           toShares(masks.MostCommon(o.topN), total),
		Compositions:       toShares(compositions.MostCommon(0), total),
		UsernameReuse:      share("contains username", reuse, total),
	}
	if report.Compromised == nil {
		report.Compromised = make([]model.CompromisedTarget, 0)
	}

	return report, nil
}

// Percent returns part as a percentage of total. total must be positive.
func Percent(part, total int) float64 {
	return float64(part) / float64(total) * 100
}

func share[K comparable](key K, count, total int) model.Share[K] {
	return model.Share[K]{Key: key, Count: count, Percent: Percent(count, total)}
}

func toShares[K comparable](entries []model.Entry[K], total int) []model.Share[K] {
	shares := make([]model.Share[K], len(entries))
	for i, e := range entries {
		shares[i] = share(e.Key, e.Count, total)
	}
	return shares
}

// lengthShares returns the length distribution ordered by length.
func lengthShares(d *model.Distribution[int], total int) []model.Share[int] {
	entries := d.Entries()
	slices.SortFunc(entries, func(a, b model.Entry[int]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return toShares(entries, total)
}

// lexiconShares lists the matched words of a lexicon in lexicon order.
// A nil distribution yields no shares.
func lexiconShares(lex analysis.Lexicon, d *model.Distribution[string], total int) []model.Share[string] {
	shares := make([]model.Share[string], 0)
	if d == nil {
		return shares
	}
	for _, w := range lex.Words() {
		if n := d.Count(w); n > 0 {
			shares = append(shares, share(w, n, total))
		}
	}
	return shares
}

// topEntropy ranks distinct passwords by entropy, highest first. Equal
// entropies keep first-seen order.
func topEntropy(metrics []model.PasswordMetric, n int) []model.EntropyRank {
	seen := make(map[string]struct{}, len(metrics))
	ranks := make([]model.EntropyRank, 0, len(metrics))
	for _, m := range metrics {
		if _, ok := seen[m.Password]; ok {
			continue
		}
		seen[m.Password] = struct{}{}
		ranks = append(ranks, model.EntropyRank{Password: m.Password, Entropy: m.Entropy})
	}

	slices.SortStableFunc(ranks, func(a, b model.EntropyRank) int {
		return cmp.Compare(b.Entropy, a.Entropy)
	})
	if n > 0 && n < len(ranks) {
		ranks = ranks[:n]
	}
	return ranks
}

// Analyze runs every per-password and corpus-wide analysis over corpus and
// returns the Input for Aggregate.
func Analyze(corpus *model.Corpus, compromised []model.CompromisedTarget) Input {
	passwords := corpus.Passwords()
	return Input{
		Corpus:           corpus,
		Compromised:      compromised,
		Metrics:          analysis.Analyze(corpus),
		SpecialCharacter: analysis.SpecialCharacterCensus(passwords),
		Calendar:         analysis.CalendarWordCensus(passwords),
	}
}
