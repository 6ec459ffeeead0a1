package analysis

import (
	"unicode/utf8"

	"github.com/nao1215/pwaudit/internal/model"
)

// Measure computes every per-password metric of pwd.
func Measure(pwd string) model.PasswordMetric {
	year, _ := TrailingYear(pwd)
	return model.PasswordMetric{
		Password:       pwd,
		Length:         utf8.RuneCountInString(pwd),
		Entropy:        Entropy(pwd),
		TrailingDigits: TrailingDigits(pwd),
		Year:           year,
		RootWord:       RootWord(pwd),
		Mask:           Mask(pwd),
		Composition:    Composition(pwd),
	}
}

// Analyze measures every password of corpus, in corpus order.
func Analyze(corpus *model.Corpus) []model.PasswordMetric {
	records := corpus.Records()
	metrics := make([]model.PasswordMetric, len(records))
	for i, r := range records {
		metrics[i] = Measure(r.Password)
	}
	return metrics
}
