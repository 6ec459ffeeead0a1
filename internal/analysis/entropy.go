package analysis

import "math"

// Entropy returns the Shannon entropy, in bits per character, of the
// character distribution within pwd:
//
//	H = -Σ p(c)·log2 p(c)
//
// where p(c) is the share of code point c in pwd. A password made of a single
// repeated character has entropy 0.
func Entropy(pwd string) float64 {
	runes := []rune(pwd)
	if len(runes) <= 1 {
		return 0
	}

	// Accumulate in first-occurrence order so that the floating point sum is
	// the same on every run.
	counts := make(map[rune]int, len(runes))
	order := make([]rune, 0, len(runes))
	for _, r := range runes {
		if counts[r] == 0 {
			order = append(order, r)
		}
		counts[r]++
	}

	n := float64(len(runes))
	entropy := 0.0
	for _, r := range order {
		p := float64(counts[r]) / n
		entropy -= p * math.Log2(p)
	}
	return entropy
}
