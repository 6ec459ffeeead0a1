// Package target loads high value target lists and cross-references them
// against a credential corpus.
package target

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nao1215/pwaudit/internal/model"
)

// ErrListUnavailable is returned when the high value target list cannot be
// opened or read.
var ErrListUnavailable = errors.New("high value target list unavailable")

// Parse reads a high value target list from r, one username per line.
// Lines are used verbatim apart from the line terminator; blank lines are
// ignored.
func Parse(r io.Reader) (model.TargetSet, error) {
	scanner := bufio.NewScanner(r)
	usernames := make([]string, 0)
	for scanner.Scan() {
		username := strings.TrimSuffix(scanner.Text(), "\r")
		if username == "" {
			continue
		}
		usernames = append(usernames, username)
	}
	if err := scanner.Err(); err != nil {
		return model.TargetSet{}, fmt.Errorf("%w: %w", ErrListUnavailable, err)
	}
	return model.NewTargetSet(usernames...), nil
}

// LoadFile reads the high value target list at path.
func LoadFile(path string) (model.TargetSet, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return model.TargetSet{}, fmt.Errorf("%w: %w", ErrListUnavailable, err)
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		return model.TargetSet{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return set, nil
}

// CrossReference returns one CompromisedTarget for every corpus record whose
// username is in set, in corpus order. Duplicate usernames are kept: each
// one is a separate credential found for the same target.
func CrossReference(corpus *model.Corpus, set model.TargetSet) []model.CompromisedTarget {
	compromised := make([]model.CompromisedTarget, 0)
	if set.Len() == 0 {
		return compromised
	}
	for _, r := range corpus.Records() {
		if set.Contains(r.Username) {
			compromised = append(compromised, model.CompromisedTarget{Username: r.Username})
		}
	}
	return compromised
}

// Summarize counts compromised records per username, first seen first.
// Percent is relative to the number of compromised records.
func Summarize(compromised []model.CompromisedTarget) []model.Share[string] {
	d := model.NewDistribution[string]()
	for _, c := range compromised {
		d.Add(c.Username)
	}

	shares := make([]model.Share[string], 0, d.Len())
	for _, e := range d.Entries() {
		shares = append(shares, model.Share[string]{
			Key:     e.Key,
			Count:   e.Count,
			Percent: float64(e.Count) / float64(d.Total()) * 100,
		})
	}
	return shares
}
