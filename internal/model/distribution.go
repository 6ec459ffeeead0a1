package model

import (
	"cmp"
	"slices"
)

// Entry is a key and its count, as returned by Distribution.MostCommon.
type Entry[K comparable] struct {
	Key   K
	Count int
}

// Distribution counts occurrences of keys while remembering the order in
// which each key was first added. Ranking ties are resolved by that order,
// which keeps reports reproducible.
//
// The zero value is an empty distribution ready to use.
type Distribution[K comparable] struct {
	keys   []K
	counts map[K]int
	total  int
}

// NewDistribution creates an empty Distribution.
func NewDistribution[K comparable]() *Distribution[K] {
	return &Distribution[K]{counts: make(map[K]int)}
}

// Add increments the count of k by one.
func (d *Distribution[K]) Add(k K) {
	d.AddN(k, 1)
}

// AddN increments the count of k by n. Non-positive n is ignored.
func (d *Distribution[K]) AddN(k K, n int) {
	if n <= 0 {
		return
	}
	if d.counts == nil {
		d.counts = make(map[K]int)
	}
	if _, ok := d.counts[k]; !ok {
		d.keys = append(d.keys, k)
	}
	d.counts[k] += n
	d.total += n
}

// Count returns the count of k, or zero if k was never added.
func (d *Distribution[K]) Count(k K) int {
	return d.counts[k]
}

// Len returns the number of distinct keys.
func (d *Distribution[K]) Len() int {
	return len(d.keys)
}

// Total returns the sum of all counts.
func (d *Distribution[K]) Total() int {
	return d.total
}

// Keys returns the distinct keys in first-insertion order.
func (d *Distribution[K]) Keys() []K {
	return slices.Clone(d.keys)
}

// Entries returns every key with its count in first-insertion order.
func (d *Distribution[K]) Entries() []Entry[K] {
	entries := make([]Entry[K], len(d.keys))
	for i, k := range d.keys {
		entries[i] = Entry[K]{Key: k, Count: d.counts[k]}
	}
	return entries
}

// MostCommon returns the n entries with the highest counts, highest first.
// Entries with equal counts keep their first-insertion order.
// If n <= 0 or n exceeds the number of keys, all entries are returned.
func (d *Distribution[K]) MostCommon(n int) []Entry[K] {
	entries := d.Entries()
	slices.SortStableFunc(entries, func(a, b Entry[K]) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
