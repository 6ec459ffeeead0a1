// Package history compares two reports of the same credential dump.
//
// A Comparison answers what changed between two audits: how the corpus grew
// or shrank, which high value targets appeared in or disappeared from the
// dump, and how the most common passwords moved in the ranking.
package history
