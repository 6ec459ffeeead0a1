// Package model defines the core data structures used throughout pwaudit.
//
// This package contains the following main types:
//   - Record and Corpus: the parsed credential dump
//   - TargetSet and CompromisedTarget: high value target cross-reference data
//   - PasswordMetric: values derived from a single password
//   - Distribution: an insertion-ordered counter used for every ranking
//   - Report: the aggregated, render-ready analysis result
//   - Run: the state carried through the analysis pipeline
//
// Models live in their own package so that the loader, analyzer, aggregator,
// renderers and history store can share them without import cycles.
// Report is serializable to JSON for the JSON renderer and the history database.
package model
