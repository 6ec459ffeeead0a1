// Package pipeline runs the analysis of one credential dump as a sequence
// of steps: load corpus, load targets, cross-reference, analyze, aggregate.
//
// Each step fills in its own fields of a model.Run and only reads fields
// written by earlier steps. A failing step stops the pipeline and is
// recorded in Run.Err.
//
// BatchProcessor runs one independent pipeline per dump, several at a
// time, using errgroup. Pipelines never share state.
package pipeline
