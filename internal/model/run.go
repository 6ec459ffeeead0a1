package model

import "time"

// Run is the state carried through the analysis pipeline for one dump.
// Each pipeline step fills in its own fields and leaves the others alone.
type Run struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// DumpPath is the credential dump being analyzed.
	DumpPath string `json:"dump_path"`

	// TargetsPath is the high value target list. Empty means no list.
	TargetsPath string `json:"targets_path,omitempty"`

	// StartedAt is when the run was created.
	StartedAt time.Time `json:"started_at"`

	// Corpus is set by the load step.
	Corpus *Corpus `json:"-"`

	// Targets is set by the target step.
	Targets TargetSet `json:"-"`

	// Compromised is set by the cross-reference step.
	Compromised []CompromisedTarget `json:"-"`

	// Metrics is set by the analyze step, one entry per corpus record.
	Metrics []PasswordMetric `json:"-"`

	// SpecialCharacter is set by the analyze step.
	SpecialCharacter SpecialCharacter `json:"-"`

	// Calendar is set by the analyze step.
	Calendar CalendarCensus `json:"-"`

	// Report is set by the aggregate step.
	Report *Report `json:"report,omitempty"`

	// PerformedSteps lists the names of the steps that ran.
	PerformedSteps []string `json:"performed_steps"`

	// Err is the error that stopped the run, if any.
	Err error `json:"-"`
}

// NewRun creates a Run for the given dump and target list.
func NewRun(id, dumpPath, targetsPath string, startedAt time.Time) *Run {
	return &Run{
		ID:             id,
		DumpPath:       dumpPath,
		TargetsPath:    targetsPath,
		StartedAt:      startedAt,
		PerformedSteps: make([]string, 0),
	}
}
