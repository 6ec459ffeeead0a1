package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and File.Apply() so callers
// can use errors.Is() to tell configuration problems from I/O failures.
var (
	// ErrNoDump is returned when no credential dump path is configured.
	ErrNoDump = errors.New("no credential dump specified")

	// ErrNoReportFile is returned when the report destination is empty.
	ErrNoReportFile = errors.New("no report output specified")

	// ErrInvalidTopN is returned when the top ranking size is not positive.
	ErrInvalidTopN = errors.New("invalid top size: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidReportFormat is returned when the configuration file names
	// an unknown report format.
	ErrInvalidReportFormat = errors.New("invalid report format: must be text, markdown or json")

	// ErrNoDBDir is returned when history is enabled without a database directory.
	ErrNoDBDir = errors.New("history enabled but no database directory specified")
)
