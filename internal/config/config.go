package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "pwaudit"

	// DefaultDumpPath is the credential dump analyzed when none is given.
	DefaultDumpPath = "SUMMARY.txt"

	// DefaultReportFile is where the report is written when no output is given.
	DefaultReportFile = "PASummary.txt"

	// DefaultTopN is the size of the "top" rankings in the report.
	DefaultTopN = 10

	// DefaultBatchSize is the number of dumps analyzed side by side.
	// Each dump is held in memory for the whole run, so this stays small.
	DefaultBatchSize = 4
)

// Report format names accepted in the configuration file.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Config holds all configuration options for pwaudit.
// It is populated from defaults, the configuration file and CLI flags, and
// passed down explicitly rather than kept in global state.
type Config struct {
	// DumpPaths are the credential dumps to analyze, one report each.
	DumpPaths []string

	// TargetsPath is the high value target list, one username per line.
	// Empty means no targets: the HVT section reports none compromised.
	TargetsPath string

	// ReportFile is where the report is written. With several dumps it is
	// a directory receiving one report per dump.
	ReportFile string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// TopN is the size of the "top" rankings.
	TopN int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of dumps analyzed concurrently.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .pwaudit in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// DBDir is the directory holding the run history database.
	// Defaults to the XDG data directory (~/.local/share/pwaudit on Linux).
	DBDir string

	// SaveToDB records every completed run in the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		DumpPaths:  []string{DefaultDumpPath},
		ReportFile: DefaultReportFile,
		TopN:       DefaultTopN,
		BatchSize:  DefaultBatchSize,
		DBDir:      XDGDataDir(),
		SaveToDB:   true,
	}
}

// ReportFormat returns the selected report format name.
func (c *Config) ReportFormat() string {
	switch {
	case c.JSONReport:
		return FormatJSON
	case c.MarkdownReport:
		return FormatMarkdown
	default:
		return FormatText
	}
}

// XDGDataDir returns the XDG data directory for pwaudit.
// On Linux: ~/.local/share/pwaudit
// On macOS: ~/Library/Application Support/pwaudit
// On Windows: %LOCALAPPDATA%\pwaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pwaudit.
// On Linux: ~/.config/pwaudit
// On macOS: ~/Library/Application Support/pwaudit
// On Windows: %APPDATA%\pwaudit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found. It is called once after CLI parsing, before any file is
// read.
func (c *Config) Validate() error {
	if len(c.DumpPaths) == 0 {
		return ErrNoDump
	}
	for _, p := range c.DumpPaths {
		if p == "" {
			return ErrNoDump
		}
	}

	if c.ReportFile == "" {
		return ErrNoReportFile
	}

	if c.TopN <= 0 {
		return ErrInvalidTopN
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.SaveToDB && c.DBDir == "" {
		return ErrNoDBDir
	}

	return nil
}
