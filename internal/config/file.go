package config

import "fmt"

// File represents the structure of the .pwaudit configuration file.
type File struct {
	// Input names the files to analyze.
	Input InputConfig `yaml:"input,omitempty"`

	// Report configures report rendering.
	Report ReportConfig `yaml:"report,omitempty"`

	// History configures the run history database.
	History HistoryConfig `yaml:"history,omitempty"`
}

// InputConfig names the credential dumps and the high value target list.
type InputConfig struct {
	// Dumps are credential dump paths analyzed when none is given on the
	// command line.
	Dumps []string `yaml:"dumps,omitempty"`

	// Targets is the high value target list path.
	Targets string `yaml:"targets,omitempty"`
}

// ReportConfig configures report rendering.
type ReportConfig struct {
	// Format is one of "text", "markdown" or "json".
	Format string `yaml:"format,omitempty"`

	// Output is the report file, or a directory when several dumps are analyzed.
	Output string `yaml:"output,omitempty"`

	// Top is the size of the "top" rankings. Zero keeps the default.
	Top int `yaml:"top,omitempty"`
}

// HistoryConfig configures the run history database.
type HistoryConfig struct {
	// Enabled turns history recording on or off. Nil keeps the default (on).
	Enabled *bool `yaml:"enabled,omitempty"`

	// Dir overrides the database directory.
	Dir string `yaml:"dir,omitempty"`
}

// Apply copies the values set in the file onto c. Unset values leave c
// untouched, so CLI flags applied afterwards still win.
func (f *File) Apply(c *Config) error {
	if f == nil {
		return nil
	}

	if len(f.Input.Dumps) > 0 {
		c.DumpPaths = append([]string(nil), f.Input.Dumps...)
	}
	if f.Input.Targets != "" {
		c.TargetsPath = f.Input.Targets
	}

	switch f.Report.Format {
	case "":
	case FormatText:
		c.JSONReport, c.MarkdownReport = false, false
	case FormatMarkdown:
		c.JSONReport, c.MarkdownReport = false, true
	case FormatJSON:
		c.JSONReport, c.MarkdownReport = true, false
	default:
		return fmt.Errorf("%w: %q", ErrInvalidReportFormat, f.Report.Format)
	}
	if f.Report.Output != "" {
		c.ReportFile = f.Report.Output
	}
	if f.Report.Top != 0 {
		c.TopN = f.Report.Top
	}

	if f.History.Enabled != nil {
		c.SaveToDB = *f.History.Enabled
	}
	if f.History.Dir != "" {
		c.DBDir = f.History.Dir
	}

	return nil
}
