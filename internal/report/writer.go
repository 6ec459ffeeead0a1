package report

import (
	"io"

	"github.com/nao1215/pwaudit/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)
}

// MultiWriter writes the same report to several Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Format selects a report rendition.
type Format string

const (
	// FormatText is the fixed section text layout.
	FormatText Format = "text"
	// FormatMarkdown is the Markdown rendition.
	FormatMarkdown Format = "markdown"
	// FormatJSON is the JSON rendition.
	FormatJSON Format = "json"
)

// NewWriter returns the writer for format, writing to output.
// Unknown formats fall back to the text layout.
func NewWriter(format Format, output io.Writer) Writer {
	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	default:
		return NewTextWriter(output)
	}
}

// Extension returns the file extension conventionally used for format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}
