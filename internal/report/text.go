package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/pwaudit/internal/model"
)

// TimestampLayout is the layout of the "Summary created" line.
const TimestampLayout = "2006-01-02 15:04:05"

// TextWriter outputs the fixed section text report.
//
// The section headers and their order are read by downstream parsers and
// must not change. Sections are separated by one blank line.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in the text layout.
func (w *TextWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeTargets(&sb, report)
	writeShareSection(&sb, fmt.Sprintf("Top %d Passwords:", report.TopN), report.TopPasswords)
	writeShareSection(&sb, fmt.Sprintf("Top %d Root Words:", report.TopN), report.TopRootWords)
	w.writeLengths(&sb, report)
	w.writeTrailingDigits(&sb, report)
	writeShareSection(&sb, "Years at the End:", report.Years)
	writeShareSection(&sb, "Seasons in Passwords:", report.Seasons)
	writeShareSection(&sb, "Months in Passwords:", report.Months)
	writeShareSection(&sb, "Abbreviated Months in Passwords:", report.MonthAbbreviations)
	writeShareSection(&sb, "Days in Passwords:", report.Days)
	w.writeSpecialCharacter(&sb, report)
	w.writeEntropy(&sb, report)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the timestamp and corpus totals.
func (w *TextWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	fmt.Fprintf(sb, "Summary created: %s\n", report.GeneratedAt.Format(TimestampLayout))
	fmt.Fprintf(sb, "Total entries: %d\n", report.TotalEntries)
	fmt.Fprintf(sb, "Total unique entries: %d\n", report.UniquePasswords)
}

// writeTargets writes one line per compromised record, duplicates included.
func (w *TextWriter) writeTargets(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\nHigh Value Targets Identified:\n")
	if !report.HasCompromisedTargets() {
		sb.WriteString("No High Value Targets identified as compromised.\n")
		return
	}
	for _, c := range report.Compromised {
		fmt.Fprintf(sb, "%s: COMPROMISED\n", c.Username)
	}
}

func (w *TextWriter) writeLengths(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\nPassword Length Analysis:\n")
	for _, s := range report.Lengths {
		fmt.Fprintf(sb, "Length %d: %d (%s)\n", s.Key, s.Count, formatPercent(s.Percent))
	}
}

func (w *TextWriter) writeTrailingDigits(sb *strings.Builder, report *model.Report) {
	d := report.TrailingDigits
	sb.WriteString("\nDigits at the End:\n")
	fmt.Fprintf(sb, "Single digit: %d (%s)\n", d.Single.Count, formatPercent(d.Single.Percent))
	fmt.Fprintf(sb, "Double digits: %d (%s)\n", d.Double.Count, formatPercent(d.Double.Percent))
	fmt.Fprintf(sb, "Triple digits: %d (%s)\n", d.Triple.Count, formatPercent(d.Triple.Percent))
}

func (w *TextWriter) writeSpecialCharacter(sb *strings.Builder, report *model.Report) {
	sc := report.SpecialCharacter
	character := sc.Character
	if !sc.Found || character == "" {
		character = model.NoSpecialCharacter
	}
	sb.WriteString("\nMost Used Special Character:\n")
	fmt.Fprintf(sb, "Character: %s\n", character)
	fmt.Fprintf(sb, "Count: %d (%s)\n", sc.Count, formatPercent(sc.Percent))
}

func (w *TextWriter) writeEntropy(sb *strings.Builder, report *model.Report) {
	fmt.Fprintf(sb, "\nPassword Entropy (Top %d by Entropy):\n", report.TopN)
	for _, e := range report.TopEntropy {
		fmt.Fprintf(sb, "%s: Entropy = %.2f\n", e.Password, e.Entropy)
	}
}

// writeShareSection writes a blank line, the header and one
// "{key}: {count} ({pct})" line per share.
func writeShareSection(sb *strings.Builder, header string, shares []model.Share[string]) {
	sb.WriteString("\n")
	sb.WriteString(header)
	sb.WriteString("\n")
	for _, s := range shares {
		fmt.Fprintf(sb, "%s: %d (%s)\n", s.Key, s.Count, formatPercent(s.Percent))
	}
}

// formatPercent formats a percentage with two decimals, e.g. "33.33%".
func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
