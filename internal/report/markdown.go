package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/pwaudit/internal/model"
)

// MarkdownWriter outputs reports in Markdown format for sharing.
// Counts are printed with thousands separators.
type MarkdownWriter struct {
	baseWriter

	printer *message.Printer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeTargets(md, report)
	w.writeShareTable(md, fmt.Sprintf("Top %d Passwords", report.TopN), "Password", report.TopPasswords)
	w.writeShareTable(md, fmt.Sprintf("Top %d Root Words", report.TopN), "Root Word", report.TopRootWords)
	w.writeLengths(md, report)
	w.writePatterns(md, report)
	w.writeCalendar(md, report)
	w.writeSpecialCharacter(md, report)
	w.writeEntropy(md, report)
	w.writeCharacterClasses(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the run properties table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Password Audit Report")
	md.PlainText("")

	rows := [][]string{
		{"Source", "`" + report.Source + "`"},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Total Entries", w.count(report.TotalEntries)},
		{"Unique Passwords", w.count(report.UniquePasswords)},
	}
	if report.RunID != "" {
		rows = append(rows, []string{"Run ID", "`" + report.RunID + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTargets writes the HVT alert and the per-user breakdown.
func (w *MarkdownWriter) writeTargets(md *markdown.Markdown, report *model.Report) {
	md.H2("High Value Targets")
	md.PlainText("")

	if !report.HasCompromisedTargets() {
		md.Tip("No High Value Targets identified as compromised.")
		md.PlainText("")
		return
	}

	md.Cautionf(
		"%d credential(s) belonging to %d high value target(s) found in the dump.",
		len(report.Compromised), len(report.CompromisedByUser),
	)
	md.PlainText("")

	rows := make([][]string, len(report.CompromisedByUser))
	for i, s := range report.CompromisedByUser {
		rows[i] = []string{escapeCell(s.Key), w.count(s.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Username", "Credentials"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeShareTable writes a ranked table for a list of shares.
func (w *MarkdownWriter) writeShareTable(md *markdown.Markdown, title, keyHeader string, shares []model.Share[string]) {
	md.H2(title)
	md.PlainText("")

	if len(shares) == 0 {
		md.PlainText("None.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(shares))
	for i, s := range shares {
		rows[i] = []string{
			w.count(i + 1),
			escapeCell(s.Key),
			w.count(s.Count),
			formatPercent(s.Percent),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", keyHeader, "Count", "Share"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeLengths writes the length pie chart and table.
func (w *MarkdownWriter) writeLengths(md *markdown.Markdown, report *model.Report) {
	md.H2("Password Length Analysis")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Password Length Distribution"),
		piechart.WithShowData(true),
	)
	rows := make([][]string, len(report.Lengths))
	for i, s := range report.Lengths {
		chart.LabelAndIntValue(fmt.Sprintf("%d chars", s.Key), uint64(s.Count))
		rows[i] = []string{
			w.count(s.Key),
			w.count(s.Count),
			formatPercent(s.Percent),
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Length", "Count", "Share"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePatterns writes the trailing digit tallies and the year ranking.
func (w *MarkdownWriter) writePatterns(md *markdown.Markdown, report *model.Report) {
	d := report.TrailingDigits

	md.H2("Digits at the End")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Suffix", "Count", "Share"},
		Rows: [][]string{
			{"Single digit", w.count(d.Single.Count), formatPercent(d.Single.Percent)},
			{"Double digits", w.count(d.Double.Count), formatPercent(d.Double.Percent)},
			{"Triple digits", w.count(d.Triple.Count), formatPercent(d.Triple.Percent)},
		},
	})
	md.PlainText("")
	md.Note("The tallies overlap: a password ending in three digits is counted in all three rows.")
	md.PlainText("")

	w.writeShareTable(md, "Years at the End", "Year", report.Years)
}

// writeCalendar writes one sub-section per calendar lexicon.
func (w *MarkdownWriter) writeCalendar(md *markdown.Markdown, report *model.Report) {
	md.H2("Calendar Words")
	md.PlainText("")

	sections := []struct {
		header string
		shares []model.Share[string]
	}{
		{"### Seasons", report.Seasons},
		{"### Months", report.Months},
		{"### Abbreviated Months", report.MonthAbbreviations},
		{"### Days", report.Days},
	}
	for _, s := range sections {
		md.PlainText(s.header)
		md.PlainText("")
		if len(s.shares) == 0 {
			md.PlainText("None.")
			md.PlainText("")
			continue
		}
		rows := make([][]string, len(s.shares))
		for i, share := range s.shares {
			rows[i] = []string{share.Key, w.count(share.Count), formatPercent(share.Percent)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Word", "Count", "Share"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeSpecialCharacter(md *markdown.Markdown, report *model.Report) {
	sc := report.SpecialCharacter

	md.H2("Most Used Special Character")
	md.PlainText("")
	if !sc.Found {
		md.PlainText("No special characters found.")
		md.PlainText("")
		return
	}
	md.Table(markdown.TableSet{
		Header: []string{"Character", "Count", "Share of Special Characters"},
		Rows: [][]string{
			{"`" + escapeCell(sc.Character) + "`", w.count(sc.Count), formatPercent(sc.Percent)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeEntropy(md *markdown.Markdown, report *model.Report) {
	md.H2(fmt.Sprintf("Password Entropy (Top %d)", report.TopN))
	md.PlainText("")

	rows := make([][]string, len(report.TopEntropy))
	for i, e := range report.TopEntropy {
		rows[i] = []string{w.count(i + 1), escapeCell(e.Password), fmt.Sprintf("%.2f", e.Entropy)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Password", "Entropy (bits)"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCharacterClasses writes masks, compositions and username reuse.
func (w *MarkdownWriter) writeCharacterClasses(md *markdown.Markdown, report *model.Report) {
	w.writeShareTable(md, fmt.Sprintf("Top %d Masks", report.TopN), "Mask", report.TopMasks)
	w.writeShareTable(md, "Character Class Composition", "Classes", report.Compositions)

	md.H2("Username Reuse")
	md.PlainText("")
	if report.UsernameReuse.Count > 0 {
		md.Warningf(
			"%s password(s) (%s) contain the account's own username.",
			w.count(report.UsernameReuse.Count), formatPercent(report.UsernameReuse.Percent),
		)
	} else {
		md.PlainText("No password contains its own username.")
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [pwaudit](https://github.com/nao1215/pwaudit)*")
}

// count formats n with thousands separators.
func (w *MarkdownWriter) count(n int) string {
	return w.printer.Sprintf("%d", n)
}

// escapeCell makes s safe to place inside a Markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
