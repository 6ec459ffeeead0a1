package history

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
)

const dateLayout = "2006-01-02 15:04:05"

// WriteJSON writes the comparison as indented JSON.
func WriteJSON(w io.Writer, c *Comparison) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(c)
}

// WriteText writes the comparison in human-readable text format.
func WriteText(w io.Writer, c *Comparison) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Run Comparison: %s\n", c.Source)
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "\nExposure: %s\n", formatDirection(c.Direction))
	fmt.Fprintf(&sb, "\nPrevious run: %s (%s)\n", c.Previous.GeneratedAt.Format(dateLayout), c.Previous.RunID)
	fmt.Fprintf(&sb, "Current run:  %s (%s)\n", c.Current.GeneratedAt.Format(dateLayout), c.Current.RunID)

	sb.WriteString("\nSummary:\n")
	fmt.Fprintf(&sb, "  %-20s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	sb.WriteString("  " + strings.Repeat("-", 55) + "\n")
	for _, row := range summaryRows(c) {
		fmt.Fprintf(&sb, "  %-20s  %-10s  %-10s  %-10s\n", row[0], row[1], row[2], row[3])
	}

	if len(c.NewlyCompromised) > 0 {
		fmt.Fprintf(&sb, "\nNewly Compromised Targets (%d):\n", len(c.NewlyCompromised))
		for _, u := range c.NewlyCompromised {
			fmt.Fprintf(&sb, "  [+] %s\n", u)
		}
	}
	if len(c.NoLongerPresent) > 0 {
		fmt.Fprintf(&sb, "\nTargets No Longer Present (%d):\n", len(c.NoLongerPresent))
		for _, u := range c.NoLongerPresent {
			fmt.Fprintf(&sb, "  [-] %s\n", u)
		}
	}

	if len(c.RankChanges) > 0 {
		sb.WriteString("\nTop Password Movement:\n")
		for _, rc := range c.RankChanges {
			fmt.Fprintf(&sb, "  %-6s %s\n", formatRankChange(rc), rc.Password)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteMarkdown writes the comparison in Markdown format.
func WriteMarkdown(w io.Writer, c *Comparison) error {
	md := markdown.NewMarkdown(w)

	md.H1("Run Comparison")
	md.PlainText("")
	md.PlainTextf("Source: %s", markdown.Code(c.Source))
	md.PlainText("")
	md.PlainTextf("%s %s", markdown.Bold("Exposure:"), formatDirection(c.Direction))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Previous", "Current", "Change"},
		Rows: append([][]string{{
			"Date",
			c.Previous.GeneratedAt.Format(dateLayout),
			c.Current.GeneratedAt.Format(dateLayout),
			"-",
		}}, summaryRows(c)...),
	})
	md.PlainText("")

	if len(c.NewlyCompromised) > 0 {
		md.H2f("Newly Compromised Targets (%d)", len(c.NewlyCompromised))
		md.PlainText("")
		md.BulletList(c.NewlyCompromised...)
		md.PlainText("")
	}
	if len(c.NoLongerPresent) > 0 {
		md.H2f("Targets No Longer Present (%d)", len(c.NoLongerPresent))
		md.PlainText("")
		gone := make([]string, len(c.NoLongerPresent))
		for i, u := range c.NoLongerPresent {
			gone[i] = markdown.Strikethrough(u)
		}
		md.BulletList(gone...)
		md.PlainText("")
	}

	if len(c.RankChanges) > 0 {
		md.H2("Top Password Movement")
		md.PlainText("")
		rows := make([][]string, len(c.RankChanges))
		for i, rc := range c.RankChanges {
			rows[i] = []string{
				strings.ReplaceAll(rc.Password, "|", `\|`),
				formatRank(rc.PreviousRank),
				formatRank(rc.CurrentRank),
				formatRankChange(rc),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Password", "Previous", "Current", "Movement"},
			Rows:   rows,
		})
	}

	return md.Build()
}

func summaryRows(c *Comparison) [][]string {
	return [][]string{
		{"Total Entries", strconv.Itoa(c.Previous.TotalEntries), strconv.Itoa(c.Current.TotalEntries), formatDelta(c.TotalEntriesDelta)},
		{"Unique Passwords", strconv.Itoa(c.Previous.UniquePasswords), strconv.Itoa(c.Current.UniquePasswords), formatDelta(c.UniquePasswordsDelta)},
		{"HVT Credentials", strconv.Itoa(c.Previous.CompromisedCount), strconv.Itoa(c.Current.CompromisedCount), formatDelta(c.CompromisedDelta)},
		{"HVT Users", strconv.Itoa(c.Previous.CompromisedUsers), strconv.Itoa(c.Current.CompromisedUsers), formatDelta(c.Current.CompromisedUsers - c.Previous.CompromisedUsers)},
		{"Username Reuse", strconv.Itoa(c.Previous.UsernameReuse), strconv.Itoa(c.Current.UsernameReuse), formatDelta(c.Current.UsernameReuse - c.Previous.UsernameReuse)},
	}
}

// formatDirection formats the exposure trend for display.
func formatDirection(d Direction) string {
	switch d {
	case DirectionImproved:
		return "IMPROVED (exposure decreased)"
	case DirectionWorsened:
		return "WORSENED (exposure increased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}

func formatRank(rank int) string {
	if rank == 0 {
		return "-"
	}
	return strconv.Itoa(rank)
}

func formatRankChange(rc RankChange) string {
	switch {
	case rc.IsNew():
		return "new"
	case rc.IsDropped():
		return "out"
	case rc.Movement() > 0:
		return "↑" + strconv.Itoa(rc.Movement())
	case rc.Movement() < 0:
		return "↓" + strconv.Itoa(-rc.Movement())
	default:
		return "="
	}
}
