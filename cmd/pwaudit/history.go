package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/pwaudit/internal/config"
	"github.com/nao1215/pwaudit/internal/database"
	"github.com/nao1215/pwaudit/internal/history"
	"github.com/nao1215/pwaudit/internal/model"
)

// NewHistoryCmd creates the history command.
// This command compares analysis runs stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [dump]",
		Short: "Compare analysis runs of a credential dump",
		Long: `History compares the latest analysis of a dump with an earlier one.

It shows:
- Changes in total entries, unique passwords and high value target records
- High value targets that newly appeared or are no longer present
- How the most common passwords moved in the ranking

Runs are recorded by 'pwaudit analyze' unless --no-history is given.
Without a dump argument the first configured dump is used.

Examples:
  # Compare the latest two runs of a dump
  pwaudit history dump.txt

  # List the recorded runs of a dump
  pwaudit history --list dump.txt

  # Compare the latest run with a specific run
  pwaudit history --with-run-id 0f6c... dump.txt

  # List every analyzed dump
  pwaudit history --list-sources`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List recorded runs of the dump")
	cmd.Flags().BoolP("list-sources", "L", false,
		"List every dump with recorded runs")
	cmd.Flags().StringP("with-run-id", "i", "",
		"Compare the latest run with this run (use --list to see available IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pwaudit in current or home directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	listSources, err := flags.GetBool("list-sources")
	if err != nil {
		return err
	}
	listRuns, err := flags.GetBool("list")
	if err != nil {
		return err
	}
	withRunID, err := flags.GetString("with-run-id")
	if err != nil {
		return err
	}
	jsonOutput, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return err
	}

	cfg := config.NewConfig()
	if err := loadConfigFile(cfg, configPath); err != nil {
		return err
	}
	if cfg.DBDir == "" {
		return config.ErrNoDBDir
	}

	// Validate arguments before opening the database.
	var source string
	if !listSources {
		dump := cfg.DumpPaths[0]
		if len(args) > 0 {
			dump = args[0]
		}
		if source, err = filepath.Abs(dump); err != nil {
			return fmt.Errorf("resolve %s: %w", dump, err)
		}
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("%w: %w", errHistoryUnavailable, err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case listSources:
		return listHistorySources(ctx, out, db)
	case listRuns:
		return listRunHistory(ctx, out, db, source)
	}

	previous, current, err := selectRuns(ctx, db, source, withRunID)
	if err != nil {
		return err
	}

	comparison := history.Compare(previous, current)
	switch {
	case jsonOutput:
		return history.WriteJSON(out, comparison)
	case markdownOutput:
		return history.WriteMarkdown(out, comparison)
	default:
		return history.WriteText(out, comparison)
	}
}

// listHistorySources lists every dump that has recorded runs.
func listHistorySources(ctx context.Context, out io.Writer, db *database.HistoryDB) error {
	sources, err := db.ListSources(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", errHistoryUnavailable, err)
	}

	if len(sources) == 0 {
		fmt.Fprintln(out, "No analyzed dumps found in the history database.")
		fmt.Fprintln(out, "\nUse 'pwaudit analyze <dump>' to analyze a credential dump.")
		return nil
	}

	fmt.Fprintf(out, "Analyzed dumps (%d):\n\n", len(sources))
	for _, source := range sources {
		fmt.Fprintf(out, "  • %s\n", source)
	}
	fmt.Fprintln(out, "\nUse 'pwaudit history --list <dump>' to see the runs of a dump.")

	return nil
}

// listRunHistory lists the recorded runs of source, newest first.
func listRunHistory(ctx context.Context, out io.Writer, db *database.HistoryDB, source string) error {
	runs, err := db.GetRunHistory(ctx, source)
	if err != nil {
		return fmt.Errorf("%w: %w", errHistoryUnavailable, err)
	}

	if len(runs) == 0 {
		fmt.Fprintf(out, "No run history found for %s\n", source)
		fmt.Fprintln(out, "\nUse 'pwaudit analyze' to analyze this dump.")
		return nil
	}

	fmt.Fprintf(out, "Run history for %s (%d runs):\n\n", source, len(runs))
	fmt.Fprintf(out, "  %-36s  %-19s  %8s  %8s  %4s\n", "ID", "Date", "Entries", "Unique", "HVT")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 85))

	for _, meta := range runs {
		fmt.Fprintf(out, "  %-36s  %-19s  %8d  %8d  %4d\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.TotalEntries,
			meta.UniquePasswords,
			meta.CompromisedCount,
		)
	}

	fmt.Fprintln(out, "\nUse 'pwaudit history <dump>' to compare the latest two runs.")
	fmt.Fprintln(out, "Use 'pwaudit history --with-run-id <id> <dump>' to compare with a specific run.")

	return nil
}

// selectRuns returns the previous and current reports to compare.
// The current report is always the latest run of source.
func selectRuns(ctx context.Context, db *database.HistoryDB, source, withRunID string) (*model.Report, *model.Report, error) {
	latest, err := db.GetLatestRuns(ctx, source, 2)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errHistoryUnavailable, err)
	}
	if len(latest) == 0 {
		return nil, nil, fmt.Errorf("no run history found for %s", source)
	}
	current := latest[0]

	if withRunID == "" {
		if len(latest) < 2 {
			return nil, nil, fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(latest))
		}
		return latest[1], current, nil
	}

	previous, err := db.GetRunByID(ctx, withRunID)
	if errors.Is(err, database.ErrRunNotFound) {
		return nil, nil, fmt.Errorf("run %s not found (use --list to see available IDs)", withRunID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errHistoryUnavailable, err)
	}
	if previous.Source != source {
		return nil, nil, fmt.Errorf("run %s belongs to %s, not %s", withRunID, previous.Source, source)
	}
	return previous, current, nil
}
