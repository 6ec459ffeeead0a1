package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/pwaudit/internal/config"
	"github.com/nao1215/pwaudit/internal/database"
	pwlog "github.com/nao1215/pwaudit/internal/log"
	"github.com/nao1215/pwaudit/internal/model"
	"github.com/nao1215/pwaudit/internal/pipeline"
	"github.com/nao1215/pwaudit/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [dump...]",
		Short: "Analyze credential dumps and write a password audit report",
		Long: `Analyze reads one or more credential dumps (one username:password record
per line) and writes a password audit report for each.

The report lists compromised high value targets, the most common passwords
and root words, the length distribution, trailing digits and years,
calendar words, the most used special character, the highest entropy
passwords, hashcat masks and character class compositions.

Records that are not username:password are skipped.

Examples:
  # Analyze SUMMARY.txt into PASummary.txt
  pwaudit analyze

  # Analyze a dump against a high value target list
  pwaudit analyze dump.txt -t hvt.txt -o report.txt

  # Markdown report with the top 20 of every ranking
  pwaudit analyze dump.txt -m -n 20 -o report.md

  # Several dumps: --output is a directory receiving one report each
  pwaudit analyze jan.txt feb.txt -j -o reports/

  # Do not record the run in the history database
  pwaudit analyze dump.txt --no-history`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("targets", "t", "",
		"High value target list, one username per line")
	cmd.Flags().StringP("output", "o", config.DefaultReportFile,
		"Report file (a directory when several dumps are analyzed)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().IntP("top", "n", config.DefaultTopN,
		"Size of every top ranking in the report")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of dumps analyzed concurrently")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pwaudit in current or home directory)")
	cmd.Flags().Bool("no-history", false,
		"Do not record the run in the history database")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildAnalyzeConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := pwlog.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAnalyze(ctx, cfg, cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// loadConfigFile applies the configuration file to cfg.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise a missing file leaves cfg untouched.
func loadConfigFile(cfg *config.Config, explicitPath string) error {
	cfg.ConfigFilePath = explicitPath
	path := config.FindConfigFile(explicitPath)

	if path == "" {
		if explicitPath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicitPath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if err := file.Apply(cfg); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// buildAnalyzeConfig creates a Config from defaults, the configuration file
// and the command flags, in that order of precedence.
func buildAnalyzeConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if err := loadConfigFile(cfg, configPath); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.DumpPaths = args
	}

	if flags.Changed("targets") {
		if cfg.TargetsPath, err = flags.GetString("targets"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("top") {
		if cfg.TopN, err = flags.GetInt("top"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return nil, err
		}
	}

	// A format flag replaces the format chosen in the configuration file.
	jsonReport, err := flags.GetBool("json")
	if err != nil {
		return nil, err
	}
	markdownReport, err := flags.GetBool("markdown")
	if err != nil {
		return nil, err
	}
	if jsonReport || markdownReport {
		cfg.JSONReport, cfg.MarkdownReport = jsonReport, markdownReport
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveToDB = false
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// absPaths resolves every path against the working directory so runs of
// the same dump share one history source.
func absPaths(paths []string) ([]string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		out[i] = abs
	}
	return out, nil
}

// runAnalyze analyzes every configured dump, writes the reports and
// records the runs.
//
// Reports are written only once every dump has been analyzed successfully,
// so a missing dump or target list leaves no partial output behind.
func runAnalyze(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	dumps, err := absPaths(cfg.DumpPaths)
	if err != nil {
		return err
	}
	targetsPath := cfg.TargetsPath
	if targetsPath != "" {
		if targetsPath, err = filepath.Abs(targetsPath); err != nil {
			return fmt.Errorf("resolve %s: %w", cfg.TargetsPath, err)
		}
	}

	logger.Info("starting analysis",
		"dumps", len(dumps),
		"batch_size", cfg.BatchSize,
		"save_to_db", cfg.SaveToDB,
	)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("%w: %w", errHistoryUnavailable, err)
		}
		defer db.Close()
		logger.Debug("history database opened", "path", db.Path())
	}

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.DefaultPipeline(
				[]pipeline.Option{pipeline.WithLogger(logger)},
				pipeline.WithPipelineTopN(cfg.TopN),
			)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	runs, err := bp.ProcessBatch(ctx, dumps, targetsPath)
	if err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}
	for _, run := range runs {
		if run.Err != nil {
			return run.Err
		}
	}

	format := report.Format(cfg.ReportFormat())
	paths := reportPaths(cfg.ReportFile, dumps, format)

	if len(dumps) > 1 {
		if err := os.MkdirAll(cfg.ReportFile, 0o700); err != nil {
			return fmt.Errorf("%w: %s: %w", report.ErrOutputUnwritable, cfg.ReportFile, err)
		}
	}

	for i, run := range runs {
		if err := report.WriteFileFormat(paths[i], format, run.Report); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %d entries, %d high value target credential(s) -> %s\n",
			run.DumpPath, run.Report.TotalEntries, len(run.Report.Compromised), paths[i])
	}

	if db != nil {
		if err := saveRuns(ctx, db, runs, logger); err != nil {
			return err
		}
	}

	logger.Info("analysis completed",
		"dumps", len(runs),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	return nil
}

// reportPaths returns the report destination of every dump.
// A single dump is written to output itself. Several dumps are written into
// the output directory, named after the dump with the format's extension;
// a name already taken gets the first free numeric suffix.
func reportPaths(output string, dumps []string, format report.Format) []string {
	if len(dumps) == 1 {
		return []string{output}
	}

	paths := make([]string, len(dumps))
	used := make(map[string]struct{}, len(dumps))
	for i, dump := range dumps {
		base := filepath.Base(dump)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		name := stem
		for n := 2; ; n++ {
			if _, ok := used[name]; !ok {
				break
			}
			name = stem + "-" + strconv.Itoa(n)
		}
		used[name] = struct{}{}
		paths[i] = filepath.Join(output, name+format.Extension())
	}
	return paths
}

// saveRuns records every run's report in the history database.
func saveRuns(ctx context.Context, db *database.HistoryDB, runs []*model.Run, logger *slog.Logger) error {
	var errs []error
	for _, run := range runs {
		if err := db.SaveRun(ctx, run.Report); err != nil {
			logger.Error("failed to save run", "dump", run.DumpPath, "error", err)
			errs = append(errs, err)
			continue
		}
		logger.Debug("run saved to history", "dump", run.DumpPath, "run_id", run.ID)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", errHistoryUnavailable, err)
	}
	return nil
}
