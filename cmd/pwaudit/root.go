package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/pwaudit/internal/aggregate"
	"github.com/nao1215/pwaudit/internal/corpus"
	"github.com/nao1215/pwaudit/internal/database"
	"github.com/nao1215/pwaudit/internal/report"
	"github.com/nao1215/pwaudit/internal/target"
)

// Exit statuses.
const (
	exitOK        = 0
	exitFailure   = 1
	exitIOFatal   = 2
	exitDataEmpty = 3
)

// errHistoryUnavailable marks failures of the run history database.
var errHistoryUnavailable = errors.New("run history unavailable")

// NewRootCmd creates the root command for pwaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pwaudit",
		Short: "Password audit for cleartext credential dumps",
		Long: `pwaudit analyzes a dump of cracked credentials and reports how the
passwords were built: lengths, root words, trailing digits and years,
calendar words, special characters, entropy and hashcat masks.

Usernames found in a high value target list are reported first.
Every completed run is recorded so later audits of the same dump can be
compared with 'pwaudit history'.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, corpus.ErrSourceUnavailable),
		errors.Is(err, target.ErrListUnavailable),
		errors.Is(err, report.ErrOutputUnwritable),
		errors.Is(err, database.ErrDatabaseNotFound),
		errors.Is(err, errHistoryUnavailable):
		return exitIOFatal
	case errors.Is(err, aggregate.ErrEmptyCorpus):
		return exitDataEmpty
	default:
		return exitFailure
	}
}

// Execute runs the root command and exits with the status matching the
// returned error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pwaudit:", err)
		os.Exit(exitCode(err))
	}
}
