package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/pwaudit/internal/config"
)

//go:embed templates/pwaudit.yaml
var configTemplate []byte

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new pwaudit configuration file",
		Long: `Initialize creates a new .pwaudit configuration file in the current directory.

The generated file documents every option:
- The credential dumps and the high value target list
- The report format, destination and ranking size
- The run history database

Examples:
  # Create .pwaudit in current directory
  pwaudit init

  # Create config file at a specific path
  pwaudit init -o myconfig.yaml

  # Force overwrite existing file
  pwaudit init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, configTemplate, 0o600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to set:")
	fmt.Fprintln(out, "  - The credential dumps and high value target list")
	fmt.Fprintln(out, "  - The report format and destination")
	fmt.Fprintln(out, "  - Whether runs are recorded in the history database")

	return nil
}
