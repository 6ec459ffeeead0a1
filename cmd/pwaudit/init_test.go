package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nao1215/pwaudit/internal/config"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultConfigFile {
			t.Errorf("expected default %q, got %q", config.DefaultConfigFile, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
	})
}

// runInit executes the init command with args and returns its output.
func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewInitCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// TestRunInitCmd tests the init command execution.
func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates config file", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), config.DefaultConfigFile)
		out, err := runInit(t, "-o", outputPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Created configuration file: "+outputPath) {
			t.Errorf("unexpected output: %q", out)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if !bytes.Equal(content, configTemplate) {
			t.Error("expected file to match the embedded template")
		}
	})

	t.Run("fails if file exists without force", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), config.DefaultConfigFile)
		if err := os.WriteFile(outputPath, []byte("existing"), 0o600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		_, err := runInit(t, "-o", outputPath)
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected 'already exists' error, got %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(content) != "existing" {
			t.Error("existing file must not be modified")
		}
	})

	t.Run("overwrites file with force flag", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), config.DefaultConfigFile)
		if err := os.WriteFile(outputPath, []byte("existing"), 0o600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		if _, err := runInit(t, "-o", outputPath, "-f"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(content) == "existing" {
			t.Error("expected file to be overwritten")
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "subdir", "nested", config.DefaultConfigFile)
		if _, err := runInit(t, "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(outputPath); err != nil {
			t.Errorf("expected config file in nested directory: %v", err)
		}
	})

	t.Run("file has correct permissions", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" {
			t.Skip("skipping permission test on Windows")
		}

		outputPath := filepath.Join(t.TempDir(), config.DefaultConfigFile)
		if _, err := runInit(t, "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(outputPath)
		if err != nil {
			t.Fatalf("failed to stat file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})
}

// TestConfigTemplate checks that the generated file loads into a valid
// configuration.
func TestConfigTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
	if err := os.WriteFile(path, configTemplate, 0o600); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}

	cfg := config.NewConfig()
	if err := file.Apply(cfg); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("template yields invalid config: %v", err)
	}

	if len(cfg.DumpPaths) != 1 || cfg.DumpPaths[0] != config.DefaultDumpPath {
		t.Errorf("DumpPaths = %v, want [%s]", cfg.DumpPaths, config.DefaultDumpPath)
	}
	if cfg.ReportFile != config.DefaultReportFile {
		t.Errorf("ReportFile = %q, want %q", cfg.ReportFile, config.DefaultReportFile)
	}
	if cfg.TopN != config.DefaultTopN {
		t.Errorf("TopN = %d, want %d", cfg.TopN, config.DefaultTopN)
	}
	if !cfg.SaveToDB {
		t.Error("expected history to be enabled")
	}
}
