package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		get  func() string
	}{
		{name: "version", get: getVersion},
		{name: "commit", get: getCommit},
		{name: "date", get: getDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			// Falls back to a placeholder when neither ldflags nor build info is set.
			if got := tt.get(); got == "" {
				t.Errorf("%s is empty", tt.name)
			}
		})
	}
}

func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"pwaudit version", "commit:", "built:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}
