package target

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/pwaudit/internal/model"
)

func TestParse(t *testing.T) {
	t.Parallel()

	set, err := Parse(strings.NewReader("alice\r\n\nroot\n bob \n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set.Len() != 3 {
		t.Errorf("expected 3 targets, got %d", set.Len())
	}
	for _, u := range []string{"alice", "root", " bob "} {
		if !set.Contains(u) {
			t.Errorf("expected %q to be a target", u)
		}
	}
	if set.Contains("bob") {
		t.Error("usernames must be used verbatim")
	}
	if set.Contains("") {
		t.Error("blank lines must not become targets")
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("loads list", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "hvts.txt")
		if err := os.WriteFile(path, []byte("alice\nroot\n"), 0600); err != nil {
			t.Fatalf("failed to write list: %v", err)
		}

		set, err := LoadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if set.Len() != 2 {
			t.Errorf("expected 2 targets, got %d", set.Len())
		}
	})

	t.Run("missing file is ErrListUnavailable", func(t *testing.T) {
		t.Parallel()

		_, err := LoadFile(filepath.Join(t.TempDir(), "hvts.txt"))
		if !errors.Is(err, ErrListUnavailable) {
			t.Errorf("expected ErrListUnavailable, got %v", err)
		}
	})
}

func TestCrossReference(t *testing.T) {
	t.Parallel()

	corpus := model.NewCorpus([]model.Record{
		{Username: "alice", Password: "x1"},
		{Username: "alice", Password: "x2"},
		{Username: "bob", Password: "y1"},
	})

	t.Run("duplicates are not collapsed", func(t *testing.T) {
		t.Parallel()

		got := CrossReference(corpus, model.NewTargetSet("alice"))
		want := []model.CompromisedTarget{{Username: "alice"}, {Username: "alice"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("keeps corpus order", func(t *testing.T) {
		t.Parallel()

		got := CrossReference(corpus, model.NewTargetSet("bob", "alice"))
		want := []model.CompromisedTarget{{Username: "alice"}, {Username: "alice"}, {Username: "bob"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty set gives empty result", func(t *testing.T) {
		t.Parallel()

		got := CrossReference(corpus, model.TargetSet{})
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	got := Summarize([]model.CompromisedTarget{
		{Username: "root"}, {Username: "alice"}, {Username: "root"}, {Username: "root"},
	})
	want := []model.Share[string]{
		{Key: "root", Count: 3, Percent: 75},
		{Key: "alice", Count: 1, Percent: 25},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if len(Summarize(nil)) != 0 {
		t.Error("expected no shares for no compromised targets")
	}
}
