package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/nao1215/pwaudit/internal/corpus"
	"github.com/nao1215/pwaudit/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })
		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
		if bp.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(2))
		if bp.concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(0))
		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
	})

	t.Run("generates UUID run ids by default", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })
		if id := bp.newID(); len(id) != 36 {
			t.Errorf("expected a UUID, got %q", id)
		}
	})
}

// TestBatchProcessorProcessBatch tests batch processing.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("returns runs in input order", func(t *testing.T) {
		t.Parallel()

		var n atomic.Int32
		bp := NewBatchProcessor(
			func() *Pipeline { return DefaultPipeline(nil) },
			WithConcurrency(2),
			WithIDGenerator(func() string { return fmt.Sprintf("run-%d", n.Add(1)) }),
			WithBatchClock(func() time.Time { return stepTime }),
		)

		dumps := []string{
			writeFile(t, "a.txt", "alice:1:aaa\n"),
			writeFile(t, "b.txt", "bob:1:bbb\nbob:2:bbb\n"),
			writeFile(t, "c.txt", "carol:1:ccc\ncarol:2:c\ncarol:3:cc\n"),
		}
		runs, err := bp.ProcessBatch(context.Background(), dumps, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != len(dumps) {
			t.Fatalf("expected %d runs, got %d", len(dumps), len(runs))
		}
		for i, run := range runs {
			if run.DumpPath != dumps[i] {
				t.Errorf("run %d: expected dump %s, got %s", i, dumps[i], run.DumpPath)
			}
			if run.Err != nil {
				t.Errorf("run %d: unexpected error %v", i, run.Err)
			}
			if run.Report == nil || run.Report.TotalEntries != i+1 {
				t.Errorf("run %d: expected %d entries", i, i+1)
			}
			if !run.StartedAt.Equal(stepTime) {
				t.Errorf("run %d: unexpected start time %v", i, run.StartedAt)
			}
		}
		if runs[0].ID != "run-1" || runs[2].ID != "run-3" {
			t.Errorf("expected ids assigned in input order, got %s and %s", runs[0].ID, runs[2].ID)
		}
	})

	t.Run("a failing dump does not stop the others", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return DefaultPipeline(nil) })
		dumps := []string{
			filepath.Join(t.TempDir(), "missing.txt"),
			writeFile(t, "ok.txt", "alice:1:secret\n"),
		}
		runs, err := bp.ProcessBatch(context.Background(), dumps, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !errors.Is(runs[0].Err, corpus.ErrSourceUnavailable) {
			t.Errorf("expected ErrSourceUnavailable, got %v", runs[0].Err)
		}
		if runs[1].Err != nil || runs[1].Report == nil {
			t.Errorf("expected second run to succeed, got %v", runs[1].Err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls atomic.Int32
		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "count", doFunc: func(context.Context, *model.Run) error {
				calls.Add(1)
				return nil
			}})
			return p
		})

		runs, err := bp.ProcessBatch(ctx, []string{"a", "b"}, "")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if calls.Load() != 0 {
			t.Errorf("expected no step to run, ran %d", calls.Load())
		}
		for _, run := range runs {
			if !errors.Is(run.Err, context.Canceled) {
				t.Errorf("expected run error context.Canceled, got %v", run.Err)
			}
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })
		runs, err := bp.ProcessBatch(context.Background(), nil, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected no runs, got %d", len(runs))
		}
	})
}
