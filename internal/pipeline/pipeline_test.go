package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/pwaudit/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *model.Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *model.Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func newTestRun() *model.Run {
	return model.NewRun("run-1", "SUMMARY.txt", "", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.StepCount() != 0 {
		t.Errorf("expected 0 steps, got %d", p.StepCount())
	}
	if p.logger == nil {
		t.Error("expected default logger")
	}
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "a"})
	p.AddSteps(&mockStep{name: "b"}, &mockStep{name: "c"})

	if p.StepCount() != 3 {
		t.Errorf("expected 3 steps, got %d", p.StepCount())
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, p.StepNames()); diff != "" {
		t.Errorf("StepNames mismatch (-want +got):\n%s", diff)
	}
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(context.Context, *model.Run) error {
				order = append(order, name)
				return nil
			}}
		}

		p := New()
		p.AddSteps(record("first"), record("second"), record("third"))

		run := newTestRun()
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"first", "second", "third"}, order); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"first", "second", "third"}, run.PerformedSteps); diff != "" {
			t.Errorf("PerformedSteps mismatch (-want +got):\n%s", diff)
		}
		if run.Err != nil {
			t.Errorf("expected no run error, got %v", run.Err)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("step failed")
		failing := &mockStep{name: "failing", doFunc: func(context.Context, *model.Run) error {
			return stepErr
		}}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(&mockStep{name: "before"}, failing, after)

		run := newTestRun()
		err := p.Execute(context.Background(), run)
		if !errors.Is(err, stepErr) {
			t.Fatalf("expected step error, got %v", err)
		}
		if !errors.Is(run.Err, stepErr) {
			t.Errorf("expected run error to be recorded, got %v", run.Err)
		}
		if after.callCount != 0 {
			t.Errorf("expected later step not to run, ran %d times", after.callCount)
		}
		if diff := cmp.Diff([]string{"before"}, run.PerformedSteps); diff != "" {
			t.Errorf("PerformedSteps mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("respects cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		run := newTestRun()
		err := p.Execute(ctx, run)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("expected step not to run")
		}
		if !errors.Is(run.Err, context.Canceled) {
			t.Errorf("expected run error context.Canceled, got %v", run.Err)
		}
	})

	t.Run("empty pipeline succeeds", func(t *testing.T) {
		t.Parallel()

		if err := New().Execute(context.Background(), newTestRun()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
