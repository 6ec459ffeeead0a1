package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/pwaudit/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, each receiving the run state accumulated
// by the previous steps.
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation, and the run to fill in.
	// Returns an error if the step cannot produce its output.
	Do(ctx context.Context, run *model.Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
//
// Cancellation is checked before each step. The first failing step stops
// the pipeline: its error is stored in run.Err and returned, and no later
// step runs, so a failed run never carries a report.
func (p *Pipeline) Execute(ctx context.Context, run *model.Run) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"dump", run.DumpPath,
				"reason", ctx.Err(),
			)
			run.Err = ctx.Err()
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"dump", run.DumpPath,
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"dump", run.DumpPath,
				"error", err,
			)
			run.Err = err
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"dump", run.DumpPath,
		)
		run.PerformedSteps = append(run.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
