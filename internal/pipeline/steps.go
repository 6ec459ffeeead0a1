package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/pwaudit/internal/aggregate"
	"github.com/nao1215/pwaudit/internal/corpus"
	"github.com/nao1215/pwaudit/internal/model"
	"github.com/nao1215/pwaudit/internal/target"
)

// ErrMissingInput is returned by a step whose input was not produced by an
// earlier step.
var ErrMissingInput = errors.New("step input missing")

// Step names, in default execution order.
const (
	StepLoadCorpus     = "load_corpus"
	StepLoadTargets    = "load_targets"
	StepCrossReference = "cross_reference"
	StepAnalyze        = "analyze"
	StepAggregate      = "aggregate"
)

// LoadCorpusStep reads the credential dump into run.Corpus.
type LoadCorpusStep struct {
	logger *slog.Logger
}

// NewLoadCorpusStep creates the corpus loading step.
func NewLoadCorpusStep(logger *slog.Logger) *LoadCorpusStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadCorpusStep{logger: logger}
}

// Name returns the step name.
func (s *LoadCorpusStep) Name() string {
	return StepLoadCorpus
}

// Do executes the corpus loading step.
func (s *LoadCorpusStep) Do(_ context.Context, run *model.Run) error {
	c, err := corpus.LoadFile(run.DumpPath)
	if err != nil {
		return err
	}
	run.Corpus = c

	s.logger.Debug("corpus loaded",
		"dump", run.DumpPath,
		"records", c.TotalCount(),
	)
	return nil
}

// LoadTargetsStep reads the high value target list into run.Targets.
// A run without a target list gets an empty set.
type LoadTargetsStep struct {
	logger *slog.Logger
}

// NewLoadTargetsStep creates the target list loading step.
func NewLoadTargetsStep(logger *slog.Logger) *LoadTargetsStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadTargetsStep{logger: logger}
}

// Name returns the step name.
func (s *LoadTargetsStep) Name() string {
	return StepLoadTargets
}

// Do executes the target list loading step.
func (s *LoadTargetsStep) Do(_ context.Context, run *model.Run) error {
	if run.TargetsPath == "" {
		run.Targets = model.NewTargetSet()
		s.logger.Debug("no high value target list configured", "dump", run.DumpPath)
		return nil
	}

	set, err := target.LoadFile(run.TargetsPath)
	if err != nil {
		return err
	}
	run.Targets = set

	s.logger.Debug("high value targets loaded",
		"targets_path", run.TargetsPath,
		"count", set.Len(),
	)
	return nil
}

// CrossReferenceStep matches corpus usernames against the target set.
type CrossReferenceStep struct{}

// NewCrossReferenceStep creates the cross-reference step.
func NewCrossReferenceStep() *CrossReferenceStep {
	return &CrossReferenceStep{}
}

// Name returns the step name.
func (s *CrossReferenceStep) Name() string {
	return StepCrossReference
}

// Do executes the cross-reference step.
func (s *CrossReferenceStep) Do(_ context.Context, run *model.Run) error {
	if run.Corpus == nil {
		return fmt.Errorf("%w: %s needs a corpus", ErrMissingInput, s.Name())
	}
	run.Compromised = target.CrossReference(run.Corpus, run.Targets)
	return nil
}

// AnalyzeStep computes the per-password metrics and the corpus-wide
// censuses.
type AnalyzeStep struct{}

// NewAnalyzeStep creates the analysis step.
func NewAnalyzeStep() *AnalyzeStep {
	return &AnalyzeStep{}
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return StepAnalyze
}

// Do executes the analysis step.
func (s *AnalyzeStep) Do(_ context.Context, run *model.Run) error {
	if run.Corpus == nil {
		return fmt.Errorf("%w: %s needs a corpus", ErrMissingInput, s.Name())
	}

	in := aggregate.Analyze(run.Corpus, run.Compromised)
	run.Metrics = in.Metrics
	run.SpecialCharacter = in.SpecialCharacter
	run.Calendar = in.Calendar
	return nil
}

// AggregateStep reduces the analysis output into run.Report.
type AggregateStep struct {
	topN int
	now  func() time.Time
}

// AggregateStepOption configures an AggregateStep.
type AggregateStepOption func(*AggregateStep)

// WithAggregateTopN sets the size of the top rankings.
func WithAggregateTopN(n int) AggregateStepOption {
	return func(s *AggregateStep) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithAggregateClock sets the clock used to timestamp the report.
func WithAggregateClock(now func() time.Time) AggregateStepOption {
	return func(s *AggregateStep) {
		if now != nil {
			s.now = now
		}
	}
}

// NewAggregateStep creates the aggregation step.
func NewAggregateStep(opts ...AggregateStepOption) *AggregateStep {
	s := &AggregateStep{
		topN: aggregate.DefaultTopN,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return StepAggregate
}

// Do executes the aggregation step.
func (s *AggregateStep) Do(_ context.Context, run *model.Run) error {
	if run.Corpus == nil {
		return fmt.Errorf("%w: %s needs a corpus", ErrMissingInput, s.Name())
	}

	report, err := aggregate.Aggregate(
		aggregate.Input{
			Corpus:           run.Corpus,
			Compromised:      run.Compromised,
			Metrics:          run.Metrics,
			SpecialCharacter: run.SpecialCharacter,
			Calendar:         run.Calendar,
		},
		aggregate.WithTopN(s.topN),
		aggregate.WithClock(s.now),
		aggregate.WithRunID(run.ID),
		aggregate.WithSource(run.DumpPath),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", run.DumpPath, err)
	}
	run.Report = report
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// TopN is the size of the top rankings in the report.
	TopN int

	// Now timestamps the report.
	Now func() time.Time
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineTopN sets the size of the top rankings.
func WithPipelineTopN(n int) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.TopN = n
	}
}

// WithPipelineClock sets the clock used to timestamp reports.
func WithPipelineClock(now func() time.Time) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Now = now
	}
}

// DefaultPipeline creates a pipeline with every analysis step in order:
// load corpus, load targets, cross-reference, analyze, aggregate.
//
// The first parameter accepts pipeline options (WithLogger).
// The rest accept step configuration (WithPipelineTopN, ...).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		TopN: aggregate.DefaultTopN,
		Now:  time.Now,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewLoadCorpusStep(p.logger),
		NewLoadTargetsStep(p.logger),
		NewCrossReferenceStep(),
		NewAnalyzeStep(),
		NewAggregateStep(
			WithAggregateTopN(cfg.TopN),
			WithAggregateClock(cfg.Now),
		),
	)

	return p
}
