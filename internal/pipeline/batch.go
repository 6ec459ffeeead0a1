package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/pwaudit/internal/model"
)

// DefaultConcurrency is the number of dumps analyzed at once unless
// WithConcurrency says otherwise.
const DefaultConcurrency = 4

// BatchProcessor analyzes several credential dumps, each with its own
// pipeline. It uses errgroup to bound the number of pipelines in flight.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each dump.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent pipelines.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// newID generates run identifiers.
	newID func() string

	// now timestamps run starts.
	now func() time.Time
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent pipelines.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithIDGenerator sets the function generating run identifiers.
// The default generates random UUIDs.
func WithIDGenerator(newID func() string) BatchOption {
	return func(b *BatchProcessor) {
		if newID != nil {
			b.newID = newID
		}
	}
}

// WithBatchClock sets the clock used for run start times.
func WithBatchClock(now func() time.Time) BatchOption {
	return func(b *BatchProcessor) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called once per dump so that no pipeline
// state is shared between dumps.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
		newID:           uuid.NewString,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes every dump against the target list at targetsPath.
//
// Runs are returned in the order of dumps, failed ones included: a failed
// run carries its error in Run.Err and no report. A failing dump does not
// stop the others. The returned error is non-nil only when ctx is
// cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, dumps []string, targetsPath string) ([]*model.Run, error) {
	bp.logger.Debug("starting batch processing",
		"total_dumps", len(dumps),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Each goroutine writes only its own index.
	runs := make([]*model.Run, len(dumps))
	for i, dump := range dumps {
		runs[i] = model.NewRun(bp.newID(), dump, targetsPath, bp.now())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, run := range runs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				run.Err = gctx.Err()
				return gctx.Err()
			default:
			}

			bp.logger.Debug("analyzing dump",
				"dump", run.DumpPath,
				"run_id", run.ID,
				"index", i+1,
				"total", len(runs),
			)

			if err := bp.pipelineFactory().Execute(gctx, run); err != nil {
				bp.logger.Warn("analysis failed",
					"dump", run.DumpPath,
					"error", err,
				)
				// Other dumps keep going; the error stays on the run.
				return nil
			}

			bp.logger.Debug("analysis completed", "dump", run.DumpPath)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	bp.logger.Debug("batch processing complete",
		"total_dumps", len(dumps),
		"elapsed", time.Since(startTime),
	)

	return runs, err
}
