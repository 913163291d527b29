package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/reasonlab/epistress/internal/extract"
	"github.com/reasonlab/epistress/internal/metrics"
	"github.com/reasonlab/epistress/internal/runner"
	"github.com/reasonlab/epistress/internal/schema"
	"github.com/reasonlab/epistress/internal/suite"
)

// Worker executes a single suite-run job: every perturbation in the suite
// against the job's prompt, one Result file per variant.
type Worker struct {
	run   runner.Runner
	suite *suite.Suite
	log   *slog.Logger

	maxConcurrentVariants int
}

func NewWorker(run runner.Runner, s *suite.Suite, log *slog.Logger, maxVariants int) *Worker {
	if maxVariants <= 0 {
		maxVariants = 1
	}
	return &Worker{
		run:                   run,
		suite:                 s,
		log:                   log,
		maxConcurrentVariants: maxVariants,
	}
}

// variantResult carries the outcome of one perturbation run back to the
// collector.
type variantResult struct {
	key         string
	checkpoints int
	err         error
}

// Process runs the full suite for a job. Variants are independent, so they
// run with bounded concurrency; the ordering of Result files on disk is
// fixed by variant key, not completion order.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "runner", w.run.Name())

	job.SetStatus(StatusRunning, "running suite")
	job.SetVariantsTotal(len(w.suite.Perturbations))

	results := make(chan variantResult, len(w.suite.Perturbations))
	sem := make(chan struct{}, w.maxConcurrentVariants)

	for _, p := range w.suite.Perturbations {
		sem <- struct{}{}
		go func(p suite.Perturbation) {
			defer func() { <-sem }()
			n, err := w.runVariant(ctx, job, p)
			results <- variantResult{key: p.Key, checkpoints: n, err: err}
		}(p)
	}

	hadErrors := false
	completed := 0
	for range w.suite.Perturbations {
		r := <-results
		if r.err != nil {
			log.Error("variant failed", "variant", r.key, "error", r.err)
			job.VariantFailed(fmt.Sprintf("%s: %s", r.key, r.err))
			hadErrors = true
			continue
		}
		log.Info("variant complete", "variant", r.key, "checkpoints", r.checkpoints)
		job.VariantCompleted(r.checkpoints)
		completed++
	}

	switch {
	case hadErrors && completed > 0:
		job.SetStatus(StatusPartial, "done")
	case hadErrors:
		job.SetStatus(StatusFailed, "done")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("suite run finished", "completed", completed, "failed", len(w.suite.Perturbations)-completed)
}

// runVariant produces and persists one Result, retrying transient runner
// failures with backoff.
func (w *Worker) runVariant(ctx context.Context, job *Job, p suite.Perturbation) (int, error) {
	cfg := runner.VariantConfig{
		SystemSuffix: p.SystemSuffix,
		MaxTokens:    p.MaxTokens,
	}

	var text string
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		text, lastErr = w.run.Run(ctx, job.Prompt, p.Key, cfg)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		w.log.Warn("retryable runner error", "variant", p.Key, "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if lastErr != nil {
		return 0, lastErr
	}

	checkpoints := extract.ParseCheckpoints(text)
	result := &schema.Result{
		Variant:     p.Key,
		RawText:     text,
		Checkpoints: checkpoints,
		Metrics:     metrics.Compute(text, checkpoints),
	}

	outPath := filepath.Join(job.OutputDir, p.Key+".json")
	if err := schema.SaveResult(result, outPath); err != nil {
		return 0, fmt.Errorf("save %s: %w", outPath, err)
	}
	return len(checkpoints), nil
}
