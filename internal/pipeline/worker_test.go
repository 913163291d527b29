package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reasonlab/epistress/internal/runner"
	"github.com/reasonlab/epistress/internal/schema"
	"github.com/reasonlab/epistress/internal/suite"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSuite() *suite.Suite {
	return &suite.Suite{
		Version: "test",
		Perturbations: []suite.Perturbation{
			{Key: "baseline", Index: 0},
			{Key: "confidence", Index: 1, SystemSuffix: "be confident"},
		},
	}
}

func TestWorker_ProcessWithLocalRunner(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	baseline := "[ASSUME: x]\n\n[BRANCH: a vs b]\n\n[SELECT: a | because: faster]\n\n[CONCLUDE: done]"
	confidence := "[ASSUME: x]\n\n[SELECT: a | because: obviously]\n\n[CONCLUDE: done]"
	if err := os.WriteFile(filepath.Join(src, "baseline.txt"), []byte(baseline), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "confidence.txt"), []byte(confidence), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	w := NewWorker(runner.NewLocalRunner(src), testSuite(), discardLogger(), 2)
	job := &Job{
		ID:        NewJobID(),
		Prompt:    "design a consensus protocol",
		OutputDir: out,
		Status:    StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.VariantsCompleted != 2 {
		t.Errorf("expected 2 variants completed, got %d", snap.Progress.VariantsCompleted)
	}
	if snap.Progress.CheckpointsFound != 7 {
		t.Errorf("expected 7 checkpoints across variants, got %d", snap.Progress.CheckpointsFound)
	}

	// Each variant persisted a loadable, versioned Result.
	for _, key := range []string{"baseline", "confidence"} {
		r, err := schema.LoadResult(filepath.Join(out, key+".json"))
		if err != nil {
			t.Fatalf("load %s result: %v", key, err)
		}
		if r.Variant != key {
			t.Errorf("expected variant %q, got %q", key, r.Variant)
		}
		if r.Metrics.TotalCheckpoints != len(r.Checkpoints) {
			t.Errorf("%s: metrics/checkpoints mismatch", key)
		}
	}
}

func TestWorker_PartialOnMissingTranscript(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	// Only the baseline transcript exists; the confidence variant fails.
	if err := os.WriteFile(filepath.Join(src, "baseline.txt"), []byte("[CONCLUDE: done]"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	w := NewWorker(runner.NewLocalRunner(src), testSuite(), discardLogger(), 1)
	job := &Job{ID: NewJobID(), Prompt: "p", OutputDir: out, CreatedAt: time.Now(), UpdatedAt: time.Now()}

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusPartial {
		t.Fatalf("expected partial, got %s", snap.Status)
	}
	if snap.Progress.VariantsFailed != 1 {
		t.Errorf("expected 1 failed variant, got %d", snap.Progress.VariantsFailed)
	}
	if len(snap.Progress.Errors) != 1 {
		t.Errorf("expected 1 recorded error, got %v", snap.Progress.Errors)
	}
}

func TestWorker_FailedWhenNothingCompletes(t *testing.T) {
	w := NewWorker(runner.NewLocalRunner(t.TempDir()), testSuite(), discardLogger(), 1)
	job := &Job{ID: NewJobID(), Prompt: "p", OutputDir: t.TempDir(), CreatedAt: time.Now(), UpdatedAt: time.Now()}

	w.Process(context.Background(), job)

	if got := job.Snapshot().Status; got != StatusFailed {
		t.Fatalf("expected failed, got %s", got)
	}
}
