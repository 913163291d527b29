package pipeline

import (
	"testing"
	"time"
)

func TestNewJobID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewJobID()
		if id == "" {
			t.Fatal("expected non-empty job id")
		}
		if seen[id] {
			t.Fatalf("duplicate job id %q", id)
		}
		seen[id] = true
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusRunning, "running suite"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_VariantProgress(t *testing.T) {
	job := &Job{ID: "progress-test", UpdatedAt: time.Now()}
	job.SetVariantsTotal(7)
	job.VariantCompleted(10)
	job.VariantCompleted(8)
	job.VariantFailed("confidence: api timeout")

	snap := job.Snapshot()
	if snap.Progress.VariantsTotal != 7 {
		t.Errorf("expected 7 total, got %d", snap.Progress.VariantsTotal)
	}
	if snap.Progress.VariantsCompleted != 2 {
		t.Errorf("expected 2 completed, got %d", snap.Progress.VariantsCompleted)
	}
	if snap.Progress.VariantsFailed != 1 {
		t.Errorf("expected 1 failed, got %d", snap.Progress.VariantsFailed)
	}
	if snap.Progress.CheckpointsFound != 18 {
		t.Errorf("expected 18 checkpoints, got %d", snap.Progress.CheckpointsFound)
	}
	if len(snap.Progress.Errors) != 1 || snap.Progress.Errors[0] != "confidence: api timeout" {
		t.Errorf("unexpected errors: %v", snap.Progress.Errors)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupDuringUpdates(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "live", UpdatedAt: time.Now()}
	store.Put(job)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			job.SetStatus(StatusRunning, "running suite")
			job.VariantCompleted(1)
		}
	}()
	for i := 0; i < 200; i++ {
		store.Cleanup()
	}
	<-done

	if store.Get("live") == nil {
		t.Error("active job should survive cleanup")
	}
	if got := job.Snapshot().Progress.VariantsCompleted; got != 200 {
		t.Errorf("expected 200 completed variants, got %d", got)
	}
}
