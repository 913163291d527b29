package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of a suite run.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusPartial   JobStatus = "partial"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of one perturbation-suite run: every variant in the
// suite executed against one prompt, one Result file per variant.
type Job struct {
	mu sync.Mutex

	ID         string `json:"job_id"`
	RunnerName string `json:"runner"`
	Prompt     string `json:"prompt"`
	OutputDir  string `json:"output_dir"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	errors []string
}

// Progress tracks per-variant completion within a suite run.
type Progress struct {
	VariantsTotal     int      `json:"variants_total"`
	VariantsCompleted int      `json:"variants_completed"`
	VariantsFailed    int      `json:"variants_failed"`
	CheckpointsFound  int      `json:"checkpoints_found"`
	Errors            []string `json:"errors"`
}

// NewJobID returns a fresh unique job identifier.
func NewJobID() string {
	return uuid.NewString()
}

// lastUpdated reads UpdatedAt under the job mutex; workers mutate the job
// while the store's cleanup pass scans it.
func (j *Job) lastUpdated() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// SetVariantsTotal records the suite size.
func (j *Job) SetVariantsTotal(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.VariantsTotal = n
	j.UpdatedAt = time.Now()
}

// VariantCompleted records one finished variant and its checkpoint count.
func (j *Job) VariantCompleted(checkpoints int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.VariantsCompleted++
	j.Progress.CheckpointsFound += checkpoints
	j.UpdatedAt = time.Now()
}

// VariantFailed records one failed variant with its error.
func (j *Job) VariantFailed(errMsg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.VariantsFailed++
	j.errors = append(j.errors, errMsg)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID         string    `json:"job_id"`
	RunnerName string    `json:"runner"`
	OutputDir  string    `json:"output_dir"`
	Status     JobStatus `json:"status"`
	Phase      string    `json:"phase"`
	Progress   Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:         j.ID,
		RunnerName: j.RunnerName,
		OutputDir:  j.OutputDir,
		Status:     j.Status,
		Phase:      j.Phase,
		Progress: Progress{
			VariantsTotal:     j.Progress.VariantsTotal,
			VariantsCompleted: j.Progress.VariantsCompleted,
			VariantsFailed:    j.Progress.VariantsFailed,
			CheckpointsFound:  j.Progress.CheckpointsFound,
			Errors:            errs,
		},
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.lastUpdated()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
