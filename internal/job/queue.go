package job

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Queue holds jobs in memory and dispatches them to registered handlers.
// A single worker goroutine processes jobs one at a time, which also
// serializes access to the recognition runtimes behind the handlers.
// Jobs do not survive a restart; nothing here touches disk.
type Queue struct {
	mu       sync.RWMutex
	jobs     map[string]*Job
	pending  chan string // job IDs to process
	cancels  map[string]context.CancelFunc
	handlers map[Type]Handler
	ctx      context.Context
	cancel   context.CancelFunc
	log      zerolog.Logger
}

// NewQueue creates and starts a new job queue.
func NewQueue(log zerolog.Logger) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		jobs:     make(map[string]*Job),
		pending:  make(chan string, 100),
		cancels:  make(map[string]context.CancelFunc),
		handlers: make(map[Type]Handler),
		ctx:      ctx,
		cancel:   cancel,
		log:      log,
	}

	go q.worker()

	return q
}

// RegisterHandler registers a handler for a job type.
func (q *Queue) RegisterHandler(jobType Type, handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[jobType] = handler
}

// Enqueue creates a new job and adds it to the queue.
func (q *Queue) Enqueue(jobType Type, audioPath string, params interface{}) (*Job, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}

	j := &Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    StatusPending,
		AudioPath: audioPath,
		Params:    paramsJSON,
		CreatedAt: time.Now(),
	}

	q.mu.Lock()
	q.jobs[j.ID] = j
	q.mu.Unlock()

	select {
	case q.pending <- j.ID:
	default:
		q.fail(j.ID, "queue full")
		return nil, fmt.Errorf("queue full")
	}

	return j.snapshot(), nil
}

// Get retrieves a job by ID.
func (q *Queue) Get(id string) (*Job, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	j, ok := q.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job not found: %s", id)
	}
	return j.snapshot(), nil
}

// List returns all jobs ordered by creation time (newest first).
func (q *Queue) List() []*Job {
	q.mu.RLock()
	defer q.mu.RUnlock()

	jobs := make([]*Job, 0, len(q.jobs))
	for _, j := range q.jobs {
		jobs = append(jobs, j.snapshot())
	}
	sort.Slice(jobs, func(i, k int) bool {
		return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
	})
	return jobs
}

// Cancel cancels a pending or running job.
func (q *Queue) Cancel(id string) error {
	q.mu.Lock()
	j, ok := q.jobs[id]
	if !ok {
		q.mu.Unlock()
		return fmt.Errorf("job not found: %s", id)
	}
	if cancelFn, exists := q.cancels[id]; exists {
		cancelFn()
		delete(q.cancels, id)
	}
	if j.Status == StatusPending || j.Status == StatusRunning {
		now := time.Now()
		j.Status = StatusCancelled
		j.CompletedAt = &now
	}
	q.mu.Unlock()
	return nil
}

// Retry re-queues a failed or cancelled job.
func (q *Queue) Retry(id string) error {
	q.mu.Lock()
	j, ok := q.jobs[id]
	if !ok {
		q.mu.Unlock()
		return fmt.Errorf("job not found: %s", id)
	}
	if j.Status != StatusFailed && j.Status != StatusCancelled {
		q.mu.Unlock()
		return fmt.Errorf("job %s is %s, only failed or cancelled jobs can be retried", id, j.Status)
	}
	j.Status = StatusPending
	j.Error = ""
	j.Result = nil
	j.StartedAt = nil
	j.CompletedAt = nil
	q.mu.Unlock()

	select {
	case q.pending <- id:
		return nil
	default:
		return fmt.Errorf("queue full")
	}
}

// SetResult stores the result payload for a running job. Handlers call this
// before returning.
func (q *Queue) SetResult(id string, result interface{}) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	q.mu.Lock()
	if j, ok := q.jobs[id]; ok {
		j.Result = resultJSON
	}
	q.mu.Unlock()
	return nil
}

// Stop shuts down the queue.
func (q *Queue) Stop() {
	q.cancel()
}

// worker processes jobs from the pending channel one at a time.
func (q *Queue) worker() {
	for {
		select {
		case <-q.ctx.Done():
			return
		case jobID := <-q.pending:
			q.processJob(jobID)
		}
	}
}

// processJob runs a single job.
func (q *Queue) processJob(jobID string) {
	q.mu.Lock()
	j, ok := q.jobs[jobID]
	if !ok || j.Status != StatusPending {
		q.mu.Unlock()
		return
	}
	handler, hasHandler := q.handlers[j.Type]
	if !hasHandler {
		q.mu.Unlock()
		q.log.Error().Str("job", jobID).Str("type", string(j.Type)).Msg("no handler for job type")
		q.fail(jobID, fmt.Sprintf("no handler for job type: %s", j.Type))
		return
	}

	now := time.Now()
	j.Status = StatusRunning
	j.StartedAt = &now

	ctx, cancelFn := context.WithCancel(q.ctx)
	q.cancels[jobID] = cancelFn
	run := j.snapshot()
	q.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- handler(ctx, run)
	}()

	select {
	case <-ctx.Done():
		q.log.Info().Str("job", jobID).Msg("job cancelled")
	case err := <-done:
		if err != nil {
			q.fail(jobID, err.Error())
		} else {
			q.complete(jobID)
		}
	}

	q.mu.Lock()
	delete(q.cancels, jobID)
	q.mu.Unlock()
	cancelFn()
}

func (q *Queue) complete(id string) {
	q.mu.Lock()
	if j, ok := q.jobs[id]; ok && j.Status == StatusRunning {
		now := time.Now()
		j.Status = StatusCompleted
		j.CompletedAt = &now
	}
	q.mu.Unlock()
	q.log.Info().Str("job", id).Msg("job completed")
}

func (q *Queue) fail(id string, errMsg string) {
	q.mu.Lock()
	if j, ok := q.jobs[id]; ok && j.Status != StatusCancelled {
		now := time.Now()
		j.Status = StatusFailed
		j.Error = errMsg
		j.CompletedAt = &now
	}
	q.mu.Unlock()
	q.log.Error().Str("job", id).Str("error", errMsg).Msg("job failed")
}

// snapshot copies the job so callers never share the queue's mutable state.
func (j *Job) snapshot() *Job {
	c := *j
	if j.StartedAt != nil {
		t := *j.StartedAt
		c.StartedAt = &t
	}
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
