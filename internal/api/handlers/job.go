package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caption-stream/backend/internal/job"
)

type JobHandler struct {
	queue *job.Queue
}

func NewJobHandler(queue *job.Queue) *JobHandler {
	return &JobHandler{queue: queue}
}

// ListJobs returns all jobs
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := h.queue.List()
	if jobs == nil {
		jobs = []*job.Job{}
	}
	jsonResponse(w, jobs, http.StatusOK)
}

// GetJob returns a single job by ID
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, "missing job ID", http.StatusBadRequest)
		return
	}

	j, err := h.queue.Get(id)
	if err != nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	jsonResponse(w, j, http.StatusOK)
}

// CancelJob cancels a pending or running job
func (h *JobHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, "missing job ID", http.StatusBadRequest)
		return
	}

	if err := h.queue.Cancel(id); err != nil {
		jsonError(w, "failed to cancel job: "+err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RetryJob re-queues a failed or cancelled job
func (h *JobHandler) RetryJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		jsonError(w, "missing job ID", http.StatusBadRequest)
		return
	}

	if err := h.queue.Retry(id); err != nil {
		jsonError(w, "failed to retry job: "+err.Error(), http.StatusBadRequest)
		return
	}

	jsonResponse(w, map[string]string{"status": "retrying"}, http.StatusOK)
}
