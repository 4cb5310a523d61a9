package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/caption-stream/backend/internal/engine"
	"github.com/caption-stream/backend/internal/job"
)

type TranscribeHandler struct {
	queue   *job.Queue
	service *engine.Service
}

func NewTranscribeHandler(queue *job.Queue, service *engine.Service) *TranscribeHandler {
	return &TranscribeHandler{queue: queue, service: service}
}

type transcribeRequest struct {
	AudioPath string `json:"audio_path"`
	Engine    string `json:"engine"`
	Format    string `json:"format"`
	Language  string `json:"language,omitempty"`
	Task      string `json:"task,omitempty"`
}

// Transcribe enqueues a caption generation job. The audio path must be
// readable by the configured recognition runtime; this service never decodes
// audio itself.
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var req transcribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.AudioPath) == "" {
		jsonError(w, "audio_path is required", http.StatusBadRequest)
		return
	}
	if !h.knownEngine(req.Engine) {
		jsonError(w, "unknown engine: "+req.Engine, http.StatusBadRequest)
		return
	}
	if req.Task == "" {
		req.Task = string(engine.TaskTranscribe)
	}
	if req.Task != string(engine.TaskTranscribe) && req.Task != string(engine.TaskTranslate) {
		jsonError(w, "task must be transcribe or translate", http.StatusBadRequest)
		return
	}

	j, err := h.queue.Enqueue(job.TypeTranscribe, req.AudioPath, job.TranscribeParams{
		Engine:   req.Engine,
		Format:   req.Format,
		Language: req.Language,
		Task:     req.Task,
	})
	if err != nil {
		jsonError(w, "failed to enqueue job: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}

// AvailableEngine is the dropdown-friendly format for frontends
type AvailableEngine struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ListEngines returns registered engines as {value, label} for dropdowns
func (h *TranscribeHandler) ListEngines(w http.ResponseWriter, r *http.Request) {
	names := h.service.Names()
	engines := make([]AvailableEngine, 0, len(names))
	for _, name := range names {
		engines = append(engines, AvailableEngine{Value: name, Label: name})
	}
	jsonResponse(w, engines, http.StatusOK)
}

func (h *TranscribeHandler) knownEngine(name string) bool {
	for _, n := range h.service.Names() {
		if n == name {
			return true
		}
	}
	return false
}
