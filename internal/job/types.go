package job

import (
	"context"
	"encoding/json"
	"time"
)

// Type represents the kind of job
type Type string

const (
	TypeTranscribe Type = "transcribe"
)

// Status represents the current state of a job
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Job represents a queued caption generation task
type Job struct {
	ID          string          `json:"id"`
	Type        Type            `json:"type"`
	Status      Status          `json:"status"`
	AudioPath   string          `json:"audio_path"`
	Params      json.RawMessage `json:"params"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// TranscribeParams are parameters for a transcription job
type TranscribeParams struct {
	Engine   string `json:"engine"`             // "funasr", "whisper"
	Format   string `json:"format"`             // "json", "srt", "vtt", "txt"
	Language string `json:"language,omitempty"` // "auto", "zh", "en", "ja", etc.
	Task     string `json:"task,omitempty"`     // "transcribe" or "translate"
}

// TranscribeResult is the output of a successful transcription job. The
// rendered captions are returned inline; nothing is written to disk.
type TranscribeResult struct {
	Format   string `json:"format"`
	Captions string `json:"captions"`
	Language string `json:"language,omitempty"`
}

// Handler processes a job. Implementations are provided by the engine service.
type Handler func(ctx context.Context, job *Job) error
