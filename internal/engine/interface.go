package engine

import (
	"context"

	"github.com/caption-stream/backend/internal/transcript"
)

// Task selects what the recognition runtime should do with the audio.
type Task string

const (
	TaskTranscribe Task = "transcribe"
	TaskTranslate  Task = "translate"
)

// Request is the input for one recognition call. AudioPath is a path the
// engine can read; decoding and resampling happen on the runtime side.
type Request struct {
	AudioPath string
	Language  string // "auto", "zh", "en", "ja", ...
	Task      Task
}

// Result is an engine's normalized output. Exactly one of the two shapes is
// set: Transcript for runtimes that return text plus per-token time ranges
// (which then goes through the segmenters), or Segments for runtimes that
// already produced finished cues (which go straight to the serializer).
type Result struct {
	Transcript *transcript.RawTranscript
	Segments   []transcript.Segment
	Language   string
	// UseSmartSegmentation carries the engine's configured preference for
	// the timestamp-aware path. Only meaningful when Transcript is set.
	UseSmartSegmentation bool
}

// Engine is the common interface over recognition runtimes.
type Engine interface {
	// Name returns the engine name used in requests and listings.
	Name() string
	// Transcribe runs recognition on the audio and normalizes the output.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}
