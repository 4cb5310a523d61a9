package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/caption-stream/backend/internal/job"
	"github.com/caption-stream/backend/internal/subtitle"
	"github.com/caption-stream/backend/internal/transcript"
)

// GenerateRequest is one caption generation run: which engine, which audio,
// and how to render the result.
type GenerateRequest struct {
	Engine    string
	AudioPath string
	Language  string
	Task      Task
	Format    subtitle.Format
}

// Service manages recognition engines and runs the full pipeline:
// engine -> segmentation -> serialization.
type Service struct {
	engines   map[string]Engine
	segmenter *transcript.Segmenter
	log       zerolog.Logger
}

// NewService creates an engine service around a segmentation pipeline.
func NewService(segmenter *transcript.Segmenter, log zerolog.Logger) *Service {
	return &Service{
		engines:   make(map[string]Engine),
		segmenter: segmenter,
		log:       log,
	}
}

// Register adds an engine under its own name.
func (s *Service) Register(e Engine) {
	s.engines[e.Name()] = e
	s.log.Info().Str("engine", e.Name()).Msg("registered recognition engine")
}

// Names returns the registered engine names, sorted for stable listings.
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.engines))
	for name := range s.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate runs recognition on the requested engine and renders the caption
// output. Engines that return finished cues skip segmentation; engines that
// return token-level transcripts go through the smart/proportional pipeline.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	eng, ok := s.engines[req.Engine]
	if !ok {
		return "", fmt.Errorf("unknown engine: %s (available: %v)", req.Engine, s.Names())
	}

	result, err := eng.Transcribe(ctx, Request{
		AudioPath: req.AudioPath,
		Language:  req.Language,
		Task:      req.Task,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	segments := result.Segments
	if segments == nil && result.Transcript != nil {
		if result.UseSmartSegmentation {
			segments = s.segmenter.Segment(*result.Transcript)
		} else {
			segments = s.segmenter.Proportional(result.Transcript.Text, result.Transcript.Duration)
		}
	}

	out, err := subtitle.Render(segments, req.Format)
	if err != nil {
		return "", fmt.Errorf("render captions: %w", err)
	}
	return out, nil
}

// HandleJob adapts Generate to the job queue: it parses transcription
// params, runs the pipeline, and stores the rendered captions as the job
// result.
func (s *Service) HandleJob(queue *job.Queue) job.Handler {
	return func(ctx context.Context, j *job.Job) error {
		var params job.TranscribeParams
		if err := json.Unmarshal(j.Params, &params); err != nil {
			return fmt.Errorf("unmarshal params: %w", err)
		}

		s.log.Info().Str("job", j.ID).Str("engine", params.Engine).
			Str("audio", j.AudioPath).Str("format", params.Format).
			Msg("starting transcription")

		out, err := s.Generate(ctx, GenerateRequest{
			Engine:    params.Engine,
			AudioPath: j.AudioPath,
			Language:  params.Language,
			Task:      Task(params.Task),
			Format:    subtitle.Format(params.Format),
		})
		if err != nil {
			return err
		}

		return queue.SetResult(j.ID, job.TranscribeResult{
			Format:   params.Format,
			Captions: out,
			Language: params.Language,
		})
	}
}
