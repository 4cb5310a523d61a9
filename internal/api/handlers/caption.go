package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/caption-stream/backend/internal/subtitle"
	"github.com/caption-stream/backend/internal/transcript"
)

// contentTypes maps caption formats to their response content type.
var contentTypes = map[subtitle.Format]string{
	subtitle.FormatJSON: "application/json; charset=utf-8",
	subtitle.FormatSRT:  "text/plain; charset=utf-8",
	subtitle.FormatVTT:  "text/vtt; charset=utf-8",
	subtitle.FormatTXT:  "text/plain; charset=utf-8",
}

type CaptionHandler struct {
	segmenter *transcript.Segmenter
	log       zerolog.Logger
}

func NewCaptionHandler(segmenter *transcript.Segmenter, log zerolog.Logger) *CaptionHandler {
	return &CaptionHandler{segmenter: segmenter, log: log}
}

type renderRequest struct {
	Segments []transcript.Segment `json:"segments"`
	Format   string               `json:"format"`
}

// Render serializes caller-provided segments. This is the path for engines
// that already segmented their output and only need formatting.
func (h *CaptionHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	writeCaptions(w, req.Segments, subtitle.Format(req.Format))
}

type segmentRequest struct {
	Text       string                 `json:"text"`
	TokenTimes []transcript.TimeRange `json:"token_times,omitempty"`
	Duration   float64                `json:"duration,omitempty"`
	Format     string                 `json:"format"`
	// UseSmartSegmentation defaults to true; set false to force the
	// proportional splitter even when token times are present.
	UseSmartSegmentation *bool `json:"use_smart_segmentation,omitempty"`
}

// Segment runs the segmentation pipeline on a raw transcript and serializes
// the result.
func (h *CaptionHandler) Segment(w http.ResponseWriter, r *http.Request) {
	var req segmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	useSmart := req.UseSmartSegmentation == nil || *req.UseSmartSegmentation

	var segments []transcript.Segment
	if useSmart {
		segments = h.segmenter.Segment(transcript.RawTranscript{
			Text:       req.Text,
			TokenTimes: req.TokenTimes,
			Duration:   req.Duration,
		})
	} else {
		segments = h.segmenter.Proportional(req.Text, req.Duration)
	}

	writeCaptions(w, segments, subtitle.Format(req.Format))
}

// writeCaptions renders segments and writes them with the format's content
// type. Contract violations are the caller's bug and come back as 400s
// naming the offending field.
func writeCaptions(w http.ResponseWriter, segments []transcript.Segment, format subtitle.Format) {
	out, err := subtitle.Render(segments, format)
	if err != nil {
		var contractErr *subtitle.ContractError
		if errors.As(err, &contractErr) {
			jsonError(w, contractErr.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "failed to render captions", http.StatusInternalServerError)
		return
	}

	contentType, ok := contentTypes[format]
	if !ok {
		contentType = contentTypes[subtitle.FormatTXT]
	}
	w.Header().Set("Content-Type", contentType)
	w.Write([]byte(out))
}
