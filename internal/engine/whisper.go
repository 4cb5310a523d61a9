package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/caption-stream/backend/internal/subtitle"
)

// WhisperClient talks to a whisper.cpp-compatible HTTP server
// (whisper-server). The server segments the audio itself and returns
// finished WebVTT cues, so its output bypasses the segmenters entirely.
type WhisperClient struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewWhisperClient creates a client for the whisper.cpp server.
func NewWhisperClient(baseURL string, log zerolog.Logger) *WhisperClient {
	return &WhisperClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Minute, // transcription can be very long
		},
		log: log,
	}
}

func (c *WhisperClient) Name() string {
	return "whisper"
}

// Transcribe sends the audio to whisper-server and parses the returned VTT
// into segments.
func (c *WhisperClient) Transcribe(ctx context.Context, req Request) (*Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer audioFile.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(req.AudioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return nil, fmt.Errorf("copy audio data: %w", err)
	}

	writer.WriteField("response_format", "vtt")
	writer.WriteField("temperature", "0.0")
	if req.Language != "" && req.Language != "auto" {
		writer.WriteField("language", req.Language)
	}
	if req.Task == TaskTranslate {
		writer.WriteField("translate", "true")
	}
	writer.Close()

	url := c.baseURL + "/inference"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	c.log.Debug().Str("url", url).Str("audio", req.AudioPath).Msg("sending inference request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("whisper server request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper server error (status %d): %s", resp.StatusCode, string(body))
	}

	return &Result{
		Segments: subtitle.ParseCues(string(body)),
		Language: req.Language,
	}, nil
}
