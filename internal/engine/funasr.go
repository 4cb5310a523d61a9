package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/caption-stream/backend/internal/transcript"
)

// FunASROptions enumerates the runtime options the FunASR server accepts.
type FunASROptions struct {
	// BatchSizeSeconds is the dynamic batching window passed to the runtime.
	BatchSizeSeconds int
	// UseSmartSegmentation gates the timestamp-aware segmentation path for
	// this engine's output. Off means proportional splitting only.
	UseSmartSegmentation bool
}

// DefaultFunASROptions matches the runtime defaults.
func DefaultFunASROptions() FunASROptions {
	return FunASROptions{BatchSizeSeconds: 300, UseSmartSegmentation: true}
}

// FunASRClient talks to a FunASR runtime server. The runtime returns the
// transcript as one string plus a millisecond time range per token, so its
// output feeds the segmentation pipeline rather than the serializer.
type FunASRClient struct {
	baseURL    string
	options    FunASROptions
	httpClient *http.Client
	log        zerolog.Logger
}

// funasrResponse is the runtime's recognition payload. Timestamp entries
// arrive as arrays of arbitrary arity; they decode straight into TimeRange
// so malformed entries survive to the segmenter, which knows how to degrade.
type funasrResponse struct {
	Text      string                 `json:"text"`
	Timestamp []transcript.TimeRange `json:"timestamp"`
	Duration  float64                `json:"duration"`
}

// NewFunASRClient creates a client for the FunASR runtime server.
func NewFunASRClient(baseURL string, options FunASROptions, log zerolog.Logger) *FunASRClient {
	if options.BatchSizeSeconds <= 0 {
		options.BatchSizeSeconds = DefaultFunASROptions().BatchSizeSeconds
	}
	return &FunASRClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		options: options,
		httpClient: &http.Client{
			Timeout: 30 * time.Minute, // recognition of long audio is slow
		},
		log: log,
	}
}

func (c *FunASRClient) Name() string {
	return "funasr"
}

// Options returns the engine's configured runtime options.
func (c *FunASRClient) Options() FunASROptions {
	return c.options
}

// Transcribe uploads the audio and normalizes the runtime's response into a
// RawTranscript.
func (c *FunASRClient) Transcribe(ctx context.Context, req Request) (*Result, error) {
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

	writer.WriteField("batch_size_s", strconv.Itoa(c.options.BatchSizeSeconds))
	if req.Language != "" && req.Language != "auto" {
		writer.WriteField("language", req.Language)
	}
	writer.Close()

	url := c.baseURL + "/recognize"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	c.log.Debug().Str("url", url).Str("audio", req.AudioPath).Msg("sending recognition request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("funasr server request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("funasr server error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload funasrResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode funasr response: %w", err)
	}

	return &Result{
		Transcript: &transcript.RawTranscript{
			Text:       payload.Text,
			TokenTimes: payload.Timestamp,
			Duration:   payload.Duration,
		},
		Language:             req.Language,
		UseSmartSegmentation: c.options.UseSmartSegmentation,
	}, nil
}
