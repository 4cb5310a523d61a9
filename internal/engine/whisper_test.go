package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestWhisperClient_Transcribe(t *testing.T) {
	var gotFormat, gotTranslate string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inference" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotFormat = r.FormValue("response_format")
		gotTranslate = r.FormValue("translate")

		w.Write([]byte("WEBVTT\n\n" +
			"00:00:00.000 --> 00:00:02.000\n" +
			"hello there\n\n" +
			"00:00:02.000 --> 00:00:04.500\n" +
			"general audience\n"))
	}))
	defer server.Close()

	client := NewWhisperClient(server.URL, zerolog.Nop())
	result, err := client.Transcribe(context.Background(), Request{
		AudioPath: writeTestAudio(t),
		Language:  "en",
		Task:      TaskTranscribe,
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if gotFormat != "vtt" {
		t.Errorf("expected response_format=vtt, got %q", gotFormat)
	}
	if gotTranslate != "" {
		t.Errorf("translate must not be set for a transcribe task, got %q", gotTranslate)
	}

	if result.Transcript != nil {
		t.Error("whisper returns finished cues, not a raw transcript")
	}
	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(result.Segments))
	}
	if result.Segments[0].Text != "hello there" || result.Segments[1].End != 4.5 {
		t.Errorf("unexpected cues: %+v", result.Segments)
	}
}

func TestWhisperClient_TranslateTask(t *testing.T) {
	var gotTranslate string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		gotTranslate = r.FormValue("translate")
		w.Write([]byte("WEBVTT\n\n"))
	}))
	defer server.Close()

	client := NewWhisperClient(server.URL, zerolog.Nop())
	if _, err := client.Transcribe(context.Background(), Request{
		AudioPath: writeTestAudio(t),
		Task:      TaskTranslate,
	}); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if gotTranslate != "true" {
		t.Errorf("expected translate=true, got %q", gotTranslate)
	}
}

func TestWhisperClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no model", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewWhisperClient(server.URL, zerolog.Nop())
	if _, err := client.Transcribe(context.Background(), Request{AudioPath: writeTestAudio(t)}); err == nil {
		t.Fatal("expected an error for a 503 response")
	}
}
