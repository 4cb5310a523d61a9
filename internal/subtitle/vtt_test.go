package subtitle

import (
	"testing"

	"github.com/caption-stream/backend/internal/transcript"
)

func TestParseCues_VTT(t *testing.T) {
	content := "WEBVTT\n\n" +
		"00:00:00.000 --> 00:00:02.500\n" +
		"first cue\n\n" +
		"00:00:02.500 --> 00:00:05.000\n" +
		"second cue\nsecond line\n"

	segments := ParseCues(content)
	if len(segments) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(segments))
	}
	if segments[0].Start != 0 || segments[0].End != 2.5 || segments[0].Text != "first cue" {
		t.Errorf("unexpected first cue: %+v", segments[0])
	}
	if segments[1].Text != "second cue\nsecond line" {
		t.Errorf("multi-line cue text lost: %q", segments[1].Text)
	}
}

func TestParseCues_SRT(t *testing.T) {
	content := "1\r\n" +
		"00:00:01,500 --> 00:00:03,250\r\n" +
		"Hello\r\n\r\n" +
		"2\r\n" +
		"00:00:03,250 --> 00:00:05,000\r\n" +
		"World\r\n"

	segments := ParseCues(content)
	if len(segments) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(segments))
	}
	if segments[0].Start != 1.5 || segments[0].End != 3.25 {
		t.Errorf("unexpected times: %+v", segments[0])
	}
	if segments[0].Text != "Hello" || segments[1].Text != "World" {
		t.Errorf("unexpected texts: %q, %q", segments[0].Text, segments[1].Text)
	}
}

func TestParseCues_RoundTrip(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 0, End: 1.25, Text: "一句"},
		{Start: 1.25, End: 4.0, Text: "两句"},
	}

	rendered, err := Render(segments, FormatVTT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	parsed := ParseCues(rendered)
	if len(parsed) != len(segments) {
		t.Fatalf("expected %d cues, got %d", len(segments), len(parsed))
	}
	for i := range segments {
		if parsed[i] != segments[i] {
			t.Errorf("cue %d: got %+v, want %+v", i, parsed[i], segments[i])
		}
	}
}

func TestParseCues_Empty(t *testing.T) {
	if segments := ParseCues("WEBVTT\n\n"); len(segments) != 0 {
		t.Errorf("expected no cues, got %d", len(segments))
	}
	if segments := ParseCues(""); len(segments) != 0 {
		t.Errorf("expected no cues for empty input, got %d", len(segments))
	}
}
