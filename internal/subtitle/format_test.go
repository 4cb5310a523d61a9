package subtitle

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/caption-stream/backend/internal/transcript"
)

func TestRender_SRT(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 1.5, End: 3.25, Text: "Hello"},
		{Start: 3.25, End: 5.0, Text: "  World  "},
	}

	out, err := Render(segments, FormatSRT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "1\n" +
		"00:00:01,500 --> 00:00:03,250\n" +
		"Hello\n" +
		"\n" +
		"2\n" +
		"00:00:03,250 --> 00:00:05,000\n" +
		"World\n"
	if out != want {
		t.Errorf("unexpected srt output:\n got %q\nwant %q", out, want)
	}
}

func TestRender_VTT(t *testing.T) {
	segments := []transcript.Segment{{Start: 0, End: 2.5, Text: "第一句"}}

	out, err := Render(segments, FormatVTT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(out, "WEBVTT\n\n") {
		t.Errorf("vtt output must start with the WEBVTT header: %q", out)
	}
	if !strings.Contains(out, "00:00:00.000 --> 00:00:02.500\n第一句") {
		t.Errorf("missing cue in vtt output: %q", out)
	}
}

func TestRender_TXT(t *testing.T) {
	segments := []transcript.Segment{{Start: 61.9, End: 125.2, Text: "line"}}

	out, err := Render(segments, FormatTXT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// txt truncates to whole seconds, no rounding.
	want := "[00:01:01 --> 00:02:05] line"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRender_JSON(t *testing.T) {
	segments := []transcript.Segment{{Start: 0.5, End: 1.0, Text: "a"}}

	out, err := Render(segments, FormatJSON)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded []transcript.Segment
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if len(decoded) != 1 || decoded[0] != segments[0] {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestRender_UnknownFormatFallsBackToTXT(t *testing.T) {
	segments := []transcript.Segment{{Start: 0, End: 1, Text: "x"}}

	got, err := Render(segments, Format("yaml"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want, err := Render(segments, FormatTXT)
	if err != nil {
		t.Fatalf("Render txt: %v", err)
	}
	if got != want {
		t.Errorf("unknown format should render as txt:\n got %q\nwant %q", got, want)
	}
}

func TestRender_EmptyInputs(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "[]"},
		{FormatSRT, ""},
		{FormatVTT, "WEBVTT\n\n"},
		{FormatTXT, ""},
	}
	for _, tt := range tests {
		got, err := Render(nil, tt.format)
		if err != nil {
			t.Errorf("%s: %v", tt.format, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 0, End: 1.234, Text: "one"},
		{Start: 1.234, End: 9.876, Text: "two"},
	}
	for _, format := range []Format{FormatJSON, FormatSRT, FormatVTT, FormatTXT} {
		a, err := Render(segments, format)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		b, err := Render(segments, format)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if a != b {
			t.Errorf("%s: rendering is not deterministic", format)
		}
	}
}

func TestRender_ContractViolations(t *testing.T) {
	tests := []struct {
		name  string
		seg   transcript.Segment
		field string
	}{
		{"nan start", transcript.Segment{Start: math.NaN(), End: 1, Text: "x"}, "start"},
		{"inf end", transcript.Segment{Start: 0, End: math.Inf(1), Text: "x"}, "end"},
		{"negative start", transcript.Segment{Start: -1, End: 1, Text: "x"}, "start"},
		{"end precedes start", transcript.Segment{Start: 5, End: 3, Text: "x"}, "end"},
		{"empty text", transcript.Segment{Start: 0, End: 1, Text: "   "}, "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render([]transcript.Segment{tt.seg}, FormatJSON)
			cerr, ok := err.(*ContractError)
			if !ok {
				t.Fatalf("expected ContractError, got %v", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, cerr.Field)
			}
			if cerr.Index != 0 {
				t.Errorf("expected index 0, got %d", cerr.Index)
			}
		})
	}
}

func TestRender_ZeroDurationSegmentAllowed(t *testing.T) {
	segments := []transcript.Segment{{Start: 2, End: 2, Text: "instant"}}
	if _, err := Render(segments, FormatSRT); err != nil {
		t.Errorf("equal start and end must be accepted: %v", err)
	}
}

func TestFormatClock_MillisecondCarry(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{59.9996, "00:01:00,000"},
		{3599.9995, "01:00:00,000"},
		{0, "00:00:00,000"},
		{3661.5, "01:01:01,500"},
		{360000.25, "100:00:00,250"}, // hours are never truncated
	}
	for _, tt := range tests {
		if got := formatClock(tt.seconds, ","); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatClockNoMS_Truncates(t *testing.T) {
	if got := formatClockNoMS(59.999); got != "00:00:59" {
		t.Errorf("txt clock must truncate, got %q", got)
	}
}
