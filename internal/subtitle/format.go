package subtitle

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/caption-stream/backend/internal/transcript"
)

// Format selects the caption output representation.
type Format string

const (
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatTXT  Format = "txt"
)

// ContractError reports a segment that violates the serialization contract:
// non-finite or inverted times, or empty text. This is a caller bug, not a
// runtime condition, so rendering fails hard instead of coercing the value.
type ContractError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("segment %d: field %q %s", e.Index, e.Field, e.Reason)
}

// Render serializes segments into the requested format. An unrecognized
// format renders as txt. Rendering is pure: the same segments and format
// always produce the same string.
func Render(segments []transcript.Segment, format Format) (string, error) {
	if err := validate(segments); err != nil {
		return "", err
	}
	switch format {
	case FormatJSON:
		return renderJSON(segments)
	case FormatSRT:
		return renderSRT(segments), nil
	case FormatVTT:
		return renderVTT(segments), nil
	default:
		return renderTXT(segments), nil
	}
}

func validate(segments []transcript.Segment) error {
	for i, seg := range segments {
		switch {
		case math.IsNaN(seg.Start) || math.IsInf(seg.Start, 0):
			return &ContractError{Index: i, Field: "start", Reason: "is not finite"}
		case math.IsNaN(seg.End) || math.IsInf(seg.End, 0):
			return &ContractError{Index: i, Field: "end", Reason: "is not finite"}
		case seg.Start < 0:
			return &ContractError{Index: i, Field: "start", Reason: "is negative"}
		case seg.End < seg.Start:
			return &ContractError{Index: i, Field: "end", Reason: "precedes start"}
		case strings.TrimSpace(seg.Text) == "":
			return &ContractError{Index: i, Field: "text", Reason: "is empty"}
		}
	}
	return nil
}

func renderJSON(segments []transcript.Segment) (string, error) {
	if segments == nil {
		segments = []transcript.Segment{}
	}
	out, err := json.MarshalIndent(segments, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal segments: %w", err)
	}
	return string(out), nil
}

func renderSRT(segments []transcript.Segment) string {
	var lines []string
	for i, seg := range segments {
		lines = append(lines,
			strconv.Itoa(i+1),
			formatClock(seg.Start, ",")+" --> "+formatClock(seg.End, ","),
			strings.TrimSpace(seg.Text),
			"",
		)
	}
	return strings.Join(lines, "\n")
}

func renderVTT(segments []transcript.Segment) string {
	if len(segments) == 0 {
		return "WEBVTT\n\n"
	}
	lines := []string{"WEBVTT", ""}
	for _, seg := range segments {
		lines = append(lines,
			formatClock(seg.Start, ".")+" --> "+formatClock(seg.End, "."),
			strings.TrimSpace(seg.Text),
			"",
		)
	}
	return strings.Join(lines, "\n")
}

func renderTXT(segments []transcript.Segment) string {
	var lines []string
	for _, seg := range segments {
		lines = append(lines, fmt.Sprintf("[%s --> %s] %s",
			formatClockNoMS(seg.Start), formatClockNoMS(seg.End), strings.TrimSpace(seg.Text)))
	}
	return strings.Join(lines, "\n")
}

// splitClock breaks seconds into zero-padded clock fields with millisecond
// rounding. Rounding can carry (59.9996s -> 1:00.000), so overflow cascades
// upward; hours are never truncated.
func splitClock(seconds float64) (h, m, s, ms int) {
	h = int(seconds / 3600)
	rem := seconds - float64(h)*3600
	m = int(rem / 60)
	rem -= float64(m) * 60
	s = int(rem)
	ms = int(math.Round((rem - float64(s)) * 1000))
	if ms == 1000 {
		ms = 0
		s++
		if s == 60 {
			s = 0
			m++
		}
		if m == 60 {
			m = 0
			h++
		}
	}
	return h, m, s, ms
}

func formatClock(seconds float64, msSep string) string {
	h, m, s, ms := splitClock(seconds)
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", h, m, s, msSep, ms)
}

// formatClockNoMS truncates to whole seconds; no millisecond carry applies.
func formatClockNoMS(seconds float64) string {
	h := int(seconds / 3600)
	rem := seconds - float64(h)*3600
	m := int(rem / 60)
	s := int(rem - float64(m)*60)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
