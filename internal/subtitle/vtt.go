package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/caption-stream/backend/internal/transcript"
)

var cueTimesRe = regexp.MustCompile(`(\d{2,}:\d{2}:\d{2}[.,]\d{3})\s*-->\s*(\d{2,}:\d{2}:\d{2}[.,]\d{3})`)

// ParseCues parses WebVTT (or SRT, which differs only in the millisecond
// separator and cue numbering) into caption segments. Engines that return
// finished subtitle text are normalized through this into the shared
// Segment shape.
func ParseCues(content string) []transcript.Segment {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var segments []transcript.Segment
	var current *transcript.Segment

	flush := func() {
		if current != nil && current.Text != "" {
			segments = append(segments, *current)
		}
		current = nil
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)

		// Header and blank lines end the current cue.
		if line == "" || line == "WEBVTT" {
			flush()
			continue
		}

		if matches := cueTimesRe.FindStringSubmatch(line); len(matches) == 3 {
			flush()
			current = &transcript.Segment{
				Start: parseClock(matches[1]),
				End:   parseClock(matches[2]),
			}
			continue
		}

		// Cue index numbers sit on their own line between cues.
		if _, err := strconv.Atoi(line); err == nil && current == nil {
			continue
		}

		if current != nil {
			if current.Text != "" {
				current.Text += "\n"
			}
			current.Text += line
		}
	}
	flush()

	return segments
}

// parseClock converts "HH:MM:SS.mmm" (or the SRT comma variant) to seconds.
func parseClock(ts string) float64 {
	ts = strings.Replace(ts, ",", ".", 1)
	var h, m, s, ms int
	if _, err := fmt.Sscanf(ts, "%d:%d:%d.%d", &h, &m, &s, &ms); err != nil {
		return 0
	}
	return float64(h*3600+m*60+s) + float64(ms)/1000.0
}
