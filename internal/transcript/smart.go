package transcript

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// SmartConfig tunes the timestamp-aware segmenter.
type SmartConfig struct {
	// TargetUnits is the fixed window length used when no usable punctuation
	// cut point exists.
	TargetUnits int
	// MinUnits is the threshold below which all remaining units become the
	// final segment.
	MinUnits int
	// LowerBound (exclusive) and UpperBound (inclusive) delimit where a
	// punctuation unit may sit to be used as a cut point.
	LowerBound int
	UpperBound int
}

// DefaultSmartConfig matches the runtime's tuning: 8-unit windows, cut points
// accepted between positions 3 and 10.
func DefaultSmartConfig() SmartConfig {
	return SmartConfig{TargetUnits: 8, MinUnits: 10, LowerBound: 2, UpperBound: 10}
}

// AlignmentError reports why the timestamp-aware path could not run. Callers
// treat it as a signal to fall back to proportional segmentation, never as a
// failure surfaced to the user.
type AlignmentError struct {
	Reason string
}

func (e *AlignmentError) Error() string {
	return "timestamp alignment unavailable: " + e.Reason
}

// SmartSegmenter splits a transcript into caption segments by combining
// punctuation-aware cut points with fixed-length windows, mapping each
// segment onto the runtime's per-token time ranges.
//
// The mapping is heuristic: a segment is assumed to consume as many time
// ranges as it has non-space characters. For scripts where one token spans
// several characters this drifts, which is accepted — the upstream data does
// not support an exact token-to-timestamp mapping.
type SmartSegmenter struct {
	tok *Tokenizer
	cfg SmartConfig
	log zerolog.Logger
}

// NewSmartSegmenter wires a tokenizer and config. Zero config fields take
// their defaults.
func NewSmartSegmenter(tok *Tokenizer, cfg SmartConfig, log zerolog.Logger) *SmartSegmenter {
	def := DefaultSmartConfig()
	if cfg.TargetUnits <= 0 {
		cfg.TargetUnits = def.TargetUnits
	}
	if cfg.MinUnits <= 0 {
		cfg.MinUnits = def.MinUnits
	}
	if cfg.UpperBound <= 0 {
		cfg.LowerBound = def.LowerBound
		cfg.UpperBound = def.UpperBound
	}
	return &SmartSegmenter{tok: tok, cfg: cfg, log: log}
}

// Segment produces time-bounded segments for text using the token time
// ranges. It returns an *AlignmentError when the inputs cannot drive the
// timestamp-aware path at all; malformed individual ranges do not fail the
// call, they switch that segment to a synthetic half-second-per-token
// estimate.
func (s *SmartSegmenter) Segment(text string, times []TimeRange) ([]Segment, error) {
	if s == nil || s.tok == nil {
		return nil, &AlignmentError{Reason: "tokenizer unavailable"}
	}
	if len(times) == 0 {
		return nil, &AlignmentError{Reason: "no token time ranges"}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &AlignmentError{Reason: "empty transcript text"}
	}

	units := s.tok.Tokenize(text)
	segments := []Segment{}
	cursor := 0

	for len(units) > 0 && cursor < len(times) {
		var consumed []string
		if len(units) < s.cfg.MinUnits {
			// Too little left to be worth splitting.
			consumed, units = units, nil
		} else if p := s.tok.FirstPunctuation(units); p > s.cfg.UpperBound || p <= s.cfg.LowerBound {
			// No punctuation, or it sits too early or too late: take a
			// fixed-length window instead.
			n := s.cfg.TargetUnits
			if n > len(units) {
				n = len(units)
			}
			consumed, units = units[:n], units[n:]
		} else {
			// Cut at the punctuation mark, which belongs to this segment.
			consumed, units = units[:p+1], units[p+1:]
		}

		segText := strings.Join(consumed, "")

		// Estimate how many time ranges this segment consumes from its
		// non-space character count.
		segLen := utf8.RuneCountInString(strings.ReplaceAll(segText, " ", ""))
		estimated := segLen
		if remaining := len(times) - cursor; estimated > remaining {
			estimated = remaining
		}
		if estimated <= 0 {
			break
		}

		startRange := times[cursor]
		endIdx := cursor + estimated - 1
		if endIdx > len(times)-1 {
			endIdx = len(times) - 1
		}
		endRange := times[endIdx]

		var start, end float64
		if startRange.Valid() && endRange.Valid() {
			start = float64(startRange.StartMS()) / 1000.0
			end = float64(endRange.EndMS()) / 1000.0
		} else {
			// Malformed range: estimate half a second per token.
			start = float64(cursor) * 0.5
			end = float64(cursor+estimated) * 0.5
			s.log.Debug().Int("cursor", cursor).Msg("malformed time range, using synthetic estimate")
		}

		if clean := s.tok.StripPunctuation(segText); clean != "" {
			segments = append(segments, Segment{Start: start, End: end, Text: clean})
		}

		cursor += estimated
	}

	return segments, nil
}
