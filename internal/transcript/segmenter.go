package transcript

import "github.com/rs/zerolog"

// DefaultFallbackDuration is assumed when the smart path fails and the caller
// never supplied an audio duration, in seconds.
const DefaultFallbackDuration = 300

// Segmenter is the two-stage segmentation pipeline: try the timestamp-aware
// smart path, and on an AlignmentError fall back to proportional splitting.
// The fallback is an explicit, observable branch — callers always get a
// segment sequence, never an error.
type Segmenter struct {
	smart *SmartSegmenter
	prop  *ProportionalSegmenter
	log   zerolog.Logger
}

// NewSegmenter builds the pipeline. smart may be nil (for example when the
// tokenizer dictionary failed to load); every request then takes the
// proportional path.
func NewSegmenter(smart *SmartSegmenter, prop *ProportionalSegmenter, log zerolog.Logger) *Segmenter {
	if prop == nil {
		prop = NewProportionalSegmenter("")
	}
	return &Segmenter{smart: smart, prop: prop, log: log}
}

// Segment turns a raw transcript into an ordered caption segment sequence.
// Transcripts with token time ranges go through the smart segmenter; ones
// without, or ones the smart segmenter cannot align, are split
// proportionally over the transcript duration.
func (s *Segmenter) Segment(raw RawTranscript) []Segment {
	if len(raw.TokenTimes) > 0 {
		segments, err := s.smart.Segment(raw.Text, raw.TokenTimes)
		if err == nil {
			return segments
		}
		duration := raw.Duration
		if duration <= 0 {
			duration = DefaultFallbackDuration
		}
		s.log.Warn().Err(err).Float64("duration", duration).
			Msg("smart segmentation unavailable, falling back to proportional")
		return s.prop.Segment(raw.Text, duration)
	}
	return s.prop.Segment(raw.Text, raw.Duration)
}

// Proportional bypasses the smart path, for callers that disabled it.
func (s *Segmenter) Proportional(text string, totalDuration float64) []Segment {
	return s.prop.Segment(text, totalDuration)
}
