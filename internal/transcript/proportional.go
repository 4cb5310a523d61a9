package transcript

import "strings"

// DefaultTerminators are the sentence-ending marks the proportional
// segmenter splits on.
const DefaultTerminators = "。！？；.!?;"

// ProportionalSegmenter splits a transcript on sentence-terminating
// punctuation and spreads a known total duration evenly across the
// sentences. It is the fallback when no per-token timestamps exist.
type ProportionalSegmenter struct {
	terminators string
}

// NewProportionalSegmenter uses the default terminator set when terminators
// is empty.
func NewProportionalSegmenter(terminators string) *ProportionalSegmenter {
	if terminators == "" {
		terminators = DefaultTerminators
	}
	return &ProportionalSegmenter{terminators: terminators}
}

// Segment splits text into sentences and assigns each an equal share of
// totalDuration seconds. Text without any terminator has no recognizable
// sentence boundaries and yields no segments.
func (p *ProportionalSegmenter) Segment(text string, totalDuration float64) []Segment {
	if !strings.ContainsAny(text, p.terminators) {
		return []Segment{}
	}

	pieces := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(p.terminators, r)
	})

	sentences := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if s := strings.TrimSpace(piece); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return []Segment{}
	}

	per := totalDuration / float64(len(sentences))
	segments := make([]Segment, 0, len(sentences))
	for i, sentence := range sentences {
		segments = append(segments, Segment{
			Start: float64(i) * per,
			End:   float64(i+1) * per,
			Text:  sentence,
		})
	}
	return segments
}
