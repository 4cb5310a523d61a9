package transcript

// TimeRange is the millisecond time span a recognition runtime attributed to
// one token, kept in the wire shape (a JSON array). Runtimes occasionally emit
// arrays with the wrong arity; those are carried as-is and handled by the
// segmenter rather than rejected at decode time.
type TimeRange []int64

// Valid reports whether the range carries both a start and an end.
func (t TimeRange) Valid() bool {
	return len(t) >= 2
}

// StartMS returns the start of the range in milliseconds.
func (t TimeRange) StartMS() int64 { return t[0] }

// EndMS returns the end of the range in milliseconds.
func (t TimeRange) EndMS() int64 { return t[1] }

// RawTranscript is what a recognition engine hands the segmentation core:
// the full transcript text, optional per-token time ranges, and the audio
// duration in seconds. Token times are indexed by an estimate of consumed
// character count, not one-to-one with tokens; that loose coupling comes
// from the upstream runtime and is an accepted approximation.
type RawTranscript struct {
	Text       string      `json:"text"`
	TokenTimes []TimeRange `json:"token_times,omitempty"`
	Duration   float64     `json:"duration,omitempty"`
}

// Segment is one caption cue: a start/end pair in seconds and the text
// displayed for that span. Produced sequences are ordered by non-decreasing
// start; ends may overlap the next start because timestamps are estimates.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
