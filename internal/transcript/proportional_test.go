package transcript

import (
	"math"
	"testing"
)

func TestProportional_SplitsEvenly(t *testing.T) {
	p := NewProportionalSegmenter("")
	segments := p.Segment("A。B！C？", 9.0)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	want := []Segment{
		{Start: 0.0, End: 3.0, Text: "A"},
		{Start: 3.0, End: 6.0, Text: "B"},
		{Start: 6.0, End: 9.0, Text: "C"},
	}
	for i, w := range want {
		got := segments[i]
		if got.Text != w.Text {
			t.Errorf("segment %d: expected text %q, got %q", i, w.Text, got.Text)
		}
		if math.Abs(got.Start-w.Start) > 1e-9 || math.Abs(got.End-w.End) > 1e-9 {
			t.Errorf("segment %d: expected [%v,%v], got [%v,%v]", i, w.Start, w.End, got.Start, got.End)
		}
	}
}

func TestProportional_NoTerminators(t *testing.T) {
	p := NewProportionalSegmenter("")
	segments := p.Segment("no sentence boundaries here", 10.0)
	if len(segments) != 0 {
		t.Fatalf("expected no segments, got %d", len(segments))
	}
}

func TestProportional_DropsEmptyPieces(t *testing.T) {
	p := NewProportionalSegmenter("")
	segments := p.Segment("。。First.  . Second!", 4.0)

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(segments), segments)
	}
	if segments[0].Text != "First" || segments[1].Text != "Second" {
		t.Errorf("unexpected texts: %q, %q", segments[0].Text, segments[1].Text)
	}
	if segments[0].End != segments[1].Start {
		t.Errorf("segments should abut: %v != %v", segments[0].End, segments[1].Start)
	}
}

func TestProportional_LatinTerminators(t *testing.T) {
	p := NewProportionalSegmenter("")
	segments := p.Segment("One. Two; Three?", 6.0)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	for i, s := range segments {
		if s.End < s.Start {
			t.Errorf("segment %d: end %v precedes start %v", i, s.End, s.Start)
		}
	}
	if segments[2].End != 6.0 {
		t.Errorf("last segment should end at total duration, got %v", segments[2].End)
	}
}

func TestProportional_CustomTerminators(t *testing.T) {
	p := NewProportionalSegmenter("|")
	segments := p.Segment("a|b", 2.0)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
}
