package transcript

import (
	"fmt"
	"strings"

	"github.com/go-ego/gse"
)

// DefaultPunctuation covers the CJK and Latin sentence/clause terminators and
// bracket pairs emitted by the recognition runtimes we talk to.
const DefaultPunctuation = "，。；！？!,;.?:()（）"

// Tokenizer splits transcript text into ordered lexical units and classifies
// punctuation. Word granularity follows the dictionary segmenter, so CJK text
// splits into words without needing spaces; punctuation marks always come out
// as standalone units.
type Tokenizer struct {
	seg   gse.Segmenter
	punct string
}

// NewTokenizer loads the embedded dictionary and returns a ready tokenizer.
func NewTokenizer() (*Tokenizer, error) {
	return NewTokenizerWithPunctuation(DefaultPunctuation)
}

// NewTokenizerWithPunctuation is NewTokenizer with a custom punctuation set.
func NewTokenizerWithPunctuation(punct string) (*Tokenizer, error) {
	t := &Tokenizer{punct: punct}
	if err := t.seg.LoadDict(); err != nil {
		return nil, fmt.Errorf("load segmenter dict: %w", err)
	}
	return t, nil
}

// Tokenize splits text into lexical units, preserving every character of the
// input across the returned units.
func (t *Tokenizer) Tokenize(text string) []string {
	return t.seg.Cut(text, true)
}

// IsPunctuation reports whether a unit is a punctuation mark.
func (t *Tokenizer) IsPunctuation(unit string) bool {
	return unit != "" && strings.Contains(t.punct, unit)
}

// FirstPunctuation returns the index of the first punctuation unit, or -1.
func (t *Tokenizer) FirstPunctuation(units []string) int {
	for i, u := range units {
		if t.IsPunctuation(u) {
			return i
		}
	}
	return -1
}

// StripPunctuation replaces every punctuation character with a single space
// and trims the ends. Internal whitespace is left alone so word boundaries
// survive for space-delimited scripts.
func (t *Tokenizer) StripPunctuation(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(t.punct, r) {
			return ' '
		}
		return r
	}, text)
	return strings.TrimSpace(stripped)
}
