// Package gate classifies translated texts by word count, deciding which
// records go through the summarization stage.
package gate

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Class is the word-count classification of a text.
type Class int

const (
	BelowMin Class = iota
	WithinRange
	AboveMax
)

func (c Class) String() string {
	switch c {
	case BelowMin:
		return "below_min"
	case WithinRange:
		return "within_range"
	case AboveMax:
		return "above_max"
	default:
		return "unknown"
	}
}

// Gate classifies texts against configured word-count bounds. Bounds are
// validated by the pipeline configuration before a Gate is built. A Gate
// holds no mutable state.
type Gate struct {
	MinWords int
	MaxWords int
}

// WordCount returns the number of maximal whitespace-delimited non-empty
// tokens. The text is NFC-normalized first so composed and decomposed forms
// of the same word count identically.
func WordCount(text string) int {
	return len(strings.Fields(norm.NFC.String(text)))
}

// Classify is total over any string; the empty string is BelowMin.
func (g Gate) Classify(text string) Class {
	switch n := WordCount(text); {
	case n < g.MinWords:
		return BelowMin
	case n > g.MaxWords:
		return AboveMax
	default:
		return WithinRange
	}
}
