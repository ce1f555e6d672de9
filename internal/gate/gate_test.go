package gate

import "testing"

func TestWordCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \t\n  ", 0},
		{"single word", "great", 1},
		{"three words", "a b c", 3},
		{"mixed whitespace", "one\ttwo\nthree  four", 4},
		{"leading trailing", "  hello world  ", 2},
		{"arabic", "لعبة ممتعة جدا", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordCount(tt.text); got != tt.want {
				t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestGate_Classify(t *testing.T) {
	g := Gate{MinWords: 5, MaxWords: 300}

	tests := []struct {
		name string
		text string
		want Class
	}{
		{"empty is below min", "", BelowMin},
		{"three words below min", "a b c", BelowMin},
		{"four words below min", "one two three four", BelowMin},
		{"exactly min", "one two three four five", WithinRange},
		{"exactly max", repeatWords("w", 300), WithinRange},
		{"one over max", repeatWords("w", 301), AboveMax},
		{"far over max", repeatWords("w", 500), AboveMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Classify(tt.text); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGate_Classify_EqualBounds(t *testing.T) {
	g := Gate{MinWords: 3, MaxWords: 3}

	if got := g.Classify("a b c"); got != WithinRange {
		t.Errorf("expected WithinRange at the shared bound, got %v", got)
	}
	if got := g.Classify("a b"); got != BelowMin {
		t.Errorf("expected BelowMin, got %v", got)
	}
	if got := g.Classify("a b c d"); got != AboveMax {
		t.Errorf("expected AboveMax, got %v", got)
	}
}

func repeatWords(w string, n int) string {
	out := make([]byte, 0, n*(len(w)+1))
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, w...)
	}
	return string(out)
}
