package detector

import (
	"strings"
	"testing"
)

func TestDetector_DetectISO(t *testing.T) {
	d := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english review",
			text: "This game has excellent combat mechanics but the story falls flat in the second half.",
			want: "EN",
		},
		{
			name: "arabic review",
			text: "هذه اللعبة ممتعة للغاية والقصة رائعة لكن الأداء ضعيف على الأجهزة القديمة",
			want: "AR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.DetectISO(tt.text)
			if !ok {
				t.Fatal("expected a detection result")
			}
			if !strings.EqualFold(got, tt.want) {
				t.Errorf("DetectISO() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetector_EmptyText(t *testing.T) {
	d := New()

	if _, ok := d.Detect(""); ok {
		t.Error("empty text must not produce a detection")
	}
}
