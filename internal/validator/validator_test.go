package validator

import (
	"strings"
	"testing"
)

func TestValidator_Validate(t *testing.T) {
	v := New("en")

	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{
			name:    "english passes",
			text:    "The gameplay loop is genuinely addictive and the soundtrack is superb throughout.",
			wantErr: false,
		},
		{
			name:    "arabic fails",
			text:    "القصة مملة والتحكم سيء للغاية ولا أنصح بشراء هذه اللعبة على الإطلاق",
			wantErr: true,
		},
		{
			name:    "short text passes without validation",
			text:    "جميل",
			wantErr: false,
		},
		{
			name:    "empty text fails",
			text:    "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
		})
	}
}

func TestValidator_MismatchNamesBothCodes(t *testing.T) {
	v := New("en")

	err := v.Validate("هذه مراجعة طويلة مكتوبة بالكامل باللغة العربية عن لعبة فيديو حديثة")
	if err == nil {
		t.Fatal("expected a language mismatch error")
	}
	if !strings.Contains(err.Error(), "en") {
		t.Errorf("error should name the expected code: %v", err)
	}
}

func TestValidator_NoExpectedLanguage(t *testing.T) {
	v := &Validator{}

	if err := v.Validate("anything at all"); err != nil {
		t.Errorf("validator without an expected language must pass everything, got %v", err)
	}
}
