// Package validator checks that a stage's output is written in the expected
// language. The check is advisory: the pipeline logs mismatches but never
// fails a record over one, since the detector itself is probabilistic.
package validator

import (
	"fmt"
	"strings"

	"github.com/valpere/tarjim/internal/detector"
)

// minValidationLength is the minimum rune count required to attempt language
// detection. Shorter texts produce unreliable results and pass without
// validation.
const minValidationLength = 20

// Validator checks that text is written in one expected language. The
// underlying detector is expensive to build; reuse the instance.
type Validator struct {
	det  *detector.Detector
	lang string
}

// New creates a Validator for the given ISO 639-1 language code.
func New(lang string) *Validator {
	return &Validator{det: detector.New(), lang: lang}
}

// Validate returns nil when text plausibly is in the expected language.
//
// Empty texts fail. Short texts and texts whose language cannot be determined
// pass. When the detected language differs from the expected one the returned
// error names both codes.
func (v *Validator) Validate(text string) error {
	if v.lang == "" {
		return nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("text is empty")
	}

	// Detector is unreliable for very short texts; skip validation.
	if len([]rune(text)) < minValidationLength {
		return nil
	}

	detected, ok := v.det.DetectISO(text)
	if !ok {
		// Ambiguous language, cannot validate.
		return nil
	}

	if !strings.EqualFold(detected, v.lang) {
		return fmt.Errorf("expected %s but detected %s", v.lang, detected)
	}

	return nil
}
