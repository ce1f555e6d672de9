// Package detector identifies the language of a text. The detector is
// restricted to the pipeline's working languages, which keeps model load time
// and memory far below the all-languages build.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"
)

// workingLanguages are the only languages this pipeline ever sees: Arabic in,
// English out.
var workingLanguages = []lingua.Language{
	lingua.Arabic,
	lingua.English,
}

type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector for the pipeline's working languages. Construction is
// expensive; reuse the instance.
func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(workingLanguages...).
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the ISO 639-1 code of the detected language.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return lang.IsoCode639_1().String(), true
}
