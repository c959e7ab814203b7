// Package langdetect identifies the language of a piece of text.
package langdetect

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// getDetector lazily builds the shared detector. Model loading is expensive,
// so it happens on first use rather than at startup.
func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build()
	})
	return detector
}

// Detect returns the ISO 639-1 code and English display name of the text's
// language. Returns ("auto", "") when the language cannot be determined.
func Detect(text string) (code, name string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "auto", ""
	}

	lang, ok := getDetector().DetectLanguageOf(trimmed)
	if !ok {
		return "auto", ""
	}

	code = strings.ToLower(lang.IsoCode639_1().String())
	tag, err := language.Parse(code)
	if err != nil {
		return code, lang.String()
	}
	return code, display.English.Languages().Name(tag)
}
