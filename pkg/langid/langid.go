// Package langid identifies the primary language of page text.
package langid

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// candidate languages cover the markets the profiler is pointed at; a smaller
// set keeps the detector's memory footprint and startup cost down.
var candidates = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Swedish,
	lingua.Japanese,
	lingua.Chinese,
	lingua.Korean,
	lingua.Russian,
}

// minSampleChars guards against classifying on a handful of words.
const minSampleChars = 40

// maxSampleChars bounds detector input; language is stable well before this.
const maxSampleChars = 2000

// Identifier detects languages. Build one per process; construction loads the
// language models.
type Identifier struct {
	detector lingua.LanguageDetector
}

// New builds an Identifier over the candidate language set.
func New() *Identifier {
	return &Identifier{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code of text's most likely language and the
// detector's confidence in it. Short or ambiguous text yields ("", 0).
func (i *Identifier) Detect(text string) (string, float64) {
	sample := strings.TrimSpace(text)
	if len(sample) < minSampleChars {
		return "", 0
	}
	if len(sample) > maxSampleChars {
		cut := maxSampleChars
		for cut > 0 && !utf8.RuneStart(sample[cut]) {
			cut--
		}
		sample = sample[:cut]
	}

	lang, ok := i.detector.DetectLanguageOf(sample)
	if !ok {
		return "", 0
	}
	confidence := i.detector.ComputeLanguageConfidence(sample, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), confidence
}
