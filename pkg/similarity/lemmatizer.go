package similarity

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Lemmatizer reduces vertex text to lemmas. Production setups plug in the
// annotation pipeline; WordLemmatizer is a dependency-free fallback.
type Lemmatizer interface {
	Lemmas(text string) []string
}

// LemmatizerFunc adapts a plain function to the Lemmatizer interface
type LemmatizerFunc func(text string) []string

// Lemmas calls fn(text)
func (fn LemmatizerFunc) Lemmas(text string) []string {
	return fn(text)
}

// WordLemmatizer splits text into runs of letters and digits and case folds
// each run. It does no stemming, so "mixture" and "mix" stay distinct.
type WordLemmatizer struct{}

// NewWordLemmatizer creates a WordLemmatizer
func NewWordLemmatizer() *WordLemmatizer {
	return &WordLemmatizer{}
}

// Lemmas returns the folded words of text in order of appearance
func (l *WordLemmatizer) Lemmas(text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	// a Caser is stateful, so each call gets its own
	folder := cases.Fold()
	lemmas := make([]string, len(words))
	for i, w := range words {
		lemmas[i] = folder.String(w)
	}
	return lemmas
}
