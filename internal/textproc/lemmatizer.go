package textproc

import (
	"strings"
	"unicode"
)

// irregularNouns maps plural forms that suffix rules cannot recover.
var irregularNouns = map[string]string{
	"analyses":  "analysis",
	"children":  "child",
	"criteria":  "criterion",
	"feet":      "foot",
	"geese":     "goose",
	"indices":   "index",
	"matrices":  "matrix",
	"men":       "man",
	"mice":      "mouse",
	"people":    "person",
	"phenomena": "phenomenon",
	"teeth":     "tooth",
	"vertices":  "vertex",
	"women":     "woman",
}

// Lemmatizer reduces plural nouns to their singular form.
// Every lemma it produces is a fixed point: Lemma(Lemma(w)) == Lemma(w).
type Lemmatizer struct {
	irregular map[string]string
}

// NewLemmatizer creates a rule-based noun lemmatizer.
func NewLemmatizer() *Lemmatizer {
	return &Lemmatizer{irregular: irregularNouns}
}

// Lemma returns the base form of a lowercased word.
func (l *Lemmatizer) Lemma(word string) string {
	if base, ok := l.irregular[word]; ok {
		return base
	}
	stem := stripPlural(word)
	// "peoples" strips to "people", which is itself irregular
	if base, ok := l.irregular[stem]; ok {
		return base
	}
	return stem
}

func stripPlural(word string) string {
	if len(word) <= 3 || !isLetters(word) {
		return word
	}
	switch {
	case strings.HasSuffix(word, "ss"), strings.HasSuffix(word, "us"), strings.HasSuffix(word, "is"):
		return word
	case strings.HasSuffix(word, "sses"):
		return strings.TrimSuffix(word, "es")
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return strings.TrimSuffix(word, "ies") + "y"
	case strings.HasSuffix(word, "xes"), strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"):
		return strings.TrimSuffix(word, "es")
	case strings.HasSuffix(word, "s"):
		return strings.TrimSuffix(word, "s")
	}
	return word
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
