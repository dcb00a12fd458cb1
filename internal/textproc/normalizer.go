package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

// Normalizer lowercases, tokenizes, drops stopwords and non-alphanumeric
// tokens, and lemmatizes what remains.
type Normalizer struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
	lemmatizer   *Lemmatizer
}

// NewNormalizer creates a Normalizer using the English stopword list.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		// joined runs like "e-mail" stay a single token so the alphanumeric
		// filter can drop them whole; clitics are split off afterwards
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}]+(?:['’\-._][\p{L}\p{N}]+)*`),
		stopwords:    defaultStopwords(),
		lemmatizer:   NewLemmatizer(),
	}
}

// Normalize returns the normalized tokens of text joined by single spaces.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens returns the normalized tokens of text.
func (n *Normalizer) Tokens(text string) []string {
	raw := n.tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		for _, part := range splitClitic(tok) {
			if n.isStopword(part) || !isAlphanumeric(part) {
				continue
			}
			lemma := n.lemmatizer.Lemma(part)
			if n.isStopword(lemma) {
				lemma = part
			}
			out = append(out, lemma)
		}
	}
	return out
}

// clitics are the Treebank contraction and possessive suffixes.
var clitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}

// splitClitic separates a trailing clitic from its stem:
// "segment's" becomes "segment" and "'s", "don't" becomes "do" and "n't".
func splitClitic(tok string) []string {
	tok = strings.ReplaceAll(tok, "’", "'")
	for _, c := range clitics {
		if stem, ok := strings.CutSuffix(tok, c); ok && stem != "" {
			return []string{stem, c}
		}
	}
	return []string{tok}
}

func (n *Normalizer) isStopword(tok string) bool {
	_, ok := n.stopwords[tok]
	return ok
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
