package tfidf

import (
	"errors"
	"math"
	"regexp"
	"sort"
)

// Vectorizer implements a TF-IDF vectorizer over pre-normalized text.
// It builds a vocabulary from the corpus and computes smoothed IDF values.
// Each instance owns its vocabulary; fitting one never affects another.
type Vectorizer struct {
	vocabulary   map[string]int
	idf          []float64
	dimension    int
	fitted       bool
	tokenPattern *regexp.Regexp
}

// NewVectorizer creates an unfitted TF-IDF vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		vocabulary: make(map[string]int),
		// two or more word characters, as scikit-learn's default token pattern
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}_]{2,}`),
	}
}

// Name returns the identifier of this vectorizer implementation.
func (v *Vectorizer) Name() string { return "tfidf" }

// Fit builds the vocabulary and IDF values from the provided corpus.
// An empty corpus, or one without any tokens, yields an empty vocabulary.
func (v *Vectorizer) Fit(corpus []string) error {
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range v.tokenPattern.FindAllString(text, -1) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.dimension = len(terms)
	v.fitted = true
	return nil
}

// Dimension returns the vocabulary size, which is the length of every vector.
func (v *Vectorizer) Dimension() int { return v.dimension }

// Vocabulary returns the fitted terms in index order.
func (v *Vectorizer) Vocabulary() []string {
	terms := make([]string, len(v.vocabulary))
	for term, idx := range v.vocabulary {
		terms[idx] = term
	}
	return terms
}

// Transform computes the L2-normalized TF-IDF vector for the given text.
// Terms outside the fitted vocabulary are ignored.
func (v *Vectorizer) Transform(text string) ([]float64, error) {
	if !v.fitted {
		return nil, errors.New("tfidf vectorizer not fitted")
	}
	vec := make([]float64, v.dimension)
	for _, tok := range v.tokenPattern.FindAllString(text, -1) {
		if idx, ok := v.vocabulary[tok]; ok {
			vec[idx]++
		}
	}
	norm := 0.0
	for idx, count := range vec {
		if count == 0 {
			continue
		}
		vec[idx] = count * v.idf[idx]
		norm += vec[idx] * vec[idx]
	}
	// L2 normalize
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}
