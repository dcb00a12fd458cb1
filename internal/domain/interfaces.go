package domain

import (
	"context"
	"errors"
)

// Platform names one of the supported Customer Data Platforms.
type Platform string

const (
	Segment   Platform = "segment"
	MParticle Platform = "mparticle"
	Lytics    Platform = "lytics"
	Zeotap    Platform = "zeotap"
)

// Platforms returns the supported platforms in canonical order.
func Platforms() []Platform {
	return []Platform{Segment, MParticle, Lytics, Zeotap}
}

// ParsePlatform maps a name to a known platform.
func ParsePlatform(name string) (Platform, bool) {
	for _, p := range Platforms() {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// ErrUnknownPlatform is returned when retrieval targets a platform that was never indexed.
var ErrUnknownPlatform = errors.New("unknown platform")

// Fragment is a unit of documentation content indexed and retrieved as a whole.
// Its identity is its position in the platform's fragment list.
type Fragment struct {
	Content string `yaml:"content"`
	Source  string `yaml:"source,omitempty"`
}

// Document is a raw piece of documentation before it is split into fragments.
type Document struct {
	Path    string
	Content string
}

// SearchResult represents a matching fragment with a relevance score.
type SearchResult struct {
	Fragment Fragment
	Index    int
	Score    float64
}

// Normalizer turns free text into a space-joined string of normalized tokens.
type Normalizer interface {
	Normalize(text string) string
}

// Vectorizer converts normalized text into a numeric vector representation.
// It must be fitted on a corpus before Transform is called.
type Vectorizer interface {
	Name() string
	Fit(corpus []string) error
	Dimension() int
	Transform(text string) ([]float64, error)
}

// Chunker splits documents into fragments suitable for indexing.
type Chunker interface {
	Chunk(document Document) ([]Fragment, error)
}

// VectorStore holds fragment vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(fragments []Fragment, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Len() int
}

// Fetcher retrieves documentation fragments for a platform and may fail.
type Fetcher interface {
	Fetch(ctx context.Context, platform Platform, sourceURL string) ([]Fragment, error)
}

// DocSource supplies documentation fragments for a platform.
// Implementations never fail; an unavailable source yields no fragments.
type DocSource interface {
	Fetch(ctx context.Context, platform Platform, sourceURL string) []Fragment
}

// PlatformSource pairs a platform with the location of its documentation.
type PlatformSource struct {
	Platform Platform
	URL      string
}
