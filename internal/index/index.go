// Package index holds the per-platform relevance index: one fitted
// vectorizer and one vector store per platform.
package index

import (
	"fmt"

	"cdpbot/internal/domain"
)

type entry struct {
	vectorizer domain.Vectorizer
	store      domain.VectorStore
}

// Index maps each platform to its own vector space.
type Index struct {
	normalizer    domain.Normalizer
	newVectorizer func() domain.Vectorizer
	newStore      func() domain.VectorStore
	entries       map[domain.Platform]*entry
}

// New creates an empty index. Every Build call gets a fresh vectorizer and
// store from the factories, so platforms never share a vocabulary.
func New(normalizer domain.Normalizer, newVectorizer func() domain.Vectorizer, newStore func() domain.VectorStore) *Index {
	return &Index{
		normalizer:    normalizer,
		newVectorizer: newVectorizer,
		newStore:      newStore,
		entries:       make(map[domain.Platform]*entry),
	}
}

// Build indexes the fragments of one platform, replacing any previous entry.
func (x *Index) Build(platform domain.Platform, fragments []domain.Fragment) error {
	corpus := make([]string, len(fragments))
	for i, f := range fragments {
		corpus[i] = x.normalizer.Normalize(f.Content)
	}
	vectorizer := x.newVectorizer()
	if err := vectorizer.Fit(corpus); err != nil {
		return fmt.Errorf("fit %s vectorizer: %w", platform, err)
	}
	store := x.newStore()
	if err := store.Init(vectorizer.Dimension()); err != nil {
		return fmt.Errorf("init %s store: %w", platform, err)
	}
	vectors := make([][]float64, len(corpus))
	for i, text := range corpus {
		vec, err := vectorizer.Transform(text)
		if err != nil {
			return fmt.Errorf("vectorize %s fragment %d: %w", platform, i, err)
		}
		vectors[i] = vec
	}
	if err := store.Upsert(fragments, vectors); err != nil {
		return fmt.Errorf("store %s vectors: %w", platform, err)
	}
	x.entries[platform] = &entry{vectorizer: vectorizer, store: store}
	return nil
}

// Search projects the question into the platform's vector space and returns
// the topK most similar fragments.
func (x *Index) Search(platform domain.Platform, question string, topK int) ([]domain.SearchResult, error) {
	e, ok := x.entries[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPlatform, platform)
	}
	vec, err := e.vectorizer.Transform(x.normalizer.Normalize(question))
	if err != nil {
		return nil, err
	}
	return e.store.Search(vec, topK)
}

// Stats describes the vector space of one platform.
type Stats struct {
	Vectorizer string
	Dimension  int
	Fragments  int
}

// Stats reports the vectorizer and fragment count of a built platform.
func (x *Index) Stats(platform domain.Platform) (Stats, bool) {
	e, ok := x.entries[platform]
	if !ok {
		return Stats{}, false
	}
	return Stats{
		Vectorizer: e.vectorizer.Name(),
		Dimension:  e.vectorizer.Dimension(),
		Fragments:  e.store.Len(),
	}, true
}
