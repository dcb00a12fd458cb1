package memory

import (
	"errors"
	"sort"
	"sync"

	"cdpbot/internal/domain"
)

// Storage is a simple in-memory vector store using brute-force cosine similarity.
// Row i always holds fragment i.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	fragments []domain.Fragment
}

func NewStorage() *Storage { return &Storage{} }

// Init resets the store for vectors of the given dimension.
// A zero dimension is valid and backs an empty vocabulary.
func (s *Storage) Init(dimension int) error {
	if dimension < 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.fragments = nil
	return nil
}

func (s *Storage) Upsert(fragments []domain.Fragment, vectors [][]float64) error {
	if len(fragments) != len(vectors) {
		return errors.New("fragments and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.fragments = append(s.fragments, fragments...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Search returns up to topK fragments ordered by descending similarity.
// Equal scores keep their original fragment order.
func (s *Storage) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(vector) != s.dimension {
		return nil, errors.New("query dimension mismatch")
	}
	if topK <= 0 {
		topK = 3
	}
	// vectors are L2-normalized, so the dot product is the cosine similarity
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		scores[i] = dot(s.vectors[i], vector)
	}
	idxs := argsortDesc(scores)
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.SearchResult, 0, topK)
	for _, j := range idxs[:topK] {
		results = append(results, domain.SearchResult{Fragment: s.fragments[j], Index: j, Score: scores[j]})
	}
	return results, nil
}

// Len returns the number of stored fragments.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fragments)
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return vals[idxs[a]] > vals[idxs[b]] })
	return idxs
}
