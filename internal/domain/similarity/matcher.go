package similarity

import (
	"context"
	"fmt"
)

// Matcher answers the two comparison questions the consolidation engine
// needs. Implementations may fail; the Provider absorbs those failures.
type Matcher interface {
	// BestMatch returns the index of the most similar candidate, or -1 when
	// no candidate reaches the threshold.
	BestMatch(ctx context.Context, query string, candidates []string, threshold float64) (int, error)
	// FrequencyCount returns how many candidates score at or above the
	// threshold against the query.
	FrequencyCount(ctx context.Context, query string, candidates []string, threshold float64) (int, error)
}

// VectorMatcher scores candidates geometrically using a Vectorizer fitted on
// the candidates plus the query.
type VectorMatcher struct {
	vectorizer Vectorizer
}

// NewVectorMatcher wraps the given vectorizer.
func NewVectorMatcher(vectorizer Vectorizer) *VectorMatcher {
	return &VectorMatcher{vectorizer: vectorizer}
}

// BestMatch scans candidates in order tracking the maximum score. The strict
// > comparison means the earliest candidate wins ties; the final threshold
// check is inclusive.
func (m *VectorMatcher) BestMatch(ctx context.Context, query string, candidates []string, threshold float64) (int, error) {
	vectors, err := m.vectorize(ctx, query, candidates)
	if err != nil {
		return -1, err
	}
	queryVector := vectors[len(vectors)-1]

	bestIndex := -1
	bestScore := -1.0
	for i, candidate := range vectors[:len(vectors)-1] {
		if score := cosine(queryVector, candidate); score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}
	if bestScore >= threshold {
		return bestIndex, nil
	}
	return -1, nil
}

// FrequencyCount counts candidates scoring at or above the threshold.
func (m *VectorMatcher) FrequencyCount(ctx context.Context, query string, candidates []string, threshold float64) (int, error) {
	vectors, err := m.vectorize(ctx, query, candidates)
	if err != nil {
		return 0, err
	}
	queryVector := vectors[len(vectors)-1]

	count := 0
	for _, candidate := range vectors[:len(vectors)-1] {
		if cosine(queryVector, candidate) >= threshold {
			count++
		}
	}
	return count, nil
}

// Available forwards the availability of the underlying vectorizer when it
// reports one (the embedding vectorizer does, TF-IDF is always ready).
func (m *VectorMatcher) Available() bool {
	if reporter, ok := m.vectorizer.(interface{ Available() bool }); ok {
		return reporter.Available()
	}
	return true
}

func (m *VectorMatcher) vectorize(ctx context.Context, query string, candidates []string) ([][]float64, error) {
	corpus := make([]string, 0, len(candidates)+1)
	corpus = append(corpus, candidates...)
	corpus = append(corpus, query)

	if err := m.vectorizer.Fit(ctx, corpus); err != nil {
		return nil, fmt.Errorf("fit corpus: %w", err)
	}
	vectors, err := m.vectorizer.Transform(ctx, corpus)
	if err != nil {
		return nil, fmt.Errorf("transform corpus: %w", err)
	}
	if len(vectors) != len(corpus) {
		return nil, fmt.Errorf("vector count mismatch: expected %d got %d", len(corpus), len(vectors))
	}
	return vectors, nil
}

var _ Matcher = (*VectorMatcher)(nil)
