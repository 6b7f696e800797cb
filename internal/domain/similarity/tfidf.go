package similarity

import (
	"context"
	"math"
	"strings"
	"unicode"
)

// Vectorizer turns a corpus of texts into fixed-length numeric vectors.
// Vocabulary and document-frequency statistics are corpus-relative, so Fit
// must be called with the full comparison set (candidates plus query) before
// every Transform sequence.
type Vectorizer interface {
	Fit(ctx context.Context, corpus []string) error
	Transform(ctx context.Context, texts []string) ([][]float64, error)
}

// TFIDF is a lightweight term-frequency/inverse-document-frequency vectorizer
// without external dependencies.
type TFIDF struct {
	docCount   int
	vocabulary map[string]int
	idf        []float64
}

// NewTFIDF constructs an unfitted TF-IDF vectorizer.
func NewTFIDF() *TFIDF {
	return &TFIDF{}
}

// Fit builds the vocabulary and idf weights over the given corpus.
func (t *TFIDF) Fit(_ context.Context, corpus []string) error {
	t.docCount = len(corpus)
	t.vocabulary = make(map[string]int)

	// document frequency counts each term once per document
	docFrequency := make([]int, 0)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, term := range tokenize(doc) {
			if seen[term] {
				continue
			}
			seen[term] = true
			idx, ok := t.vocabulary[term]
			if !ok {
				idx = len(t.vocabulary)
				t.vocabulary[term] = idx
				docFrequency = append(docFrequency, 0)
			}
			docFrequency[idx]++
		}
	}

	// smoothed idf: ln(N/(df+1)) + 1 stays positive and defined for df == N
	t.idf = make([]float64, len(docFrequency))
	for idx, df := range docFrequency {
		t.idf[idx] = math.Log(float64(t.docCount)/float64(df+1)) + 1
	}
	return nil
}

// Transform maps each text to its tf-idf vector, L2-normalized. Texts with no
// known terms yield the zero vector.
func (t *TFIDF) Transform(_ context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vector := make([]float64, len(t.vocabulary))
		for _, term := range tokenize(text) {
			if idx, ok := t.vocabulary[term]; ok {
				vector[idx] += t.idf[idx]
			}
		}
		normalize(vector)
		vectors[i] = vector
	}
	return vectors, nil
}

func normalize(vector []float64) {
	var sum float64
	for _, v := range vector {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	magnitude := math.Sqrt(sum)
	for i := range vector {
		vector[i] /= magnitude
	}
}

// tokenize lowercases, strips everything that is not a word character or
// whitespace, and splits on whitespace.
func tokenize(text string) []string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			builder.WriteRune(r)
		}
	}
	return strings.Fields(builder.String())
}
