package similarity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text   string
		tokens []string
	}{
		{"How do I reset my password?", []string{"how", "do", "i", "reset", "my", "password"}},
		{"  spaced\tout\ntext ", []string{"spaced", "out", "text"}},
		{"order #42 (urgent!)", []string{"order", "42", "urgent"}},
		{"snake_case survives", []string{"snake_case", "survives"}},
		{"?!...", nil},
		{"", nil},
	}

	for _, tc := range tests {
		got := tokenize(tc.text)
		if len(tc.tokens) == 0 {
			require.Empty(t, got, "text %q", tc.text)
			continue
		}
		require.Equal(t, tc.tokens, got, "text %q", tc.text)
	}
}

func TestTFIDF_IdenticalTextsScoreOne(t *testing.T) {
	ctx := context.Background()
	vectorizer := NewTFIDF()
	corpus := []string{"how do i reset my password", "How do I reset my password?"}

	require.NoError(t, vectorizer.Fit(ctx, corpus))
	vectors, err := vectorizer.Transform(ctx, corpus)
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	require.InDelta(t, 1.0, cosine(vectors[0], vectors[1]), 1e-9)
}

func TestTFIDF_UnrelatedTextsScoreLowerThanRelated(t *testing.T) {
	ctx := context.Background()
	vectorizer := NewTFIDF()
	corpus := []string{
		"how do i reset my password",
		"how can i reset my password",
		"what are your opening hours",
	}

	require.NoError(t, vectorizer.Fit(ctx, corpus))
	vectors, err := vectorizer.Transform(ctx, corpus)
	require.NoError(t, err)

	related := cosine(vectors[0], vectors[1])
	unrelated := cosine(vectors[0], vectors[2])
	require.Greater(t, related, unrelated)
}

// A one-word rephrasing ("do" -> "can") scores about 0.639 on a two-document
// corpus: the smoothed idf discounts the five shared terms while each unique
// term keeps full weight. That lands below the 0.7 default threshold, so the
// statistical strategy does not merge this pair; only an embedding or llm
// strategy can.
func TestTFIDF_RephrasedQuestionScoresBelowDefaultThreshold(t *testing.T) {
	ctx := context.Background()
	vectorizer := NewTFIDF()
	corpus := []string{
		"How do I reset my password?",
		"How can I reset my password?",
	}

	require.NoError(t, vectorizer.Fit(ctx, corpus))
	vectors, err := vectorizer.Transform(ctx, corpus)
	require.NoError(t, err)

	score := cosine(vectors[0], vectors[1])
	require.InDelta(t, 0.6386, score, 1e-3)
	require.Less(t, score, DefaultThreshold)
}

func TestTFIDF_PunctuationOnlyTextYieldsZeroVector(t *testing.T) {
	ctx := context.Background()
	vectorizer := NewTFIDF()
	corpus := []string{"real words here", "?!..."}

	require.NoError(t, vectorizer.Fit(ctx, corpus))
	vectors, err := vectorizer.Transform(ctx, corpus)
	require.NoError(t, err)

	require.Zero(t, cosine(vectors[0], vectors[1]))
	for _, value := range vectors[1] {
		require.Zero(t, value)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name  string
		a, b  []float64
		score float64
	}{
		{"identical unit vectors", []float64{1, 0}, []float64{1, 0}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"mismatched dimensions", []float64{1, 0}, []float64{1}, 0},
		{"empty", nil, nil, 0},
		{"negative clamped to zero", []float64{1, 0}, []float64{-1, 0}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.score, cosine(tc.a, tc.b), 1e-9)
		})
	}
}
