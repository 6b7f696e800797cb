package similarity

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
)

// Embedder produces dense vectors for free form text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingVectorizer adapts a pretrained sentence-embedding model to the
// Vectorizer contract. Fit is a no-op because the model carries its own
// vocabulary. The underlying model is initialized once; the first access
// blocks until it is ready and an initialization failure is sticky, flagging
// the vectorizer as unavailable instead of crashing the process.
type EmbeddingVectorizer struct {
	initOnce sync.Once
	init     func() (Embedder, error)
	embedder Embedder
	initErr  error
	logger   *slog.Logger
}

// NewEmbeddingVectorizer defers model construction to the given init func.
func NewEmbeddingVectorizer(init func() (Embedder, error), logger *slog.Logger) *EmbeddingVectorizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmbeddingVectorizer{
		init:   init,
		logger: logger.With("component", "similarity.embedding"),
	}
}

// Available reports whether the model could be initialized. Triggers the
// one-time initialization on first call.
func (v *EmbeddingVectorizer) Available() bool {
	return v.ensure() == nil
}

// Fit only verifies model availability; embeddings are corpus-independent.
func (v *EmbeddingVectorizer) Fit(_ context.Context, _ []string) error {
	return v.ensure()
}

// Transform embeds every text and L2-normalizes the result so that cosine
// similarity reduces to a dot product.
func (v *EmbeddingVectorizer) Transform(ctx context.Context, texts []string) ([][]float64, error) {
	if err := v.ensure(); err != nil {
		return nil, err
	}
	raw, err := v.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(raw) != len(texts) {
		return nil, errors.New("embedding count mismatch")
	}
	vectors := make([][]float64, len(raw))
	for i, emb := range raw {
		vector := make([]float64, len(emb))
		var sum float64
		for j, value := range emb {
			vector[j] = float64(value)
			sum += vector[j] * vector[j]
		}
		if sum > 0 {
			magnitude := math.Sqrt(sum)
			for j := range vector {
				vector[j] /= magnitude
			}
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (v *EmbeddingVectorizer) ensure() error {
	v.initOnce.Do(func() {
		if v.init == nil {
			v.initErr = errors.New("no embedder configured")
			return
		}
		v.embedder, v.initErr = v.init()
		if v.initErr != nil {
			v.logger.Error("embedding model unavailable, similarity disabled", "error", v.initErr)
		} else {
			v.logger.Info("embedding model initialized")
		}
	})
	return v.initErr
}
