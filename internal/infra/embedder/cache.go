package embedder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"

	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/similarity"
)

// Cache stores computed embeddings keyed by text so the same question is
// never embedded twice.
type Cache interface {
	Get(ctx context.Context, key string) ([]float32, bool, error)
	Put(ctx context.Context, key string, vector []float32) error
}

// CachedEmbedder wraps an embedder with a best-effort cache. Cache failures
// are logged and ignored; the inner embedder remains the source of truth.
type CachedEmbedder struct {
	inner  similarity.Embedder
	cache  Cache
	model  string
	logger *slog.Logger
}

// NewCachedEmbedder constructs the wrapper. The model name participates in
// the cache key so switching models never reuses stale vectors.
func NewCachedEmbedder(inner similarity.Embedder, cache Cache, model string, logger *slog.Logger) *CachedEmbedder {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedEmbedder{
		inner:  inner,
		cache:  cache,
		model:  model,
		logger: logger.With("component", "embedder.cache"),
	}
}

// Embed serves hits from the cache and batch-embeds only the misses.
func (e *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	missing := make([]string, 0, len(texts))
	missingIdx := make([]int, 0, len(texts))

	for i, text := range texts {
		vector, hit, err := e.cache.Get(ctx, e.key(text))
		if err != nil {
			e.logger.Warn("embedding cache lookup failed", "error", err)
		} else if hit {
			out[i] = vector
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) > 0 {
		vectors, err := e.inner.Embed(ctx, missing)
		if err != nil {
			return nil, err
		}
		for j, vector := range vectors {
			out[missingIdx[j]] = vector
			if err := e.cache.Put(ctx, e.key(missing[j]), vector); err != nil {
				e.logger.Warn("embedding cache save failed", "error", err)
			}
		}
	}
	return out, nil
}

func (e *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(e.model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// MemoryCache is an in-process embedding cache.
type MemoryCache struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{vectors: make(map[string][]float32)}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]float32, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vector, ok := c.vectors[key]
	return vector, ok, nil
}

// Put implements Cache.
func (c *MemoryCache) Put(_ context.Context, key string, vector []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectors[key] = append([]float32(nil), vector...)
	return nil
}

var (
	_ similarity.Embedder = (*CachedEmbedder)(nil)
	_ Cache               = (*MemoryCache)(nil)
)
