package embedder

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

// PostgresCache persists embeddings in a pgvector column so they survive
// restarts and are shared across instances.
//
// Expected schema:
//
//	question_embeddings(content_hash text pk, embedding vector)
type PostgresCache struct {
	pool *pgxpool.Pool
}

// NewPostgresCache constructs the cache.
func NewPostgresCache(pool *pgxpool.Pool) *PostgresCache {
	return &PostgresCache{pool: pool}
}

// Get implements Cache.
func (c *PostgresCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	row := c.pool.QueryRow(ctx, `
		SELECT embedding FROM question_embeddings WHERE content_hash = $1
	`, key)
	var vector pgvector.Vector
	err := row.Scan(&vector)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return vector.Slice(), true, nil
}

// Put implements Cache.
func (c *PostgresCache) Put(ctx context.Context, key string, vector []float32) error {
	_, err := c.pool.Exec(ctx, `
		INSERT INTO question_embeddings (content_hash, embedding)
		VALUES ($1, $2)
		ON CONFLICT (content_hash) DO NOTHING
	`, key, pgvector.NewVector(vector))
	return err
}

var _ Cache = (*PostgresCache)(nil)
