package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/consolidation"
	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/similarity"
	"github.com/Sanat-Jha/Truely-FAQ/internal/infra/config"
	"github.com/Sanat-Jha/Truely-FAQ/internal/infra/embedder"
	"github.com/Sanat-Jha/Truely-FAQ/internal/infra/faqcache"
	"github.com/Sanat-Jha/Truely-FAQ/internal/infra/faqrepo"
	"github.com/Sanat-Jha/Truely-FAQ/internal/infra/llm/chatgpt"
)

func provideConsolidationConfig(cfg *config.Config) consolidation.Config {
	return consolidation.Config{
		Threshold:           cfg.Similarity.Threshold,
		MinSimilarForNewFAQ: cfg.Similarity.MinSimilarForNewFAQ,
		CacheTTL:            cfg.Cache.TTL,
	}
}

// providePgxPool returns a verified connection pool, or nil when Postgres is
// not configured or unreachable. Consumers fall back to memory implementations
// on nil.
func providePgxPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repository")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repository enabled")
	return pool
}

// repositories keeps the question and FAQ ports backed by the same storage
// instance.
type repositories struct {
	questions consolidation.QuestionRepository
	faqs      consolidation.FAQRepository
}

func provideRepositories(pool *pgxpool.Pool) repositories {
	if pool == nil {
		mem := faqrepo.NewMemoryRepository()
		return repositories{questions: mem, faqs: mem}
	}
	pg := faqrepo.NewPostgresRepository(pool)
	return repositories{questions: pg, faqs: pg}
}

func provideQuestionRepository(repos repositories) consolidation.QuestionRepository {
	return repos.questions
}

func provideFAQRepository(repos repositories) consolidation.FAQRepository {
	return repos.faqs
}

func providePublicCache(cfg *config.Config, logger *slog.Logger) consolidation.PublicCache {
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return faqcache.NewMemoryCache()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return faqcache.NewMemoryCache()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey public faq cache enabled", "addr", cfg.Cache.Addr)
			return faqcache.NewValkeyCache(client, "faq")
		}
	}
	return faqcache.NewMemoryCache()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideSimilarityProvider(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) *similarity.Provider {
	switch similarity.Strategy(cfg.Similarity.Strategy) {
	case similarity.StrategyStatistical:
		return similarity.NewProvider(similarity.NewVectorMatcher(similarity.NewTFIDF()), logger)

	case similarity.StrategyEmbedding:
		var embCache embedder.Cache = embedder.NewMemoryCache()
		if pool != nil {
			embCache = embedder.NewPostgresCache(pool)
		}
		vectorizer := similarity.NewEmbeddingVectorizer(func() (similarity.Embedder, error) {
			client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
			if err != nil {
				return nil, fmt.Errorf("create llm client: %w", err)
			}
			base := embedder.NewChatGPTEmbedder(client, cfg.LLM.EmbeddingModel, logger)
			return embedder.NewCachedEmbedder(base, embCache, cfg.LLM.EmbeddingModel, logger), nil
		}, logger)
		return similarity.NewProvider(similarity.NewVectorMatcher(vectorizer), logger)

	case similarity.StrategyLLM:
		client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
		if err != nil {
			return similarity.NewUnavailableProvider(fmt.Sprintf("create llm client: %v", err), logger)
		}
		return similarity.NewProvider(similarity.NewLLMMatcher(client, cfg.LLM.Model, cfg.LLM.Temperature), logger)

	default:
		return similarity.NewUnavailableProvider(fmt.Sprintf("unknown similarity strategy %q", cfg.Similarity.Strategy), logger)
	}
}
