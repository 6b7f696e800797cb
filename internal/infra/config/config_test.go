package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "statistical", cfg.Similarity.Strategy)
	require.InDelta(t, 0.7, cfg.Similarity.Threshold, 1e-9)
	require.Equal(t, 1, cfg.Similarity.MinSimilarForNewFAQ)
	require.False(t, cfg.Cache.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9999")
	t.Setenv("SIMILARITY_STRATEGY", "llm")
	t.Setenv("SIMILARITY_THRESHOLD", "0.85")
	t.Setenv("MIN_SIMILAR_FOR_NEW_FAQ", "3")
	t.Setenv("FAQ_CACHE_ENABLED", "true")
	t.Setenv("FAQ_CACHE_ADDR", "localhost:6379")
	t.Setenv("FAQ_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9999", cfg.HTTP.Address)
	require.Equal(t, "llm", cfg.Similarity.Strategy)
	require.InDelta(t, 0.85, cfg.Similarity.Threshold, 1e-9)
	require.Equal(t, 3, cfg.Similarity.MinSimilarForNewFAQ)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, "localhost:6379", cfg.Cache.Addr)
	require.Equal(t, "30s", cfg.Cache.TTL.String())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown strategy", func(c *Config) { c.Similarity.Strategy = "vibes" }},
		{"threshold above one", func(c *Config) { c.Similarity.Threshold = 1.5 }},
		{"threshold below zero", func(c *Config) { c.Similarity.Threshold = -0.1 }},
		{"zero min similar", func(c *Config) { c.Similarity.MinSimilarForNewFAQ = 0 }},
		{"empty address", func(c *Config) { c.HTTP.Address = "" }},
		{"cache enabled without addr", func(c *Config) { c.Cache.Enabled = true; c.Cache.Addr = " " }},
		{"embedding strategy without model", func(c *Config) {
			c.Similarity.Strategy = "embedding"
			c.LLM.EmbeddingModel = ""
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
