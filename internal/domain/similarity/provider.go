package similarity

import (
	"context"
	"log/slog"
)

// Provider is the façade the consolidation engine talks to. It never fails:
// any error inside vectorization or scoring degrades that call to the
// "not found" / "not frequent" result so that callers only ever see a value.
// The conservative failure mode trades recall for availability; an internal
// error can never cause an FAQ to be wrongly created or merged.
type Provider struct {
	matcher Matcher
	reason  string
	logger  *slog.Logger
}

// NewProvider wraps the given matcher.
func NewProvider(matcher Matcher, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		matcher: matcher,
		logger:  logger.With("component", "similarity.provider"),
	}
}

// NewUnavailableProvider builds a provider that is permanently degraded, used
// when the configured strategy could not be constructed at startup.
func NewUnavailableProvider(reason string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "similarity.provider")
	logger.Error("similarity provider unavailable", "reason", reason)
	return &Provider{reason: reason, logger: logger}
}

// Available reports whether similarity decisions can be made at all. The
// first call may block while an embedding model initializes.
func (p *Provider) Available() bool {
	if p.matcher == nil {
		return false
	}
	if reporter, ok := p.matcher.(interface{ Available() bool }); ok {
		return reporter.Available()
	}
	return true
}

// BestMatch returns the index of the candidate most similar to the query, or
// -1 when candidates is empty, no candidate reaches the threshold, or the
// computation failed.
func (p *Provider) BestMatch(ctx context.Context, query string, candidates []string, threshold float64) int {
	if len(candidates) == 0 {
		return -1
	}
	if p.matcher == nil {
		return -1
	}
	index, err := p.matcher.BestMatch(ctx, query, candidates, threshold)
	if err != nil {
		p.logger.Error("best match computation failed", "error", err, "query", clip(query), "candidates", len(candidates))
		return -1
	}
	return index
}

// FrequencyCount reports whether any candidate is similar to the query and
// how many are. Empty candidate lists and computation failures both yield
// (false, 0).
func (p *Provider) FrequencyCount(ctx context.Context, query string, candidates []string, threshold float64) (bool, int) {
	if len(candidates) == 0 {
		return false, 0
	}
	if p.matcher == nil {
		return false, 0
	}
	count, err := p.matcher.FrequencyCount(ctx, query, candidates, threshold)
	if err != nil {
		p.logger.Error("frequency count computation failed", "error", err, "query", clip(query), "candidates", len(candidates))
		return false, 0
	}
	return count > 0, count
}

func clip(text string) string {
	const max = 50
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
