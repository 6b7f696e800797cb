package faqcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/consolidation"
)

// ValkeyCache persists the public FAQ listings in a Valkey-compatible
// database so multiple instances share one cache.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "faq"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

// Get implements consolidation.PublicCache.
func (c *ValkeyCache) Get(ctx context.Context, siteID uuid.UUID) ([]consolidation.FAQ, bool, error) {
	cmd := c.client.B().Get().Key(c.siteKey(siteID)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var faqs []consolidation.FAQ
	if err := json.Unmarshal([]byte(payload), &faqs); err != nil {
		return nil, false, err
	}
	return faqs, true, nil
}

// Set implements consolidation.PublicCache.
func (c *ValkeyCache) Set(ctx context.Context, siteID uuid.UUID, faqs []consolidation.FAQ, ttl time.Duration) error {
	payload, err := json.Marshal(faqs)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.siteKey(siteID)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

// Invalidate implements consolidation.PublicCache.
func (c *ValkeyCache) Invalidate(ctx context.Context, siteID uuid.UUID) error {
	return c.client.Do(ctx, c.client.B().Del().Key(c.siteKey(siteID)).Build()).Error()
}

func (c *ValkeyCache) siteKey(siteID uuid.UUID) string {
	return fmt.Sprintf("%s:public:%s", c.prefix, siteID)
}

var _ consolidation.PublicCache = (*ValkeyCache)(nil)
