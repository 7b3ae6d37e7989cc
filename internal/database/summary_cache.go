package database

import (
	"context"
	"time"
)

// SummaryCache adapts Database to the summarizer cache contract. Storage
// errors are logged and reported as misses.
type SummaryCache struct {
	db  *Database
	ttl time.Duration
}

func NewSummaryCache(db *Database, ttl time.Duration) *SummaryCache {
	if db == nil || ttl <= 0 {
		return nil
	}

	return &SummaryCache{db: db, ttl: ttl}
}

func (c *SummaryCache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}

	summary, ok, err := c.db.GetSummary(ctx, key)
	if err != nil {
		c.db.log.WarnContext(ctx, "Failed to read cached summary",
			"error", err,
			"cacheKey", key)

		return "", false
	}

	return summary, ok
}

func (c *SummaryCache) Set(ctx context.Context, key string, summary string) {
	if c == nil {
		return
	}

	if err := c.db.PutSummary(ctx, key, summary, c.ttl); err != nil {
		c.db.log.WarnContext(ctx, "Failed to store summary",
			"error", err,
			"cacheKey", key)
	}
}
