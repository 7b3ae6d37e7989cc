package summarizer

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Cache stores finished summaries. Misses and write failures are never
// fatal; implementations log and carry on.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, summary string)
}

// CacheKey binds a summary to the collaborator, the bounds and the text.
func CacheKey(collaborator string, bounds LengthBounds, text string) string {
	normalizedText := strings.TrimSpace(text)
	if collaborator == "" || normalizedText == "" {
		return ""
	}

	hash := sha256.Sum256([]byte(normalizedText))

	return collaborator + "|" +
		strconv.Itoa(bounds.MaxLen) + "-" + strconv.Itoa(bounds.MinLen) + "|" +
		hex.EncodeToString(hash[:])
}

// ChainCache reads through its tiers in order and backfills the faster
// tiers on a hit further down.
type ChainCache []Cache

func (c ChainCache) Get(ctx context.Context, key string) (string, bool) {
	for i, tier := range c {
		if tier == nil {
			continue
		}

		summary, ok := tier.Get(ctx, key)
		if !ok {
			continue
		}

		for _, faster := range c[:i] {
			if faster != nil {
				faster.Set(ctx, key, summary)
			}
		}

		return summary, true
	}

	return "", false
}

func (c ChainCache) Set(ctx context.Context, key string, summary string) {
	for _, tier := range c {
		if tier != nil {
			tier.Set(ctx, key, summary)
		}
	}
}

// MemoryCache is an LRU cache with a fixed TTL per entry.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

type memoryCacheEntry struct {
	key       string
	summary   string
	expiresAt time.Time
}

// NewMemoryCache returns nil when maxEntries or ttl disable caching.
func NewMemoryCache(maxEntries int, ttl time.Duration) *MemoryCache {
	if maxEntries <= 0 || ttl <= 0 {
		return nil
	}

	return &MemoryCache{
		entries:    make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}

	return c.get(key, c.now())
}

func (c *MemoryCache) Set(_ context.Context, key string, summary string) {
	if c == nil {
		return
	}

	now := c.now()
	c.set(key, summary, now.Add(c.ttl), now)
}

func (c *MemoryCache) get(key string, now time.Time) (string, bool) {
	if key == "" {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return "", false
	}

	entry, ok := elem.Value.(*memoryCacheEntry)
	if !ok {
		return "", false
	}

	if now.After(entry.expiresAt) {
		c.removeElement(elem)

		return "", false
	}

	c.order.MoveToFront(elem)

	return entry.summary, true
}

func (c *MemoryCache) set(
	key string,
	summary string,
	expiresAt time.Time,
	now time.Time,
) {
	if key == "" || summary == "" || !expiresAt.After(now) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry, castOk := elem.Value.(*memoryCacheEntry)
		if !castOk {
			return
		}

		entry.summary = summary
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)

		return
	}

	elem := c.order.PushFront(&memoryCacheEntry{
		key:       key,
		summary:   summary,
		expiresAt: expiresAt,
	})
	c.entries[key] = elem

	c.evictExpiredLocked(now)
	c.enforceSizeLimitLocked()
}

func (c *MemoryCache) evictExpiredLocked(now time.Time) {
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()

		if entry, ok := elem.Value.(*memoryCacheEntry); ok && now.After(entry.expiresAt) {
			c.removeElement(elem)
		}
		elem = prev
	}
}

func (c *MemoryCache) enforceSizeLimitLocked() {
	for len(c.entries) > c.maxEntries {
		elem := c.order.Back()
		if elem == nil {
			return
		}
		c.removeElement(elem)
	}
}

func (c *MemoryCache) removeElement(elem *list.Element) {
	entry, ok := elem.Value.(*memoryCacheEntry)
	if !ok {
		return
	}

	delete(c.entries, entry.key)
	c.order.Remove(elem)
}
