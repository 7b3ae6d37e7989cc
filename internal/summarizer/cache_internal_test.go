package summarizer

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheGetSet(t *testing.T) {
	cache := NewMemoryCache(2, time.Hour)
	if cache == nil {
		t.Fatalf("expected cache instance")
	}

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.set("key", "value", now.Add(time.Hour), now)

	summary, ok := cache.get("key", now)
	if !ok {
		t.Fatalf("expected cached summary to be present")
	}

	if summary != "value" {
		t.Fatalf("unexpected summary: %q", summary)
	}
}

func TestMemoryCacheExpiresEntries(t *testing.T) {
	cache := NewMemoryCache(2, time.Hour)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.set("key", "value", now.Add(time.Minute), now)

	if _, ok := cache.get("key", now.Add(2*time.Minute)); ok {
		t.Fatalf("expected cache entry to expire")
	}

	if len(cache.entries) != 0 {
		t.Fatalf("expected expired cache entry to be removed")
	}
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewMemoryCache(2, time.Hour)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	expiresAt := now.Add(time.Hour)

	cache.set("a", "summary-a", expiresAt, now)
	cache.set("b", "summary-b", expiresAt, now)

	if _, ok := cache.get("a", now); !ok {
		t.Fatalf("expected entry a to exist before eviction check")
	}

	cache.set("c", "summary-c", expiresAt, now)

	if _, ok := cache.get("a", now); !ok {
		t.Fatalf("expected entry a to remain after evicting least recently used")
	}

	if _, ok := cache.get("b", now); ok {
		t.Fatalf("expected entry b to be evicted")
	}

	if _, ok := cache.get("c", now); !ok {
		t.Fatalf("expected entry c to be cached")
	}
}

func TestMemoryCacheUsesClock(t *testing.T) {
	cache := NewMemoryCache(4, time.Minute)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	cache.Set(ctx, "key", "value")

	now = now.Add(30 * time.Second)
	if _, ok := cache.Get(ctx, "key"); !ok {
		t.Fatalf("expected entry within TTL")
	}

	now = now.Add(time.Minute)
	if _, ok := cache.Get(ctx, "key"); ok {
		t.Fatalf("expected entry past TTL to miss")
	}
}

func TestNewMemoryCacheDisabled(t *testing.T) {
	if NewMemoryCache(0, time.Hour) != nil {
		t.Fatalf("expected zero size to disable cache")
	}

	var cache *MemoryCache
	cache.Set(context.Background(), "key", "value")
	if _, ok := cache.Get(context.Background(), "key"); ok {
		t.Fatalf("expected nil cache to always miss")
	}
}

func TestCacheKey(t *testing.T) {
	bounds := LengthBounds{MaxLen: 21, MinLen: 9}

	keyA := CacheKey("extractive", bounds, "  Example text ")
	keyB := CacheKey("extractive", bounds, "Example text")
	if keyA == "" || keyA != keyB {
		t.Fatalf("expected trimmed texts to share a key, got %q vs %q", keyA, keyB)
	}

	if CacheKey("openai:gpt-4o-mini", bounds, "Example text") == keyA {
		t.Fatalf("expected collaborator to be part of the key")
	}

	if CacheKey("extractive", LengthBounds{MaxLen: 30, MinLen: 12}, "Example text") == keyA {
		t.Fatalf("expected bounds to be part of the key")
	}

	if CacheKey("extractive", bounds, "   ") != "" {
		t.Fatalf("expected empty text to produce empty key")
	}
}

func TestChainCacheBackfillsFasterTier(t *testing.T) {
	fast := NewMemoryCache(4, time.Hour)
	slow := NewMemoryCache(4, time.Hour)
	chain := ChainCache{fast, slow}
	ctx := context.Background()

	slow.Set(ctx, "key", "value")

	got, ok := chain.Get(ctx, "key")
	if !ok || got != "value" {
		t.Fatalf("expected hit from slow tier, got %q, %v", got, ok)
	}

	if _, ok = fast.Get(ctx, "key"); !ok {
		t.Fatalf("expected fast tier to be backfilled")
	}
}
