package database

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := New(context.Background(), filepath.Join(t.TempDir(), "cache.db"), log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("close DB: %v", closeErr)
		}
	})

	return db
}

func TestPutAndGetSummary(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	if _, ok, err := db.GetSummary(ctx, "key"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := db.PutSummary(ctx, "key", "first", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.PutSummary(ctx, "key", "second", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, ok, err := db.GetSummary(ctx, "key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || summary != "second" {
		t.Fatalf("expected overwritten summary, got %q ok=%v", summary, ok)
	}
}

func TestSummaryExpires(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return now }

	if err := db.PutSummary(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now = now.Add(2 * time.Minute)

	if _, ok, err := db.GetSummary(ctx, "key"); err != nil || ok {
		t.Fatalf("expected expired entry to miss, got ok=%v err=%v", ok, err)
	}

	removed, err := db.DeleteExpiredSummaries(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 expired row removed, got %d", removed)
	}
}

func TestPutSummaryRejectsInvalidInput(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	if err := db.PutSummary(ctx, " ", "value", time.Hour); err == nil {
		t.Fatalf("expected empty key to be rejected")
	}
	if err := db.PutSummary(ctx, "key", "  ", time.Hour); err == nil {
		t.Fatalf("expected empty summary to be rejected")
	}
	if err := db.PutSummary(ctx, "key", "value", 0); err == nil {
		t.Fatalf("expected non-positive ttl to be rejected")
	}
}

func TestReopenKeepsSummaries(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	first, err := New(ctx, path, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err = first.PutSummary(ctx, "key", "kept", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err = first.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := New(ctx, path, log)
	if err != nil {
		t.Fatalf("unexpected error on reopen: %v", err)
	}
	defer second.Close()

	summary, ok, err := second.GetSummary(ctx, "key")
	if err != nil || !ok || summary != "kept" {
		t.Fatalf("expected summary to survive reopen, got %q ok=%v err=%v", summary, ok, err)
	}
}

func TestSummaryCache(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	if NewSummaryCache(nil, time.Hour) != nil {
		t.Fatalf("expected nil cache without DB")
	}
	if NewSummaryCache(db, 0) != nil {
		t.Fatalf("expected nil cache without ttl")
	}

	var disabled *SummaryCache
	disabled.Set(ctx, "key", "value")
	if _, ok := disabled.Get(ctx, "key"); ok {
		t.Fatalf("expected nil cache to miss")
	}

	cache := NewSummaryCache(db, time.Hour)
	cache.Set(ctx, "key", "value")

	summary, ok := cache.Get(ctx, "key")
	if !ok || summary != "value" {
		t.Fatalf("expected cached summary, got %q ok=%v", summary, ok)
	}

	cache.Set(ctx, "", "ignored")
	if _, ok = cache.Get(ctx, ""); ok {
		t.Fatalf("expected empty key to miss")
	}
}
