package summarizer_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"textbrief/internal/domain"
	"textbrief/internal/summarizer"
)

type stubSummarizer struct {
	mu      sync.Mutex
	calls   int
	inputs  []summarizer.Input
	summary string
	err     error
}

func (s *stubSummarizer) Name() string {
	return "stub"
}

func (s *stubSummarizer) Summarize(
	_ context.Context,
	input summarizer.Input,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.inputs = append(s.inputs, input)

	return s.summary, s.err
}

func (s *stubSummarizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

func longText(words int) string {
	return strings.TrimSpace(strings.Repeat("The tenant shall pay rent monthly. ", words/6+1))
}

func TestServiceShortTextPassthrough(t *testing.T) {
	stub := &stubSummarizer{summary: "should not be used"}
	svc := summarizer.NewService(stub, summarizer.Options{}, slog.Default())

	tests := []string{
		"Short note.",
		"   Short note.\n\n",
		"",
		strings.Repeat("word ", 29),
	}

	for _, text := range tests {
		got, err := svc.Summarize(context.Background(), text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != strings.TrimSpace(text) {
			t.Fatalf("expected trimmed passthrough %q, got %q", strings.TrimSpace(text), got)
		}
	}

	if got := stub.callCount(); got != 0 {
		t.Fatalf("expected collaborator not to be called, got %d calls", got)
	}
}

func TestServicePassesClampedBounds(t *testing.T) {
	stub := &stubSummarizer{summary: "  summary  "}
	svc := summarizer.NewService(stub, summarizer.Options{MaxLength: 10, MinLength: 50}, slog.Default())

	got, err := svc.Summarize(context.Background(), longText(60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "summary" {
		t.Fatalf("unexpected summary: %q", got)
	}

	if len(stub.inputs) != 1 {
		t.Fatalf("expected one collaborator call, got %d", len(stub.inputs))
	}

	bounds := stub.inputs[0].Bounds
	if bounds.MaxLen != 10 || bounds.MinLen != 9 {
		t.Fatalf("expected clamped bounds {10 9}, got %+v", bounds)
	}
}

func TestServiceWrapsCollaboratorFailure(t *testing.T) {
	boom := errors.New("model exploded")
	stub := &stubSummarizer{err: boom}
	svc := summarizer.NewService(stub, summarizer.Options{}, slog.Default())

	_, err := svc.Summarize(context.Background(), longText(60))
	if !errors.Is(err, domain.ErrSummarizationUnavailable) {
		t.Fatalf("expected ErrSummarizationUnavailable, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected underlying error to be kept, got %v", err)
	}
}

func TestServiceEmptySummaryIsUnavailable(t *testing.T) {
	svc := summarizer.NewService(&stubSummarizer{summary: "   "}, summarizer.Options{}, slog.Default())

	if _, err := svc.Summarize(context.Background(), longText(60)); !errors.Is(err, domain.ErrSummarizationUnavailable) {
		t.Fatalf("expected ErrSummarizationUnavailable, got %v", err)
	}
}

func TestServiceWithoutCollaborator(t *testing.T) {
	svc := summarizer.NewService(nil, summarizer.Options{}, slog.Default())

	if got, err := svc.Summarize(context.Background(), "Short note."); err != nil || got != "Short note." {
		t.Fatalf("expected short text to pass through, got %q, %v", got, err)
	}

	if _, err := svc.Summarize(context.Background(), longText(60)); !errors.Is(err, domain.ErrSummarizationUnavailable) {
		t.Fatalf("expected ErrSummarizationUnavailable, got %v", err)
	}
}

func TestServiceUsesCache(t *testing.T) {
	stub := &stubSummarizer{summary: "cached summary"}
	svc := summarizer.NewService(stub, summarizer.Options{
		Cache: summarizer.NewMemoryCache(8, time.Hour),
	}, slog.Default())

	ctx := context.Background()
	text := longText(60)

	first, err := svc.Summarize(ctx, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stub.summary = "should not be used"
	second, err := svc.Summarize(ctx, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != "cached summary" || second != "cached summary" {
		t.Fatalf("unexpected summaries: %q, %q", first, second)
	}
	if got := stub.callCount(); got != 1 {
		t.Fatalf("expected summarizer to be called once, got %d", got)
	}

	if _, err = svc.Summarize(ctx, text+" Edited."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stub.callCount(); got != 2 {
		t.Fatalf("expected edited text to bypass cache, calls %d", got)
	}
}

func TestServiceDoesNotCacheFailures(t *testing.T) {
	stub := &stubSummarizer{err: errors.New("temporary")}
	svc := summarizer.NewService(stub, summarizer.Options{
		Cache: summarizer.NewMemoryCache(8, time.Hour),
	}, slog.Default())

	ctx := context.Background()
	text := longText(60)

	if _, err := svc.Summarize(ctx, text); err == nil {
		t.Fatalf("expected error")
	}

	stub.err = nil
	stub.summary = "recovered"

	got, err := svc.Summarize(ctx, text)
	if err != nil || got != "recovered" {
		t.Fatalf("expected recovery after failure, got %q, %v", got, err)
	}
}
