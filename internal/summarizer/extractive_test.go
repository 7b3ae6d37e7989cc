package summarizer_test

import (
	"context"
	"strings"
	"testing"

	"textbrief/internal/summarizer"

	"github.com/google/go-cmp/cmp"
)

const leaseText = `The Landlord agrees to lease the premises at 12 Main Street to the Tenant for a term of twelve months.
The Tenant shall pay rent of $1,500 on the first day of each month.
Rent paid after the fifth day of the month incurs a late fee of $75.
The weather in the region is generally mild.
The Tenant shall keep the premises clean and shall not sublet the premises without the Landlord's written consent.
Either party may terminate the lease with sixty days written notice to the other party.`

func TestSplitSentences(t *testing.T) {
	got := summarizer.SplitSentences("Mr. Smith signed the deal. It closed on Monday!  Was it fair?\n\nHeading without stop")
	want := []string{
		"Mr. Smith signed the deal.",
		"It closed on Monday!",
		"Was it fair?",
		"Heading without stop",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected sentences (-want +got):\n%s", diff)
	}
}

func TestExtractiveSummarizerRespectsBounds(t *testing.T) {
	s := summarizer.NewExtractiveSummarizer()
	bounds, ok := summarizer.ComputeBounds(leaseText, summarizer.DefaultMaxLength, summarizer.DefaultMinLength)
	if !ok {
		t.Fatalf("expected lease text to be long enough")
	}

	got, err := s.Summarize(context.Background(), summarizer.Input{Text: leaseText, Bounds: bounds})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	words := summarizer.WordCount(got)
	if words > bounds.MaxLen {
		t.Fatalf("summary has %d words, max %d: %q", words, bounds.MaxLen, got)
	}
	if words < bounds.MinLen {
		t.Fatalf("summary has %d words, min %d: %q", words, bounds.MinLen, got)
	}
	if strings.Contains(got, "weather") {
		t.Fatalf("expected off-topic sentence to be dropped: %q", got)
	}
}

func TestExtractiveSummarizerIsDeterministic(t *testing.T) {
	s := summarizer.NewExtractiveSummarizer()
	input := summarizer.Input{Text: leaseText, Bounds: summarizer.LengthBounds{MaxLen: 40, MinLen: 10}}

	first, err := s.Summarize(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for range 5 {
		again, againErr := s.Summarize(context.Background(), input)
		if againErr != nil {
			t.Fatalf("unexpected error: %v", againErr)
		}
		if again != first {
			t.Fatalf("expected identical summaries, got %q vs %q", first, again)
		}
	}
}

func TestExtractiveSummarizerTruncatesLongSentence(t *testing.T) {
	s := summarizer.NewExtractiveSummarizer()
	text := strings.TrimSpace(strings.Repeat("clause ", 40)) + "."

	got, err := s.Summarize(context.Background(), summarizer.Input{
		Text:   text,
		Bounds: summarizer.LengthBounds{MaxLen: 5, MinLen: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "clause clause clause clause clause..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}

func TestExtractiveSummarizerRejectsInvalidBounds(t *testing.T) {
	s := summarizer.NewExtractiveSummarizer()

	_, err := s.Summarize(context.Background(), summarizer.Input{
		Text:   leaseText,
		Bounds: summarizer.LengthBounds{MaxLen: 5, MinLen: 5},
	})
	if err == nil {
		t.Fatalf("expected invalid bounds to be rejected")
	}
}
