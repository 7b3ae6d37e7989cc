package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"textbrief/internal/domain"
)

type Options struct {
	MaxLength int
	MinLength int
	Cache     Cache
}

// Service applies the length policy in front of a collaborator.
type Service struct {
	summarizer Summarizer
	maxLength  int
	minLength  int
	cache      Cache
	log        *slog.Logger
}

func NewService(s Summarizer, opts Options, log *slog.Logger) *Service {
	maxLength := opts.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	minLength := opts.MinLength
	if minLength < 0 {
		minLength = DefaultMinLength
	}

	return &Service{
		summarizer: s,
		maxLength:  maxLength,
		minLength:  minLength,
		cache:      opts.Cache,
		log:        log,
	}
}

// Summarize returns short texts trimmed and unchanged. Collaborator
// failures wrap domain.ErrSummarizationUnavailable.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)

	bounds, ok := ComputeBounds(trimmed, s.maxLength, s.minLength)
	if !ok {
		return trimmed, nil
	}

	if err := bounds.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSummarizationUnavailable, err)
	}

	if s.summarizer == nil {
		return "", fmt.Errorf("%w: no summarizer configured", domain.ErrSummarizationUnavailable)
	}

	name := s.summarizer.Name()
	cacheKey := CacheKey(name, bounds, trimmed)

	if s.cache != nil && cacheKey != "" {
		if summary, hit := s.cache.Get(ctx, cacheKey); hit {
			s.log.DebugContext(ctx, "Summary cache hit",
				"summarizer", name,
				"maxLen", bounds.MaxLen,
				"minLen", bounds.MinLen)

			return summary, nil
		}
	}

	summary, err := s.summarizer.Summarize(ctx, Input{Text: trimmed, Bounds: bounds})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrSummarizationUnavailable, name, err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrSummarizationUnavailable, name,
			errors.New("empty summary"))
	}

	if s.cache != nil && cacheKey != "" {
		s.cache.Set(ctx, cacheKey, summary)
	}

	return summary, nil
}
