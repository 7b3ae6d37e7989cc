// Package app constructs every collaborator once, at startup, and hands
// back a ready batch runner.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"textbrief/internal/batch"
	"textbrief/internal/circuitbreaker"
	"textbrief/internal/config"
	"textbrief/internal/database"
	"textbrief/internal/entities"
	"textbrief/internal/llm"
	"textbrief/internal/pipeline"
	"textbrief/internal/ratelimiter"
	"textbrief/internal/source"
	"textbrief/internal/summarizer"
	"textbrief/internal/tone"
)

var ErrEntityBackendUnavailable = errors.New("entity backend unavailable")

// Options carries the CLI overrides of the length policy.
type Options struct {
	MaxLength int
	MinLength int
}

type Services struct {
	Runner *batch.Runner

	SummarizerName string
	RecognizerName string
	AnalyzerName   string

	db  *database.Database
	log *slog.Logger
}

// Init builds the collaborators in a fixed order: summarizer (OpenAI or
// the extractive fallback), entity recognizer, tone analyzer, then the
// optional sqlite summary cache. Only the entity and tone phases can fail.
func Init(ctx context.Context, cfg config.Config, opts Options, log *slog.Logger) (*Services, error) {
	limiter := ratelimiter.New("openai", cfg.OpenAIRequestsPerMinute, log)

	sum := initSummarizer(ctx, cfg, limiter, log)

	recognizer, err := initRecognizer(ctx, cfg, limiter, log)
	if err != nil {
		return nil, err
	}

	lexicon, err := tone.DefaultLexicon()
	if err != nil {
		return nil, fmt.Errorf("load tone lexicon: %w", err)
	}
	analyzer := tone.NewLexiconAnalyzer(lexicon)

	db := initDatabase(ctx, cfg, log)

	cache := summarizer.ChainCache{}
	if memory := summarizer.NewMemoryCache(cfg.SummaryCacheSize, cfg.SummaryCacheTTL); memory != nil {
		cache = append(cache, memory)
	}
	if persistent := database.NewSummaryCache(db, cfg.SummaryCacheTTL); persistent != nil {
		cache = append(cache, persistent)
	}

	service := summarizer.NewService(sum, summarizer.Options{
		MaxLength: opts.MaxLength,
		MinLength: opts.MinLength,
		Cache:     cache,
	}, log)

	p := pipeline.New(
		service,
		entities.NewExtractor(recognizer, log),
		tone.NewScorer(analyzer),
		cfg.DocumentTimeout,
		log,
	)

	log.InfoContext(ctx, "Services are initialized",
		"summarizer", sum.Name(),
		"recognizer", recognizer.Name(),
		"analyzer", analyzer.Name(),
		"cacheTiers", len(cache),
		"documentTimeout", cfg.DocumentTimeout)

	return &Services{
		Runner:         batch.NewRunner(p, source.NewReader(log), log),
		SummarizerName: sum.Name(),
		RecognizerName: recognizer.Name(),
		AnalyzerName:   analyzer.Name(),
		db:             db,
		log:            log,
	}, nil
}

func (s *Services) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close summary cache: %w", err)
	}

	return nil
}

func newResponder(
	cfg config.Config,
	name string,
	limiter *ratelimiter.RateLimiter,
	log *slog.Logger,
) (*llm.Responder, error) {
	client, err := llm.NewClient(llm.ClientConfig{
		APIKey:     cfg.OpenAIAPIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		Timeout:    cfg.OpenAITimeout,
		MaxRetries: llm.DefaultMaxRetries,
	})
	if err != nil {
		return nil, err
	}

	breaker := circuitbreaker.New(circuitbreaker.OpenAIConfig(name), log)

	return llm.NewResponder(client, breaker, limiter, log), nil
}

func initSummarizer(
	ctx context.Context,
	cfg config.Config,
	limiter *ratelimiter.RateLimiter,
	log *slog.Logger,
) summarizer.Summarizer {
	if cfg.OpenAIAPIKey == "" {
		log.WarnContext(ctx, "OPENAI_API_KEY is missing so fallback will be used",
			"envVar", "OPENAI_API_KEY",
			"fallback", "extractive")

		return summarizer.NewExtractiveSummarizer()
	}

	responder, err := newResponder(cfg, "openai-summarizer", limiter, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create OpenAI client so fallback will be used",
			"error", err,
			"fallback", "extractive")

		return summarizer.NewExtractiveSummarizer()
	}

	s, err := summarizer.NewOpenAISummarizer(responder, cfg.OpenAIModel)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create OpenAI summarizer so fallback will be used",
			"error", err,
			"model", cfg.OpenAIModel,
			"fallback", "extractive")

		return summarizer.NewExtractiveSummarizer()
	}

	log.InfoContext(ctx, "OpenAI summarizer is initialized",
		"provider", "openai",
		"model", cfg.OpenAIModel)

	return s
}

func initRecognizer(
	ctx context.Context,
	cfg config.Config,
	limiter *ratelimiter.RateLimiter,
	log *slog.Logger,
) (entities.Recognizer, error) {
	if cfg.EntityBackend != config.EntityBackendOpenAI {
		return entities.NewRuleRecognizer(), nil
	}

	responder, err := newResponder(cfg, "openai-entities", limiter, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntityBackendUnavailable, err)
	}

	r, err := entities.NewOpenAIRecognizer(responder, cfg.OpenAIModel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntityBackendUnavailable, err)
	}

	log.InfoContext(ctx, "OpenAI entity recognizer is initialized",
		"provider", "openai",
		"model", cfg.OpenAIModel)

	return r, nil
}

func initDatabase(ctx context.Context, cfg config.Config, log *slog.Logger) *database.Database {
	if cfg.CacheDBPath == "" {
		return nil
	}

	db, err := database.New(ctx, cfg.CacheDBPath, log)
	if err != nil {
		log.WarnContext(ctx, "Failed to open summary cache so it will be skipped",
			"error", err,
			"dbPath", cfg.CacheDBPath)

		return nil
	}

	removed, err := db.DeleteExpiredSummaries(ctx)
	if err != nil {
		log.WarnContext(ctx, "Failed to delete expired summaries",
			"error", err,
			"dbPath", cfg.CacheDBPath)
	} else if removed > 0 {
		log.InfoContext(ctx, "Expired summaries are deleted",
			"count", removed,
			"dbPath", cfg.CacheDBPath)
	}

	return db
}
