// Package pipeline builds the report for one document.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"textbrief/internal/domain"
)

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type EntityExtractor interface {
	Extract(ctx context.Context, text string) ([]domain.Entity, error)
}

type ToneScorer interface {
	Score(ctx context.Context, text string) (domain.ToneScore, error)
}

type Pipeline struct {
	summarizer Summarizer
	extractor  EntityExtractor
	scorer     ToneScorer
	timeout    time.Duration
	log        *slog.Logger
}

// New wires the three stages. A positive timeout bounds the whole report of
// one document.
func New(
	s Summarizer,
	e EntityExtractor,
	t ToneScorer,
	timeout time.Duration,
	log *slog.Logger,
) *Pipeline {
	return &Pipeline{
		summarizer: s,
		extractor:  e,
		scorer:     t,
		timeout:    timeout,
		log:        log,
	}
}

// BuildReport runs summary, entities and tone in that order. A failing
// stage is recorded on the report and the remaining stages still run.
func (p *Pipeline) BuildReport(ctx context.Context, doc domain.Document) domain.Report {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	report := domain.Report{Document: doc}

	report.Summary, report.SummaryErr = p.summarizer.Summarize(ctx, doc.Text)
	if report.SummaryErr != nil {
		p.log.WarnContext(ctx, "Failed to summarize document",
			"error", report.SummaryErr,
			"label", doc.Label)
	}

	report.Entities, report.EntitiesErr = p.extractor.Extract(ctx, doc.Text)
	if report.EntitiesErr != nil {
		p.log.WarnContext(ctx, "Failed to extract entities",
			"error", report.EntitiesErr,
			"label", doc.Label)
	}

	report.Tone, report.ToneErr = p.scorer.Score(ctx, doc.Text)
	if report.ToneErr != nil {
		p.log.WarnContext(ctx, "Failed to score tone",
			"error", report.ToneErr,
			"label", doc.Label)
	}

	p.log.InfoContext(ctx, "Document is done",
		"label", doc.Label,
		"entities", len(report.Entities),
		"partial", report.Partial(),
		"duration", time.Since(start))

	return report
}
