// Package entities wraps named-entity recognition collaborators.
package entities

import (
	"context"
	"fmt"
	"log/slog"

	"textbrief/internal/domain"
)

// Recognizer is a named-entity recognition collaborator. Entities come
// back in document order.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]domain.Entity, error)
	Name() string
}

type Extractor struct {
	recognizer Recognizer
	log        *slog.Logger
}

func NewExtractor(r Recognizer, log *slog.Logger) *Extractor {
	return &Extractor{
		recognizer: r,
		log:        log,
	}
}

// Extract never returns a nil slice on success so "no entities" stays
// distinguishable from a failure.
func (e *Extractor) Extract(ctx context.Context, text string) ([]domain.Entity, error) {
	if e.recognizer == nil {
		return nil, fmt.Errorf("%w: no recognizer configured", domain.ErrExtractionUnavailable)
	}

	found, err := e.recognizer.Recognize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrExtractionUnavailable, e.recognizer.Name(), err)
	}

	if found == nil {
		found = []domain.Entity{}
	}

	e.log.DebugContext(ctx, "Entities extracted",
		"recognizer", e.recognizer.Name(),
		"entityCount", len(found))

	return found, nil
}
