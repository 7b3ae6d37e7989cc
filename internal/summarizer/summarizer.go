package summarizer

import (
	"context"
)

// Input describes the payload for a summary request.
type Input struct {
	// Text contains the trimmed plain text to summarise.
	Text string
	// Bounds are already clamped and validated.
	Bounds LengthBounds
}

// Summarizer is a summarization collaborator. Implementations return a
// single best candidate and must be deterministic for a given input.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
	// Name identifies the collaborator in logs and cache keys.
	Name() string
}
