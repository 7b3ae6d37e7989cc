// Package tone scores polarity and subjectivity of a text.
package tone

import (
	"context"
	"errors"
	"fmt"
	"math"

	"textbrief/internal/domain"
)

const precision = 1000

type Scorer struct {
	analyzer Analyzer
}

func NewScorer(a Analyzer) *Scorer {
	return &Scorer{analyzer: a}
}

// Score is deterministic: the same text always yields the same score.
func (s *Scorer) Score(ctx context.Context, text string) (domain.ToneScore, error) {
	if s.analyzer == nil {
		return domain.ToneScore{}, fmt.Errorf("%w: no analyzer configured", domain.ErrToneUnavailable)
	}

	polarity, subjectivity, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		return domain.ToneScore{}, fmt.Errorf("%w: %s: %w", domain.ErrToneUnavailable, s.analyzer.Name(), err)
	}

	if math.IsNaN(polarity) || math.IsNaN(subjectivity) {
		return domain.ToneScore{}, fmt.Errorf("%w: %s: %w", domain.ErrToneUnavailable, s.analyzer.Name(),
			errors.New("score is NaN"))
	}

	return domain.ToneScore{
		Polarity:     Round(clamp(polarity, -1, 1)),
		Subjectivity: Round(clamp(subjectivity, 0, 1)),
	}, nil
}

// Round rounds to 3 decimal places, half away from zero (0.1235 -> 0.124).
// Python's round uses the binary value and would give 0.123 there.
func Round(v float64) float64 {
	r := math.Round(v*precision) / precision
	if r == 0 {
		return 0
	}

	return r
}
