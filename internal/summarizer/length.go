package summarizer

import (
	"fmt"
	"strings"

	"textbrief/internal/domain"
)

const (
	DefaultMaxLength = 130
	DefaultMinLength = 30

	// MinWords is the shortest text worth sending to a collaborator.
	MinWords = 30

	maxLengthRatio = 0.7
	minLengthRatio = 0.3
)

// LengthBounds are summary length limits in words.
type LengthBounds struct {
	MaxLen int
	MinLen int
}

func (b LengthBounds) Validate() error {
	switch {
	case b.MaxLen < 1:
		return fmt.Errorf("%w: max %d < 1", domain.ErrInvalidLengthBounds, b.MaxLen)
	case b.MinLen < 0:
		return fmt.Errorf("%w: min %d < 0", domain.ErrInvalidLengthBounds, b.MinLen)
	case b.MinLen >= b.MaxLen:
		return fmt.Errorf("%w: min %d >= max %d", domain.ErrInvalidLengthBounds, b.MinLen, b.MaxLen)
	}

	return nil
}

func WordCount(text string) int {
	return len(strings.Fields(strings.TrimSpace(text)))
}

// ComputeBounds sizes a summary relative to the input length. ok is false
// when the text is too short to summarise and should be used verbatim.
func ComputeBounds(text string, maxLength int, minLength int) (LengthBounds, bool) {
	words := WordCount(text)
	if words < MinWords {
		return LengthBounds{}, false
	}

	b := LengthBounds{
		MaxLen: max(min(maxLength, int(float64(words)*maxLengthRatio)), 0),
		MinLen: max(min(minLength, int(float64(words)*minLengthRatio)), 0),
	}

	return b.clamp(), true
}

// clamp keeps MinLen strictly below MaxLen.
func (b LengthBounds) clamp() LengthBounds {
	if b.MinLen > b.MaxLen-1 {
		b.MinLen = max(b.MaxLen-1, 0)
	}

	return b
}
