package tone

import (
	"context"
	"regexp"
	"strings"
)

const (
	negationFactor = -0.5

	// Modifiers stop applying after this many plain words.
	modifierWindow = 2
)

var tokenRe = regexp.MustCompile(`[\p{L}']+|[.!?;,]`)

// Analyzer is a sentiment collaborator.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (polarity float64, subjectivity float64, err error)
	Name() string
}

// LexiconAnalyzer averages lexicon assessments over the text. Intensifiers
// scale the next assessed word and negations flip it by -0.5.
type LexiconAnalyzer struct {
	lexicon *Lexicon
}

func NewLexiconAnalyzer(lexicon *Lexicon) *LexiconAnalyzer {
	return &LexiconAnalyzer{lexicon: lexicon}
}

func (a *LexiconAnalyzer) Name() string {
	return "lexicon"
}

func (a *LexiconAnalyzer) Analyze(_ context.Context, text string) (float64, float64, error) {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")

	var (
		polaritySum     float64
		subjectivitySum float64
		assessed        int

		intensity = 1.0
		negated   bool
		gap       int
	)

	reset := func() {
		intensity = 1.0
		negated = false
		gap = 0
	}

	for _, tok := range tokenRe.FindAllString(text, -1) {
		tok = strings.Trim(tok, "'")

		switch {
		case tok == "":
		case strings.ContainsAny(tok, ".!?;,"):
			reset()
		case a.lexicon.isNegation(tok):
			negated = true
			gap = 0
		case a.lexicon.Intensifiers[tok] > 0:
			intensity *= a.lexicon.Intensifiers[tok]
			gap = 0
		default:
			assessment, ok := a.lexicon.Words[tok]
			if !ok {
				gap++
				if gap > modifierWindow {
					reset()
				}
				continue
			}

			polarity := assessment.Polarity * intensity
			subjectivity := assessment.Subjectivity * intensity
			if negated {
				polarity *= negationFactor
			}

			polaritySum += clamp(polarity, -1, 1)
			subjectivitySum += clamp(subjectivity, 0, 1)
			assessed++
			reset()
		}
	}

	if assessed == 0 {
		return 0, 0, nil
	}

	return polaritySum / float64(assessed), subjectivitySum / float64(assessed), nil
}

func clamp(v float64, lo float64, hi float64) float64 {
	return min(max(v, lo), hi)
}
