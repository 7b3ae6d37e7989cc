package summarizer

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"unicode"
)

const truncationSuffix = "..."

// ExtractiveSummarizer picks the highest scoring sentences by term
// frequency. It runs locally and is used when no remote summarizer is
// configured.
type ExtractiveSummarizer struct{}

func NewExtractiveSummarizer() *ExtractiveSummarizer {
	return &ExtractiveSummarizer{}
}

func (s *ExtractiveSummarizer) Name() string {
	return "extractive"
}

type scoredSentence struct {
	index int
	text  string
	words int
	score float64
}

func (s *ExtractiveSummarizer) Summarize(_ context.Context, input Input) (string, error) {
	if err := input.Bounds.Validate(); err != nil {
		return "", err
	}

	sentences := SplitSentences(input.Text)
	if len(sentences) == 0 {
		return "", errors.New("input has no sentences")
	}

	freq := termFrequencies(input.Text)

	scored := make([]scoredSentence, len(sentences))
	for i, sentence := range sentences {
		scored[i] = scoredSentence{
			index: i,
			text:  sentence,
			words: WordCount(sentence),
			score: sentenceScore(sentence, freq),
		}
	}

	ranked := slices.Clone(scored)
	slices.SortStableFunc(ranked, func(a, b scoredSentence) int {
		return cmp.Compare(b.score, a.score)
	})

	var picked []scoredSentence
	total := 0
	for _, sentence := range ranked {
		if total >= input.Bounds.MinLen && len(picked) > 0 {
			break
		}
		if total+sentence.words > input.Bounds.MaxLen {
			continue
		}

		picked = append(picked, sentence)
		total += sentence.words
	}

	if len(picked) == 0 {
		return truncateWords(ranked[0].text, input.Bounds.MaxLen), nil
	}

	slices.SortFunc(picked, func(a, b scoredSentence) int {
		return cmp.Compare(a.index, b.index)
	})

	parts := make([]string, len(picked))
	for i, sentence := range picked {
		parts[i] = sentence.text
	}

	return strings.Join(parts, " "), nil
}

// SplitSentences breaks text on terminal punctuation followed by
// whitespace and on blank lines.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.Join(strings.Fields(current.String()), " ")
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	runes := []rune(strings.TrimSpace(text))
	for i, r := range runes {
		current.WriteRune(r)

		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch {
		case isTerminal(r) && (next == 0 || unicode.IsSpace(next)) && !endsWithAbbreviation(current.String()):
			flush()
		case r == '\n' && next == '\n':
			flush()
		}
	}
	flush()

	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

var abbreviations = []string{
	"mr.", "mrs.", "ms.", "dr.", "prof.", "inc.", "ltd.", "co.", "corp.",
	"no.", "v.", "vs.", "e.g.", "i.e.", "u.s.", "st.", "jr.", "sr.", "art.", "sec.",
}

func endsWithAbbreviation(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}

	last := strings.ToLower(fields[len(fields)-1])
	last = strings.TrimLeftFunc(last, func(r rune) bool { return !unicode.IsLetter(r) })

	return slices.Contains(abbreviations, last)
}

func tokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if f == "" {
			continue
		}
		out = append(out, f)
	}

	return out
}

func termFrequencies(text string) map[string]float64 {
	freq := make(map[string]float64)
	var highest float64

	for _, token := range tokens(text) {
		if isStopword(token) {
			continue
		}
		freq[token]++
		highest = max(highest, freq[token])
	}

	if highest == 0 {
		return freq
	}

	for token := range freq {
		freq[token] /= highest
	}

	return freq
}

func sentenceScore(sentence string, freq map[string]float64) float64 {
	toks := tokens(sentence)
	if len(toks) == 0 {
		return 0
	}

	var score float64
	for _, token := range toks {
		score += freq[token]
	}

	return score / float64(len(toks))
}

func truncateWords(text string, limit int) string {
	fields := strings.Fields(text)
	if len(fields) <= limit {
		return strings.Join(fields, " ")
	}

	return strings.Join(fields[:limit], " ") + truncationSuffix
}
