package tone

import (
	_ "embed"
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexicon []byte

type Assessment struct {
	Polarity     float64 `yaml:"polarity"`
	Subjectivity float64 `yaml:"subjectivity"`
}

type Lexicon struct {
	Negations    []string              `yaml:"negations"`
	Intensifiers map[string]float64    `yaml:"intensifiers"`
	Words        map[string]Assessment `yaml:"words"`

	negations map[string]struct{}
}

func DefaultLexicon() (*Lexicon, error) {
	return ParseLexicon(defaultLexicon)
}

func ParseLexicon(raw []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(raw, &lex); err != nil {
		return nil, fmt.Errorf("unmarshal lexicon: %w", err)
	}

	if len(lex.Words) == 0 {
		return nil, errors.New("lexicon has no words")
	}

	for word, a := range lex.Words {
		if math.IsNaN(a.Polarity) || a.Polarity < -1 || a.Polarity > 1 {
			return nil, fmt.Errorf("word %q: polarity %v out of range", word, a.Polarity)
		}
		if math.IsNaN(a.Subjectivity) || a.Subjectivity < 0 || a.Subjectivity > 1 {
			return nil, fmt.Errorf("word %q: subjectivity %v out of range", word, a.Subjectivity)
		}
	}

	for word, factor := range lex.Intensifiers {
		if factor <= 0 {
			return nil, fmt.Errorf("intensifier %q: factor %v must be positive", word, factor)
		}
	}

	lex.negations = make(map[string]struct{}, len(lex.Negations))
	for _, n := range lex.Negations {
		lex.negations[n] = struct{}{}
	}

	return &lex, nil
}

func (l *Lexicon) isNegation(token string) bool {
	if _, ok := l.negations[token]; ok {
		return true
	}

	return len(token) > 3 && token[len(token)-3:] == "n't"
}
