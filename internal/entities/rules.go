package entities

import (
	"cmp"
	"context"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"textbrief/internal/domain"

	"mvdan.cc/xurls/v2"
)

const (
	LabelURL     = "URL"
	LabelEmail   = "EMAIL"
	LabelMoney   = "MONEY"
	LabelPercent = "PERCENT"
	LabelDate    = "DATE"
	LabelLaw     = "LAW"
	LabelOrg     = "ORG"
	LabelPerson  = "PERSON"
	LabelGPE     = "GPE"
	LabelFac     = "FAC"
	LabelMisc    = "MISC"
)

const (
	month      = `(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan\.|Feb\.|Mar\.|Apr\.|Jun\.|Jul\.|Aug\.|Sept?\.|Oct\.|Nov\.|Dec\.)`
	number     = `\d+(?:,\d{3})*(?:\.\d+)?`
	spelledNum = `(?:one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|fifteen|twenty|thirty|forty|forty-five|sixty|ninety)`
)

var (
	emailRe   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	moneyRe   = regexp.MustCompile(`[$€£]\s?` + number + `(?:\s?(?:million|billion|thousand))?|\b` + number + `\s?(?:dollars|USD|EUR|euros|pounds|GBP)\b`)
	percentRe = regexp.MustCompile(`\b` + number + `(?:%|\s?percent\b)`)
	dateRe    = regexp.MustCompile(
		`\b` + month + `\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b` +
			`|\b\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?` + month + `,?\s+\d{4}\b` +
			`|\b` + month + `\s+\d{4}\b` +
			`|\b\d{4}-\d{2}-\d{2}\b` +
			`|\b\d{1,2}/\d{1,2}/\d{2,4}\b` +
			`|\b(?:\d+|` + spelledNum + `)(?:\s+\(\d+\))?\s+(?:calendar\s+|business\s+)?(?:days?|weeks?|months?|years?)\b`)
	lawRe  = regexp.MustCompile(`(?:\b(?:Section|Sec\.|Article|Art\.|Clause|Rule)|§)\s*\d+[A-Za-z0-9]*(?:\(\w+\))*`)
	wordRe = regexp.MustCompile(`[\p{L}\d][\p{L}\d'’&.\-]*`)
)

type pattern struct {
	re       *regexp.Regexp
	label    string
	priority int
}

type span struct {
	start    int
	end      int
	label    string
	priority int
}

// RuleRecognizer finds entities with patterns and capitalisation
// heuristics. It needs no model and is safe for concurrent use.
type RuleRecognizer struct {
	patterns []pattern
}

func NewRuleRecognizer() *RuleRecognizer {
	return &RuleRecognizer{
		patterns: []pattern{
			{re: emailRe, label: LabelEmail, priority: 0},
			{re: xurls.Strict(), label: LabelURL, priority: 1},
			{re: moneyRe, label: LabelMoney, priority: 2},
			{re: percentRe, label: LabelPercent, priority: 2},
			{re: dateRe, label: LabelDate, priority: 3},
			{re: lawRe, label: LabelLaw, priority: 3},
		},
	}
}

func (r *RuleRecognizer) Name() string {
	return "rules"
}

func (r *RuleRecognizer) Recognize(_ context.Context, text string) ([]domain.Entity, error) {
	var spans []span

	for _, p := range r.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: loc[0], end: loc[1], label: p.label, priority: p.priority})
		}
	}

	spans = append(spans, capitalizedSpans(text)...)

	found := make([]domain.Entity, 0, len(spans))
	for _, s := range resolveOverlaps(spans) {
		surface := strings.TrimSpace(text[s.start:s.end])
		if surface == "" {
			continue
		}

		found = append(found, domain.Entity{Text: surface, Label: s.label})
	}

	return found, nil
}

// resolveOverlaps keeps, left to right, the longest span at each start
// position and drops anything overlapping an already kept span.
func resolveOverlaps(spans []span) []span {
	slices.SortFunc(spans, func(a, b span) int {
		return cmp.Or(
			cmp.Compare(a.start, b.start),
			cmp.Compare(b.end-b.start, a.end-a.start),
			cmp.Compare(a.priority, b.priority),
		)
	})

	kept := make([]span, 0, len(spans))
	lastEnd := 0
	for _, s := range spans {
		if s.start < lastEnd {
			continue
		}

		kept = append(kept, s)
		lastEnd = s.end
	}

	return kept
}

type token struct {
	start int
	end   int
	word  string
}

func capitalizedSpans(text string) []span {
	locs := wordRe.FindAllStringIndex(text, -1)
	toks := make([]token, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		word := text[start:end]

		// A trailing period belongs to the sentence unless the word is a
		// known abbreviation.
		if strings.HasSuffix(word, ".") && !in(keepPeriod, word) {
			word = strings.TrimRight(word, ".")
			end = start + len(word)
		}

		toks = append(toks, token{start: start, end: end, word: word})
	}

	var spans []span
	for i := 0; i < len(toks); {
		if !isCapitalized(toks[i].word) {
			i++
			continue
		}

		last := i
		for j := i + 1; j < len(toks); j++ {
			if endsSentence(text, toks[j-1].end) || !onlySpaceBetween(text, toks[j-1].end, toks[j].start) {
				break
			}
			if isCapitalized(toks[j].word) {
				last = j
				continue
			}
			if !in(connectors, toks[j].word) {
				break
			}
		}

		spans = append(spans, classify(text, toks[i:last+1])...)
		i = last + 1
	}

	return spans
}

func classify(text string, toks []token) []span {
	sentenceStart := startsSentence(text, toks[0].start)

	if len(toks) > 1 && (toks[0].word == "The" ||
		sentenceStart && in(sentenceOpeners, strings.ToLower(toks[0].word))) {
		toks = toks[1:]
	}

	if in(honorifics, toks[0].word) {
		name := toks[1:]
		for k, t := range name {
			if in(connectors, t.word) {
				rest := name[k:]
				for len(rest) > 0 && in(connectors, rest[0].word) {
					rest = rest[1:]
				}
				name = name[:k]

				spans := []span{}
				if len(name) > 0 {
					spans = append(spans, spanOf(name, LabelPerson))
				}
				if len(rest) > 0 {
					spans = append(spans, classify(text, rest)...)
				}

				return spans
			}
		}

		if len(name) == 0 {
			return nil
		}

		return []span{spanOf(name, LabelPerson)}
	}

	words := make([]string, len(toks))
	for i, t := range toks {
		words[i] = t.word
	}
	phrase := strings.Join(words, " ")
	lastWord := words[len(words)-1]

	switch {
	case in(places, phrase):
		return []span{spanOf(toks, LabelGPE)}
	case in(orgSuffixes, lastWord) && len(toks) > 1:
		return []span{spanOf(toks, LabelOrg)}
	case in(lawSuffixes, lastWord) && len(toks) > 1:
		return []span{spanOf(toks, LabelLaw)}
	case in(facilitySuffixes, lastWord) && len(toks) > 1:
		return []span{spanOf(toks, LabelFac)}
	}

	if len(toks) == 1 {
		word := toks[0].word
		switch {
		case in(calendarWords, word) && !isMonth(word):
			return []span{spanOf(toks, LabelDate)}
		case isAcronym(word) && !sentenceStart:
			return []span{spanOf(toks, LabelOrg)}
		}

		return nil
	}

	if in(calendarWords, toks[0].word) {
		return nil
	}

	for _, t := range toks {
		if in(connectors, t.word) {
			return []span{spanOf(toks, LabelOrg)}
		}
	}

	if len(toks) <= 3 && allTitleCase(words) {
		return []span{spanOf(toks, LabelPerson)}
	}

	return []span{spanOf(toks, LabelMisc)}
}

func spanOf(toks []token, label string) span {
	return span{start: toks[0].start, end: toks[len(toks)-1].end, label: label, priority: 5}
}

func isCapitalized(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}

func isAcronym(word string) bool {
	letters := 0
	for _, r := range word {
		switch {
		case unicode.IsUpper(r):
			letters++
		case r == '.' || r == '&':
		default:
			return false
		}
	}

	return letters >= 2 && letters <= 6
}

func isMonth(word string) bool {
	switch word {
	case "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday":
		return false
	}

	return in(calendarWords, word)
}

func allTitleCase(words []string) bool {
	for _, w := range words {
		if isAcronym(w) {
			return false
		}

		rest := []rune(w)[1:]
		for _, r := range rest {
			if unicode.IsUpper(r) {
				return false
			}
		}
	}

	return true
}

func onlySpaceBetween(text string, from int, to int) bool {
	if from >= to {
		return from == to
	}

	gap := text[from:to]
	if strings.Contains(gap, "\n\n") {
		return false
	}

	return strings.TrimSpace(gap) == ""
}

func endsSentence(text string, end int) bool {
	if end >= len(text) {
		return false
	}

	switch text[end] {
	case '.', '!', '?', ';', ':':
		return true
	}

	return false
}

func startsSentence(text string, start int) bool {
	before := strings.TrimRightFunc(text[:start], unicode.IsSpace)
	if before == "" {
		return true
	}

	r, _ := utf8.DecodeLastRuneInString(before)
	switch r {
	case '.', '!', '?', '"', '“', '(', ':', ';', '-', '•', '*':
		return true
	}

	return strings.HasSuffix(text[:start], "\n")
}
