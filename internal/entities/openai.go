package entities

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"textbrief/internal/domain"
	"textbrief/internal/llm"

	"github.com/tidwall/gjson"
)

const (
	recognizerMaxOutputTokens int64 = 1024

	recognizerInstructions = `Extract the named entities from the text.

Rules:
- Reply with JSON only: {"entities":[{"text":"...","label":"..."}]}.
- "text" is copied verbatim from the input.
- "label" is one of PERSON, ORG, GPE, LOC, FAC, NORP, LAW, DATE, TIME, MONEY, PERCENT, QUANTITY, EVENT, PRODUCT, WORK_OF_ART.
- List entities in order of appearance; repeat an entity each time it appears.
- Reply {"entities":[]} when there are none.`
)

// OpenAIRecognizer asks a Responses API model for entities.
type OpenAIRecognizer struct {
	responder *llm.Responder
	model     string
}

func NewOpenAIRecognizer(responder *llm.Responder, model string) (*OpenAIRecognizer, error) {
	if responder == nil {
		return nil, errors.New("responder is nil")
	}
	if model == "" {
		return nil, errors.New("model is empty")
	}

	return &OpenAIRecognizer{responder: responder, model: model}, nil
}

func (r *OpenAIRecognizer) Name() string {
	return "openai:" + r.model
}

func (r *OpenAIRecognizer) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.Entity{}, nil
	}

	out, err := r.responder.Respond(ctx, llm.Request{
		Model:           r.model,
		Instructions:    recognizerInstructions,
		Input:           text,
		MaxOutputTokens: recognizerMaxOutputTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("respond: %w", err)
	}

	return parseEntities(text, out)
}

type locatedEntity struct {
	offset int
	entity domain.Entity
}

// parseEntities decodes the model reply and orders entities by where
// they occur in text. Entities not present verbatim are dropped.
func parseEntities(text string, reply string) ([]domain.Entity, error) {
	payload := stripCodeFence(reply)
	if !gjson.Valid(payload) {
		return nil, fmt.Errorf("reply is not valid JSON: %q", truncate(payload, 80))
	}

	list := gjson.Get(payload, "entities")
	if !list.IsArray() {
		return nil, errors.New(`reply has no "entities" array`)
	}

	var located []locatedEntity
	cursor := make(map[string]int)

	list.ForEach(func(_, item gjson.Result) bool {
		surface := strings.TrimSpace(item.Get("text").String())
		label := strings.ToUpper(strings.TrimSpace(item.Get("label").String()))
		if surface == "" || label == "" {
			return true
		}

		from := cursor[surface]
		idx := strings.Index(text[from:], surface)
		if idx < 0 {
			return true
		}

		offset := from + idx
		cursor[surface] = offset + len(surface)
		located = append(located, locatedEntity{offset: offset, entity: domain.Entity{Text: surface, Label: label}})

		return true
	})

	slices.SortStableFunc(located, func(a, b locatedEntity) int {
		return cmp.Compare(a.offset, b.offset)
	})

	found := make([]domain.Entity, len(located))
	for i, l := range located {
		found[i] = l.entity
	}

	return found, nil
}

func stripCodeFence(reply string) string {
	s := strings.TrimSpace(reply)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n]) + "..."
}
