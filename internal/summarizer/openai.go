package summarizer

import (
	"context"
	"errors"
	"fmt"

	"textbrief/internal/llm"
)

const (
	// Rough upper bound of tokens per English word plus headroom.
	outputTokensPerWord = 2
	outputTokensSlack   = 64

	instructionsTemplate = `Summarize the text.

Rules:
- Between %d and %d words.
- Keep the parties, dates, amounts and obligations that matter.
- Neutral tone, plain prose, no lists, no preamble.
- Output only the summary, in the same language as the input.`
)

// OpenAISummarizer calls OpenAI's Responses API to produce summaries.
type OpenAISummarizer struct {
	responder *llm.Responder
	model     string
}

func NewOpenAISummarizer(responder *llm.Responder, model string) (*OpenAISummarizer, error) {
	if responder == nil {
		return nil, errors.New("responder is nil")
	}
	if model == "" {
		return nil, errors.New("model is empty")
	}

	return &OpenAISummarizer{
		responder: responder,
		model:     model,
	}, nil
}

func (s *OpenAISummarizer) Name() string {
	return "openai:" + s.model
}

// Summarize produces a single summary sized by input.Bounds.
func (s *OpenAISummarizer) Summarize(ctx context.Context, input Input) (string, error) {
	summary, err := s.responder.Respond(ctx, llm.Request{
		Model:           s.model,
		Instructions:    fmt.Sprintf(instructionsTemplate, input.Bounds.MinLen, input.Bounds.MaxLen),
		Input:           input.Text,
		MaxOutputTokens: int64(input.Bounds.MaxLen*outputTokensPerWord + outputTokensSlack),
	})
	if err != nil {
		return "", fmt.Errorf("respond: %w", err)
	}

	return summary, nil
}
