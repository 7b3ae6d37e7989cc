// Package llm holds the OpenAI plumbing shared by the remote analysis
// collaborators: client construction and a Responses API call loop that
// grows the output budget when the model stops on max_output_tokens.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"textbrief/internal/circuitbreaker"
	"textbrief/internal/ratelimiter"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const (
	DefaultMaxOutputTokens int64 = 512
	LimitMaxOutputTokens   int64 = 4096

	DefaultMaxRetries = 2
)

var ErrMissingAPIKey = errors.New("OpenAI API key is missing")

type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// MaxRetries is handed to the SDK's own retry loop; zero disables it.
	MaxRetries int
}

func NewClient(cfg ClientConfig) (openai.Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return openai.Client{}, ErrMissingAPIKey
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(max(cfg.MaxRetries, 0)),
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return openai.NewClient(opts...), nil
}

type Request struct {
	Model           string
	Instructions    string
	Input           string
	MaxOutputTokens int64
}

// Responder issues deterministic (temperature 0) Responses API calls.
type Responder struct {
	client  openai.Client
	breaker *circuitbreaker.CircuitBreaker
	limiter *ratelimiter.RateLimiter
	log     *slog.Logger
}

func NewResponder(
	client openai.Client,
	breaker *circuitbreaker.CircuitBreaker,
	limiter *ratelimiter.RateLimiter,
	log *slog.Logger,
) *Responder {
	return &Responder{
		client:  client,
		breaker: breaker,
		limiter: limiter,
		log:     log,
	}
}

func (r *Responder) Respond(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Input) == "" {
		return "", errors.New("input is empty")
	}

	maxOutputTokens := req.MaxOutputTokens
	if maxOutputTokens <= 0 {
		maxOutputTokens = DefaultMaxOutputTokens
	}
	maxOutputTokens = min(maxOutputTokens, LimitMaxOutputTokens)

	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("wait for rate limiter: %w", err)
		}

		resp, err := circuitbreaker.Execute(r.breaker, func() (*responses.Response, error) {
			return r.client.Responses.New(ctx, responses.ResponseNewParams{
				Model:           req.Model,
				MaxOutputTokens: openai.Int(maxOutputTokens),
				Temperature:     openai.Float(0),
				Instructions:    openai.String(req.Instructions),
				Input: responses.ResponseNewParamsInputUnion{
					OfString: openai.String(req.Input),
				},
			})
		})
		if err != nil {
			return "", fmt.Errorf("do request: %w", err)
		}

		if resp.Status == "incomplete" {
			if resp.IncompleteDetails.Reason == "max_output_tokens" && maxOutputTokens < LimitMaxOutputTokens {
				r.log.DebugContext(ctx, "Response hit output token limit, retrying",
					"model", req.Model,
					"maxOutputTokens", maxOutputTokens)

				maxOutputTokens = min(maxOutputTokens*2, LimitMaxOutputTokens)
				continue
			}

			return "", fmt.Errorf(
				"response is incomplete (reason = %s, maxOutputTokens = %d)",
				resp.IncompleteDetails.Reason,
				maxOutputTokens,
			)
		}

		text := strings.TrimSpace(resp.OutputText())
		if text == "" {
			return "", fmt.Errorf("output text is missing (status = %s)", resp.Status)
		}

		return text, nil
	}
}
