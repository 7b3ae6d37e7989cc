package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

const burst = 1

// RateLimiter paces outbound collaborator calls. A nil *RateLimiter never waits.
type RateLimiter struct {
	name    string
	limiter *rate.Limiter
	log     *slog.Logger
}

func New(name string, requestsPerMinute int, log *slog.Logger) *RateLimiter {
	if requestsPerMinute <= 0 {
		return nil
	}

	return &RateLimiter{
		name:    name,
		limiter: rate.NewLimiter(perMinute(requestsPerMinute), burst),
		log:     log,
	}
}

func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil {
		return nil
	}

	reservation := rl.limiter.Reserve()
	if !reservation.OK() {
		return rl.limiter.Wait(ctx)
	}

	delay := reservation.Delay()
	if delay <= 0 {
		return nil
	}

	rl.log.DebugContext(ctx, "Rate limiting collaborator call",
		"collaborator", rl.name,
		"delay", delay)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		reservation.Cancel()

		return ctx.Err()
	}
}

func perMinute(requests int) rate.Limit {
	return rate.Every(time.Minute / time.Duration(requests))
}
