package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"
)

// Resilient wraps a provider Client with client-side rate limiting and
// bounded exponential retry on rate-limit and server errors.
type Resilient struct {
	next       Client
	limiter    *rate.Limiter
	maxRetries int
	initial    time.Duration
	maxBackoff time.Duration
	multiplier float64
	logger     *slog.Logger
}

// NewResilient wraps next with the rate and retry policy from cfg.
func NewResilient(next Client, cfg *Config, logger *slog.Logger) *Resilient {
	return &Resilient{
		next:       next,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.Burst, 1)),
		maxRetries: cfg.MaxRetries,
		initial:    cfg.InitialBackoffDuration(),
		maxBackoff: cfg.MaxBackoffDuration(),
		multiplier: cfg.BackoffMultiplier,
		logger:     logger.With("system", "llm", "provider", next.Provider()),
	}
}

func (r *Resilient) Provider() string {
	return r.next.Provider()
}

// Close releases the provider's resources when it holds any.
func (r *Resilient) Close() error {
	if c, ok := r.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Chat issues the call, retrying transient failures up to the configured ceiling.
func (r *Resilient) Chat(ctx context.Context, req Request) (string, error) {
	start := time.Now()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initial
	b.MaxInterval = r.maxBackoff
	b.Multiplier = r.multiplier

	attempt := 0
	op := func() (string, error) {
		attempt++
		if err := r.limiter.Wait(ctx); err != nil {
			return "", backoff.Permanent(fmt.Errorf("rate limiter: %w", err))
		}

		out, err := r.next.Chat(ctx, req)
		if err == nil {
			return out, nil
		}
		if !IsRetryable(err) {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	notify := func(err error, wait time.Duration) {
		r.logger.Warn("llm call failed, retrying", "attempt", attempt, "wait", wait, "error", err)
	}

	out, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(r.maxRetries)+1),
		backoff.WithNotify(notify),
	)

	observeCall(r.Provider(), err, time.Since(start))

	if err != nil {
		if IsRetryable(err) {
			return "", fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempt, err)
		}
		return "", err
	}

	return out, nil
}
