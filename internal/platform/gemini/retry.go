package gemini

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/easybiz/easybiz-api/internal/generation"
	"google.golang.org/genai"
)

const defaultRetryDelay = 2 * time.Second

// withRetry runs call up to maxRetries+1 times, sleeping with exponential
// backoff and jitter between attempts. Only transient errors are retried.
func (g *Generator) withRetry(ctx context.Context, operation string, call func(ctx context.Context) error) error {
	maxRetries := g.maxRetries
	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "Invalid max retries value, not retrying", "max_retries", maxRetries)
		maxRetries = 0
	}

	baseDelay := g.retryDelay
	if baseDelay <= 0 {
		baseDelay = defaultRetryDelay
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		g.logger.DebugContext(ctx, "Making Gemini API call",
			"operation", operation,
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		err := call(ctx)
		if err == nil {
			return nil
		}

		if !isTransient(err) {
			g.logger.WarnContext(ctx, "Permanent error occurred, not retrying",
				"operation", operation,
				"attempt", attemptNum,
				"error", err)
			return err
		}

		if attempt >= maxRetries {
			return fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * 2^attempt * [0.5, 1.0)
		backoff := float64(baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		g.logger.InfoContext(ctx, "Retrying Gemini API call after delay",
			"operation", operation,
			"attempt", attemptNum,
			"delay_ms", delay.Milliseconds(),
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// isTransient reports whether err may succeed when the same call is repeated.
func isTransient(err error) bool {
	switch {
	case errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, ErrEmptyPrompt),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests ||
			apiErr.Code == http.StatusRequestTimeout ||
			apiErr.Code >= http.StatusInternalServerError
	}

	// Network-level failures carry no status code.
	return true
}
