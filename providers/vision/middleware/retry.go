package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net"
	"regexp"
	"time"

	"github.com/XayHanmonty/id-verification-poc/internal/utils"
	"github.com/XayHanmonty/id-verification-poc/providers/vision"
)

// RetryConfig tunes the retry middleware. Zero values take the defaults
// given per field.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first failure. Default: 2.
	// A negative value disables retries.
	MaxRetries int

	// InitialBackoff is the wait before the first retry. Default: 1s.
	InitialBackoff time.Duration

	// MaxBackoff caps the computed backoff. Default: 30s.
	MaxBackoff time.Duration

	// BackoffFactor is the exponential growth of the backoff. Default: 2.
	BackoffFactor float64

	// JitterFraction adds up to this fraction of the backoff at random.
	// Default: 0.1.
	JitterFraction float64

	// RetryableFunc reports whether err is worth another attempt. The
	// default is IsRetryable.
	RetryableFunc func(error) bool
}

var retryableStatus = map[int]bool{429: true, 500: true, 502: true, 503: true, 529: true}

// retryableStatusText finds a retryable status code standing on its own in
// an error message, so "Error 503:" matches and a port such as ":5000" does
// not.
var retryableStatusText = regexp.MustCompile(`\b(429|500|502|503|529)\b`)

// IsRetryable is the default RetryableFunc. Status codes are read from
// *utils.HTTPError. Network errors and per-attempt deadlines are retried;
// cancellation and empty responses are not. Other errors, such as those of
// the Gemini SDK, are matched on a status code in their text.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, vision.ErrEmptyResponse) || errors.Is(err, context.Canceled) {
		return false
	}

	var httpErr *utils.HTTPError
	if errors.As(err, &httpErr) {
		return retryableStatus[httpErr.StatusCode]
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return retryableStatusText.MatchString(err.Error())
}

func applyRetryDefaults(config *RetryConfig) {
	switch {
	case config.MaxRetries == 0:
		config.MaxRetries = 2
	case config.MaxRetries < 0:
		config.MaxRetries = 0
	}
	if config.InitialBackoff == 0 {
		config.InitialBackoff = time.Second
	}
	if config.MaxBackoff == 0 {
		config.MaxBackoff = 30 * time.Second
	}
	if config.BackoffFactor == 0 {
		config.BackoffFactor = 2.0
	}
	if config.JitterFraction == 0 {
		config.JitterFraction = 0.1
	}
	if config.RetryableFunc == nil {
		config.RetryableFunc = IsRetryable
	}
}

// computeBackoff returns min(InitialBackoff * BackoffFactor^attempt, MaxBackoff)
// plus jitter, for a 0-indexed attempt.
func computeBackoff(config RetryConfig, attempt int) time.Duration {
	base := float64(config.InitialBackoff) * math.Pow(config.BackoffFactor, float64(attempt))
	if base > float64(config.MaxBackoff) {
		base = float64(config.MaxBackoff)
	}

	jitter := base * config.JitterFraction * rand.Float64() //nolint:gosec // non-cryptographic jitter
	return time.Duration(base + jitter)
}

// NewRetryMiddleware retries failed Describe calls with exponential backoff.
// Non-retryable errors are returned immediately. On exhaustion the error
// wraps both ErrRetryExhausted and the last provider error.
func NewRetryMiddleware(config RetryConfig) vision.Middleware {
	applyRetryDefaults(&config)

	return func(next vision.DescribeFunc) vision.DescribeFunc {
		return func(ctx context.Context, request vision.Request) (*vision.Response, error) {
			var lastErr error

			for attempt := 0; attempt <= config.MaxRetries; attempt++ {
				if attempt > 0 {
					select {
					case <-ctx.Done():
						return nil, ctx.Err()
					case <-time.After(computeBackoff(config, attempt-1)):
					}
				}

				response, err := next(ctx, request)
				if err == nil {
					return response, nil
				}
				lastErr = err

				if !config.RetryableFunc(err) {
					return response, err
				}
			}

			return nil, fmt.Errorf("%w after %d retries: %w", ErrRetryExhausted, config.MaxRetries, lastErr)
		}
	}
}
