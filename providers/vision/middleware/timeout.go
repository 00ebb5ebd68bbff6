package middleware

import (
	"context"
	"time"

	"github.com/XayHanmonty/id-verification-poc/providers/vision"
)

// NewTimeoutMiddleware gives each Describe call its own deadline. A shorter
// deadline already on the context still wins. Placed inside the retry
// middleware it bounds every attempt separately.
func NewTimeoutMiddleware(timeout time.Duration) vision.Middleware {
	return func(next vision.DescribeFunc) vision.DescribeFunc {
		return func(ctx context.Context, request vision.Request) (*vision.Response, error) {
			if timeout <= 0 {
				return next(ctx, request)
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}
