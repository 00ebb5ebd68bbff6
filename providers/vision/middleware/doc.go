// Package middleware provides vision.Middleware implementations: retries
// with exponential backoff, per-call deadlines and slog request logging.
//
//	provider = vision.Chain(provider,
//	    middleware.NewLoggingMiddleware(logger, middleware.LogLevelStandard),
//	    middleware.NewRetryMiddleware(middleware.RetryConfig{}),
//	    middleware.NewTimeoutMiddleware(60*time.Second),
//	)
package middleware
