package middleware

import "errors"

// ErrRetryExhausted is returned by the retry middleware once every attempt
// failed. It wraps the last provider error as well:
//
//	if errors.Is(err, middleware.ErrRetryExhausted) {
//	    // all retries failed
//	}
var ErrRetryExhausted = errors.New("all retry attempts exhausted")
