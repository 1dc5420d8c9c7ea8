package rate

import "errors"

var (
	// ErrRateLimited reports that the current window's budget is spent.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnavailable reports that the shared counter could not be reached.
	ErrUnavailable = errors.New("rate limiter unavailable")
)
