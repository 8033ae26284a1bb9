// Package ratelimit bounds claim attempts per account. Claims pull value
// from the caller, so an unthrottled claim endpoint is a cheap way to grind
// the registrar and the funds medium.
package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	Limit     int
}

// Store tracks request counts per key over a sliding window.
type Store interface {
	// Allow checks if a request is allowed and increments the counter.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
	// Reset clears the counter for a key.
	Reset(ctx context.Context, key string) error
}
