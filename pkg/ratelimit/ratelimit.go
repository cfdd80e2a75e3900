// Package ratelimit bounds how many submissions a single identity may
// make inside a fixed time window. This is advisory throttling to deter
// casual spam, not an abuse-resistance guarantee.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether an identity may perform another action now.
type Limiter interface {
	// Allow records an attempt for the key and reports whether it is
	// within the configured limit.
	Allow(ctx context.Context, key string) (bool, error)
}

// Options tune the fixed-window algorithm.
type Options struct {
	Max    int
	Window time.Duration
}

func (o Options) withDefaults() Options {
	if o.Max <= 0 {
		o.Max = 5
	}
	if o.Window <= 0 {
		o.Window = 10 * time.Minute
	}
	return o
}
