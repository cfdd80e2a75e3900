package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps per-identity counters in process memory. State
// resets on restart and is not shared across instances.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	opts    Options
	now     func() time.Time
}

// NewMemoryLimiter constructs an in-process fixed-window limiter.
func NewMemoryLimiter(opts Options) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*windowEntry),
		opts:    opts.withDefaults(),
		now:     time.Now,
	}
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[key]
	if !ok || now.After(entry.resetAt) {
		l.entries[key] = &windowEntry{count: 1, resetAt: now.Add(l.opts.Window)}
		return true, nil
	}
	if entry.count >= l.opts.Max {
		return false, nil
	}
	entry.count++
	return true, nil
}
