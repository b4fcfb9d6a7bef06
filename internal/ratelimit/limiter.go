// package ratelimit implements the per-identity sliding-window counters that
// gate every API operation.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of one admission check. Derived per call, never
// stored.
type Decision struct {
	Allowed   bool          `json:"allowed"`
	Remaining int           `json:"remaining"`
	ResetIn   time.Duration `json:"resetIn"`
}

// Limiter tracks request timestamps per bucket key. Buckets combine an
// operation name and a caller identity so different operations and
// different callers never share quota.
type Limiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	now     func() time.Time
}

// NewLimiter creates an empty limiter. Call [Limiter.StartSweep] in
// long-running processes to bound memory.
func NewLimiter() *Limiter {
	return &Limiter{
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Check prunes the bucket's window to [now-windowMS, now] and admits the
// request if fewer than maxRequests remain. Check-and-record is atomic:
// concurrent calls against the same bucket can never both take the last
// slot.
func (l *Limiter) Check(bucketKey string, windowMS, maxRequests int) Decision {
	window := time.Duration(windowMS) * time.Millisecond

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-window)

	timestamps := l.windows[bucketKey]
	kept := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) < maxRequests {
		kept = append(kept, now)
		l.windows[bucketKey] = kept
		return Decision{
			Allowed:   true,
			Remaining: maxRequests - len(kept),
			ResetIn:   window,
		}
	}

	l.windows[bucketKey] = kept
	return Decision{
		Allowed:   false,
		Remaining: 0,
		ResetIn:   window - now.Sub(kept[0]),
	}
}

// StartSweep runs a background loop that drops buckets idle for longer than
// idleFor, returning when ctx is cancelled. idleFor should be at least the
// largest configured window.
func (l *Limiter) StartSweep(ctx context.Context, interval, idleFor time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.sweep(idleFor)
			}
		}
	}()
}

// sweep removes buckets whose newest timestamp is older than idleFor.
func (l *Limiter) sweep(idleFor time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idleFor)
	for key, timestamps := range l.windows {
		if len(timestamps) == 0 || timestamps[len(timestamps)-1].Before(cutoff) {
			delete(l.windows, key)
		}
	}
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
