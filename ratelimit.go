package shopify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// defaultLeakRate is the number of calls the platform restores per
	// second for a standard shop's leaky bucket.
	defaultLeakRate = 2.0

	// defaultBucketCap is the standard call-limit bucket capacity.
	defaultBucketCap = 40

	// CallLimitHeader is the response header carrying bucket state as
	// "used/capacity", for example "32/40".
	CallLimitHeader = "X-Shopify-Shop-Api-Call-Limit"
)

// RateLimitState is a snapshot of the remembered call-limit bucket.
type RateLimitState struct {
	Used       int
	Capacity   int
	Remaining  int
	ObservedAt time.Time
}

// RateLimiter paces outgoing API calls against the platform's leaky
// bucket. A token bucket enforces the leak rate locally, and the bucket
// state reported by response headers is mirrored so that admission is
// based on remembered state rather than a live server check.
//
// It only throttles, never rejects: callers block in Wait until a slot
// is available or the context is canceled.
type RateLimiter struct {
	limiter  *rate.Limiter
	leakRate float64

	mu         sync.Mutex
	used       int
	capacity   int
	observedAt time.Time
	nowFunc    func() time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a rate limiter with the given leak rate (calls
// restored per second) and bucket capacity. Burst equals the bucket
// capacity so an idle client can use the whole bucket at once, exactly
// like the remote bucket allows.
func NewRateLimiter(leakRate float64, capacity int, opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(leakRate), capacity),
		leakRate: leakRate,
		capacity: capacity,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.observedAt = r.nowFunc()
	return r
}

// Wait blocks until the remembered bucket has room and the local token
// bucket admits the call, or the context is canceled. The admitted call
// is counted immediately so concurrent callers cannot over-admit between
// header observations.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if d := r.reserveSlot(); d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	return nil
}

// reserveSlot counts one call against the remembered bucket and returns
// how long the caller must wait for the bucket to drain enough to hold it.
func (r *RateLimiter) reserveSlot() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	r.drainLocked(now)

	r.used++
	if r.used <= r.capacity {
		return 0
	}

	// Bucket overfull: wait until the overflow leaks out.
	over := float64(r.used - r.capacity)
	return time.Duration(over / r.leakRate * float64(time.Second))
}

// Observe updates the remembered bucket state from a call-limit header
// value ("used/capacity"). Malformed values are ignored; the local
// estimate keeps pacing on its own.
func (r *RateLimiter) Observe(header string) {
	used, capacity, ok := parseCallLimit(header)
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.used = used
	r.capacity = capacity
	r.observedAt = r.nowFunc()
}

// Snapshot returns the current bucket state, with the used count drained
// by leak elapsed since the last observation.
func (r *RateLimiter) Snapshot() RateLimitState {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	r.drainLocked(now)

	remaining := r.capacity - r.used
	if remaining < 0 {
		remaining = 0
	}

	return RateLimitState{
		Used:       r.used,
		Capacity:   r.capacity,
		Remaining:  remaining,
		ObservedAt: r.observedAt,
	}
}

// drainLocked leaks the bucket down by the elapsed time. Caller holds mu.
func (r *RateLimiter) drainLocked(now time.Time) {
	elapsed := now.Sub(r.observedAt)
	if elapsed <= 0 {
		return
	}

	leaked := int(elapsed.Seconds() * r.leakRate)
	if leaked == 0 {
		return
	}

	r.used -= leaked
	if r.used < 0 {
		r.used = 0
	}
	r.observedAt = now
}

// parseCallLimit parses a "used/capacity" header value.
func parseCallLimit(s string) (used, capacity int, ok bool) {
	before, after, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		return 0, 0, false
	}

	used, err := strconv.Atoi(before)
	if err != nil {
		return 0, 0, false
	}

	capacity, err = strconv.Atoi(after)
	if err != nil || capacity <= 0 {
		return 0, 0, false
	}

	return used, capacity, true
}
