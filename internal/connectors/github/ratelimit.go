package github

import (
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
)

// RateLimitState records the most recent rate limit headers so that a
// rejected call can report when the quota resets. It does not throttle.
type RateLimitState struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
	known     bool
}

// NewRateLimitState creates an empty rate limit state.
func NewRateLimitState() *RateLimitState {
	return &RateLimitState{}
}

// Update records the rate parsed by go-github from a response.
func (r *RateLimitState) Update(resp *gh.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.remaining = resp.Rate.Remaining
	r.limit = resp.Rate.Limit
	r.resetTime = resp.Rate.Reset.Time
	r.known = true
}

// Error builds a RateLimitError from the recorded state.
func (r *RateLimitState) Error() *RateLimitError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &RateLimitError{
		ResetAt:   r.resetTime,
		Remaining: r.remaining,
		Limit:     r.limit,
	}
}

// Remaining returns the current remaining quota, or -1 when unknown.
func (r *RateLimitState) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.known {
		return -1
	}
	return r.remaining
}

// Limit returns the rate limit.
func (r *RateLimitState) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// ResetTime returns the rate limit reset time.
func (r *RateLimitState) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}
