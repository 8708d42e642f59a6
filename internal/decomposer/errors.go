package decomposer

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultRetryAfter applies when a provider sends no usable Retry-After.
const DefaultRetryAfter = time.Minute

// RateLimitError reports that a provider refused a batch of lines with HTTP
// 429. The fallback chain keeps that provider's circuit open for RetryAfter.
type RateLimitError struct {
	Provider   string
	Lines      int
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited on %d line(s), retry after %s: %v", e.Provider, e.Lines, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError builds a RateLimitError for a batch of lines. A
// non-positive retryAfter becomes DefaultRetryAfter.
func NewRateLimitError(provider string, lines int, err error, retryAfter time.Duration) *RateLimitError {
	if retryAfter <= 0 {
		retryAfter = DefaultRetryAfter
	}
	return &RateLimitError{Provider: provider, Lines: lines, RetryAfter: retryAfter, Err: err}
}

// RetryAfter reads a Retry-After header given either in seconds or as an
// HTTP date. It returns zero when the header is absent, malformed or past.
func RetryAfter(h http.Header, now time.Time) time.Duration {
	val := strings.TrimSpace(h.Get("Retry-After"))
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(val); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
