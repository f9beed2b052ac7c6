package httputil

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Rate-limit headers sent by GitHub.
const (
	HeaderRateLimitReset = "X-RateLimit-Reset"
	HeaderRetryAfter     = "Retry-After"
)

// RateLimitReset returns when the rate limit reported in h lifts.
// X-RateLimit-Reset (epoch seconds) wins over Retry-After (seconds from now).
// ok is false when neither header holds a usable number.
func RateLimitReset(h http.Header, now time.Time) (reset time.Time, ok bool) {
	if v := strings.TrimSpace(h.Get(HeaderRateLimitReset)); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil && epoch > 0 {
			return time.Unix(epoch, 0).UTC(), true
		}
	}
	if v := strings.TrimSpace(h.Get(HeaderRetryAfter)); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return now.UTC().Add(time.Duration(secs) * time.Second), true
		}
	}
	return time.Time{}, false
}
