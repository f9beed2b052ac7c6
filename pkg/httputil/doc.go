// Package httputil provides small HTTP helpers shared by upstream clients.
//
//   - [Retry]: retries transient failures with exponential backoff
//   - [RateLimitReset]: reads when an upstream rate limit lifts
//
// # Retry
//
// Only errors wrapped in [RetryableError] are retried. Clients wrap
// transport failures so that a refused connection is retried while a
// well-formed answer from upstream is returned immediately:
//
//	err := httputil.Retry(ctx, 3, 200*time.Millisecond, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
//
// # Rate limits
//
// GitHub reports the end of a rate-limit window as epoch seconds in
// X-RateLimit-Reset. Secondary limits send Retry-After in seconds instead.
// [RateLimitReset] understands both.
package httputil
