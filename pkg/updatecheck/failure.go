package updatecheck

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
	"github.com/t1nkr/releasecache/pkg/httputil"
	"github.com/t1nkr/releasecache/pkg/integrations"
	"github.com/t1nkr/releasecache/pkg/integrations/github"
	"github.com/t1nkr/releasecache/pkg/observability"
	"github.com/t1nkr/releasecache/pkg/repository"
)

const (
	msgTimeout  = "Request to GitHub timed out."
	msgNotFound = "GitHub returned with HTTP 404. The repo URL specified in the request does not exist. Unknown repo specified?"
)

func transportFailure(url string, err error) *apperrors.Error {
	if isTimeout(err) {
		return apperrors.UpdateChecking(http.StatusInternalServerError, msgTimeout, err,
			fmt.Sprintf("Request to %s timed out: %v", url, err))
	}
	return apperrors.UpdateChecking(http.StatusInternalServerError, "", err,
		fmt.Sprintf("Request to %s failed: %v", url, err))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// statusFailure turns a non-200 answer into an error. Rate-limit answers
// also move rec's timestamp so that the next unforced check happens after
// the limit lifts.
func (c *Checker) statusFailure(ctx context.Context, rec *repository.Record, resp *integrations.Response) *apperrors.Error {
	status := http.StatusInternalServerError
	message := ""
	var what string

	switch resp.StatusCode {
	case http.StatusBadRequest:
		what = "GitHub returned with HTTP 400. Something bad happened."
	case http.StatusUnauthorized:
		what = "Can't reach GitHub for invalid credentials."
	case http.StatusForbidden, http.StatusTooManyRequests:
		what = c.deferPastRateLimit(ctx, rec, resp)
	case http.StatusNotFound:
		what = msgNotFound
		status = http.StatusNotFound
		message = msgNotFound
	default:
		what = fmt.Sprintf("GitHub returned with HTTP %d while checking for updates.", resp.StatusCode)
	}

	return apperrors.UpdateChecking(status, message, nil,
		what, "Details:", github.ErrorDetail(resp.Body))
}

func (c *Checker) deferPastRateLimit(ctx context.Context, rec *repository.Record, resp *integrations.Response) string {
	reset, ok := httputil.RateLimitReset(resp.Header, c.now())
	if !ok {
		return fmt.Sprintf("GitHub returned with HTTP %d and no rate limit reset time.", resp.StatusCode)
	}
	observability.Check().OnRateLimited(ctx, rec.Slug, reset)
	rec.SetLastChecked(reset.Add(-time.Duration(rec.CheckFrequencyDays) * 24 * time.Hour))
	return fmt.Sprintf("API limit exceeded, and will be reset at %s. Next non-forced check will be made afterwards only.",
		reset.Format(repository.TimestampLayout))
}
