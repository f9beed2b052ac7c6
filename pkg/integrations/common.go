package integrations

import (
	"errors"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 5 * time.Second

var (
	// ErrNotFound is returned when the upstream resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures (timeouts, refused connections).
	ErrNetwork = errors.New("network error")
)

// Response is an upstream answer whose status has not been interpreted.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is 200.
func (r *Response) OK() bool { return r.StatusCode == http.StatusOK }

// NewHTTPClient creates an HTTP client with the given timeout.
// A non-positive timeout selects [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
