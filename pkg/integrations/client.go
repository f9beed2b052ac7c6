package integrations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/t1nkr/releasecache/pkg/httputil"
	"github.com/t1nkr/releasecache/pkg/observability"
)

// maxBodySize caps how much of an upstream body is read.
const maxBodySize = 1 << 20

// Client sends requests with default headers and retries transport failures.
// It returns every HTTP answer as a [Response]; callers decide what a
// status means.
type Client struct {
	http       *http.Client
	headers    map[string]string
	retries    int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetries sets how many extra attempts are made after a transport failure.
func WithRetries(n int, delay time.Duration) Option {
	return func(c *Client) {
		c.retries = max(n, 0)
		c.retryDelay = delay
	}
}

// NewClient creates a Client with the given timeout and default headers.
// Pass nil for headers if no default headers are needed.
func NewClient(timeout time.Duration, headers map[string]string, opts ...Option) *Client {
	c := &Client{
		http:       NewHTTPClient(timeout),
		headers:    headers,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request. headers override the client defaults for the
// same key.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, headers)
}

// Do performs a request without a body. Transport failures are wrapped in
// [ErrNetwork] and retried; any HTTP answer is returned as is.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string) (*Response, error) {
	var resp *Response
	err := httputil.Retry(ctx, c.retries+1, c.retryDelay, func() error {
		r, err := c.do(ctx, method, url, headers)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, url string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		return nil, httputil.Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		return nil, httputil.Retryable(fmt.Errorf("%w: reading body: %w", ErrNetwork, err))
	}
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}
