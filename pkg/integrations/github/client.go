package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/t1nkr/releasecache/pkg/buildinfo"
	"github.com/t1nkr/releasecache/pkg/integrations"
)

// Environment variables holding GitHub credentials.
const (
	EnvUser  = "GITHUB_UPDATE_CHECKER_GITHUB_USER_NAME"
	EnvToken = "GITHUB_UPDATE_CHECKER_GITHUB_API_TOKEN"
)

const (
	acceptHeader  = "application/vnd.github+json"
	apiVersion    = "2022-11-28"
	maxDetailSize = 512
)

// ErrMalformedRelease is returned by [ParseRelease] for bodies that are not
// a usable release.
var ErrMalformedRelease = errors.New("malformed release")

// Credentials authenticate requests to the GitHub API.
// Both fields empty means anonymous access.
type Credentials struct {
	User  string
	Token string
}

// CredentialsFromEnv reads credentials from [EnvUser] and [EnvToken].
func CredentialsFromEnv() Credentials {
	return Credentials{
		User:  strings.TrimSpace(os.Getenv(EnvUser)),
		Token: strings.TrimSpace(os.Getenv(EnvToken)),
	}
}

// authorization returns the Authorization header value, or "" for anonymous
// access. A user with a token uses basic auth, a bare token uses bearer auth.
func (c Credentials) authorization() string {
	switch {
	case c.Token == "":
		return ""
	case c.User != "":
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.User+":"+c.Token))
	default:
		return "Bearer " + c.Token
	}
}

// Mode describes how requests are authenticated, for logs.
func (c Credentials) Mode() string {
	switch {
	case c.Token == "":
		return "anonymous"
	case c.User != "":
		return "basic"
	default:
		return "token"
	}
}

// ReleaseClient fetches latest-release information from the GitHub API.
type ReleaseClient struct {
	*integrations.Client
	creds Credentials
}

// NewReleaseClient creates a client that authenticates with creds and gives
// up on a request after timeout.
func NewReleaseClient(creds Credentials, timeout time.Duration, opts ...integrations.Option) *ReleaseClient {
	headers := map[string]string{
		"Accept":               acceptHeader,
		"X-GitHub-Api-Version": apiVersion,
		"User-Agent":           buildinfo.UserAgent(),
	}
	if auth := creds.authorization(); auth != "" {
		headers["Authorization"] = auth
	}
	return &ReleaseClient{
		Client: integrations.NewClient(timeout, headers, opts...),
		creds:  creds,
	}
}

// Credentials returns the credentials the client authenticates with.
func (c *ReleaseClient) Credentials() Credentials { return c.creds }

// FetchLatestRelease requests url, a releases/latest endpoint. The answer is
// returned whatever its status so that callers can read rate-limit headers.
func (c *ReleaseClient) FetchLatestRelease(ctx context.Context, url string) (*integrations.Response, error) {
	return c.Get(ctx, url, nil)
}

// ParseRelease decodes a release object. A body without tag_name is
// rejected with [ErrMalformedRelease].
func ParseRelease(body []byte) (*Release, error) {
	var r Release
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRelease, err)
	}
	if strings.TrimSpace(r.TagName) == "" {
		return nil, fmt.Errorf("%w: missing tag_name", ErrMalformedRelease)
	}
	return &r, nil
}

// ErrorDetail summarizes an error body for logs: GitHub's message when the
// body is a JSON error object, otherwise the body itself, shortened.
func ErrorDetail(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		if e.DocumentationURL != "" {
			return e.Message + " (" + e.DocumentationURL + ")"
		}
		return e.Message
	}
	body = bytes.TrimSpace(body)
	if len(body) > maxDetailSize {
		return string(body[:maxDetailSize]) + "..."
	}
	return string(body)
}
