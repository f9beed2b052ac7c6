package errors

import (
	"net/url"
	"strings"
)

// ValidateURL validates a base URL taken from configuration.
// It requires an http or https scheme and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return Internal(nil, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return Internal(nil, "URL must use http or https scheme: %q", rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return Internal(err, "URL has no host: %q", rawURL)
	}

	return nil
}
