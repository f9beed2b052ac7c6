package server

import (
	"encoding/json"
	"io"
	"strings"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
	"github.com/t1nkr/releasecache/pkg/updatecheck"
)

// maxBodySize caps request bodies.
const maxBodySize = 64 << 10

// parseQuery reads a getUpdateInfo body:
//
//	{"appInfo": {"repoSlug": "...", "currentVersion": "..."}, "forceUpdateCheck": true}
//
// "AppInfo" is accepted in place of "appInfo".
func parseQuery(body io.Reader) (updatecheck.Query, error) {
	var q updatecheck.Query

	var doc map[string]any
	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	if err := dec.Decode(&doc); err != nil || doc == nil {
		detail := "the body is not a JSON object"
		if err != nil {
			detail = err.Error()
		}
		msg := "POST body is not well-formed JSON. Details:\r\n" + detail
		return q, apperrors.InvalidInput(msg, "%s", msg)
	}

	rawInfo, ok := doc["appInfo"]
	if !ok {
		rawInfo, ok = doc["AppInfo"]
	}
	if !ok {
		return q, invalid("'appInfo' key missing from request")
	}
	info, ok := rawInfo.(map[string]any)
	if !ok {
		return q, invalid("'appInfo' shall be a JSON object")
	}

	slug, ok := info["repoSlug"]
	if !ok {
		return q, invalid("The 'repoSlug' key is missing from the 'appInfo' object, can't find out which repo to check.")
	}
	current, ok := info["currentVersion"]
	if !ok {
		return q, invalid("The 'currentVersion' key missing from the 'appInfo' object, would not be able to determine if there's a newer version.")
	}

	q.Slug = slug
	q.CurrentVersion = current
	q.Force = parseForce(doc["forceUpdateCheck"])
	return q, nil
}

// parseForce accepts a JSON bool or the strings "true"/"false" in any case.
// Anything else means false.
func parseForce(v any) bool {
	switch f := v.(type) {
	case bool:
		return f
	case string:
		return strings.EqualFold(strings.TrimSpace(f), "true")
	default:
		return false
	}
}

func invalid(msg string) error {
	return apperrors.InvalidInput(msg, "%s", msg)
}
