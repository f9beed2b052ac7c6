// Package version decides whether a release tag is newer than a client's
// installed version.
//
// Release tags come from GitHub and look like "v1.2.3" or "v1.2.3-beta".
// Only the leading dotted-numeric run is used; the "v" prefix and any
// qualifier are ignored. Installed versions come from callers as "1.2.3",
// or in the tuple notation Blender add-ons report, "(1, 2, 3)".
//
// Malformed tags are upstream faults (UPSTREAM_DATA, 500). Malformed
// installed versions are the caller's fault (INVALID_INPUT, 400).
package version

import (
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
)

var tagPattern = regexp.MustCompile(`^v?(\d+(?:\.\d+)*)`)

const invalidCurrentMessage = "Invalid version in 'currentVersion' of 'appInfo'. Version shall be specified as x.y.z."

// IsNewer reports whether latestTag denotes a newer release than currentVersion.
//
// Major dominates minor, which dominates patch. Patch is only compared when
// both sides carry one. Missing minor components count as zero.
func IsNewer(latestTag, currentVersion string) (bool, error) {
	latest, err := ParseTag(latestTag)
	if err != nil {
		return false, err
	}
	current, err := ParseCurrent(currentVersion)
	if err != nil {
		return false, err
	}
	return compare(latest, current), nil
}

// IsNewerValue is IsNewer for a current version decoded from JSON, where the
// value may be missing or of the wrong type.
func IsNewerValue(latestTag string, current any) (bool, error) {
	s, ok := current.(string)
	if !ok {
		if _, err := ParseTag(latestTag); err != nil {
			return false, err
		}
		return false, apperrors.InvalidInput(invalidCurrentMessage,
			"Invalid version number in request: %v (%T)", current, current)
	}
	return IsNewer(latestTag, s)
}

// ParseTag extracts the numeric components of a release tag.
func ParseTag(tag string) ([]int, error) {
	m := tagPattern.FindStringSubmatch(strings.TrimSpace(tag))
	if m == nil {
		return nil, apperrors.UpstreamData(nil, "Invalid version number in GitHub's response: %q", tag)
	}
	parts, err := atoiAll(strings.Split(m[1], "."))
	if err != nil {
		return nil, apperrors.UpstreamData(err, "Invalid version number in GitHub's response: %q", tag)
	}
	return parts, nil
}

// ParseCurrent parses an installed version in dotted or tuple notation.
func ParseCurrent(v string) ([]int, error) {
	s := strings.TrimSpace(v)
	fields := strings.Split(s, ".")
	if n := len(s); n >= 2 && (s[0] == '(' && s[n-1] == ')' || s[0] == '[' && s[n-1] == ']') {
		s = s[1 : n-1]
		fields = strings.Split(s, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
	}
	if s == "" {
		return nil, apperrors.InvalidInput(invalidCurrentMessage, "Empty version number in request: %q", v)
	}
	parts, err := atoiAll(fields)
	if err != nil {
		return nil, apperrors.InvalidInput(invalidCurrentMessage, "Invalid version number in request: %q: %v", v, err)
	}
	return parts, nil
}

func atoiAll(fields []string) ([]int, error) {
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		if f == "" || strings.ContainsAny(f, "+-") {
			return nil, strconv.ErrSyntax
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func compare(latest, current []int) bool {
	if latest[0] != current[0] {
		return latest[0] > current[0]
	}
	if l, c := at(latest, 1), at(current, 1); l != c {
		return l > c
	}
	if len(latest) > 2 && len(current) > 2 {
		return latest[2] > current[2]
	}
	return false
}

func at(parts []int, i int) int {
	if i < len(parts) {
		return parts[i]
	}
	return 0
}
