package repository

import (
	"regexp"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
)

// slugPattern accepts letters, digits, dashes and underscores in segments
// separated by single slashes, with at most one leading and one trailing slash.
var slugPattern = regexp.MustCompile(`^/?[A-Za-z0-9_][A-Za-z0-9_-]*(/[A-Za-z0-9_-]+)*/?$`)

const invalidSlugMessage = "Value specified for repo slug is not a valid URI. Valid URIs " +
	"shall contain at least one number, letter, dash or underscore, " +
	"may start with a slash, " +
	"shall only contain numbers, letters, dashes, underscores and slashes, " +
	"may end with a slash, but " +
	"no consecutive slashes are allowed."

// Normalize validates candidate as a slug and returns its canonical form.
//
// external selects the error kind: true for values taken from a request
// (INVALID_INPUT), false for values from the store or registry (INTERNAL_ERROR).
func Normalize(candidate any, external bool) (string, error) {
	s, ok := candidate.(string)
	if !ok {
		return "", slugError(external, "The repo slug shall be a string.",
			"Wanted to set a value of %T type as repo slug", candidate)
	}
	if s == "" {
		return "", slugError(external, "The repo slug shall not be an empty string.",
			"Wanted to set empty string as repo slug")
	}
	if !slugPattern.MatchString(s) {
		return "", slugError(external, invalidSlugMessage,
			"Repo slug %q doesn't conform to the pattern", s)
	}

	if s[0] == '/' {
		s = s[1:]
	}
	if n := len(s); n > 0 && s[n-1] == '/' {
		s = s[:n-1]
	}
	return s, nil
}

func slugError(external bool, message, logFormat string, args ...any) error {
	if external {
		return apperrors.InvalidInput(message, logFormat, args...)
	}
	return apperrors.Internal(nil, logFormat, args...)
}
