package repository

import (
	"strings"
	"time"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
)

// DefaultCheckFrequencyDays is the freshness window of new records.
const DefaultCheckFrequencyDays = 3

// TimestampLayout is the format of lastCheckedTimestamp in the store and in responses.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is the cached state of one tracked repository.
type Record struct {
	Slug                 string
	CheckFrequencyDays   int
	LatestVersion        string
	LatestVersionName    string
	LastCheckedTimestamp time.Time
	ReleaseURL           string
	RepoURL              string
}

// NewRecord creates a record for slug that is immediately due for a check:
// its timestamp lies frequency+1 days before now.
func NewRecord(slug string, frequency int, now time.Time) (*Record, error) {
	s, err := Normalize(slug, false)
	if err != nil {
		return nil, err
	}
	r := &Record{Slug: s}
	if err := r.SetCheckFrequencyDays(frequency); err != nil {
		return nil, err
	}
	r.LastCheckedTimestamp = DefaultTimestamp(now, frequency)
	return r, nil
}

// DefaultTimestamp returns the timestamp of a record that was never checked.
func DefaultTimestamp(now time.Time, frequency int) time.Time {
	return now.UTC().Add(-time.Duration(frequency+1) * 24 * time.Hour).Truncate(time.Second)
}

// SetCheckFrequencyDays sets the freshness window. It must be positive.
func (r *Record) SetCheckFrequencyDays(days int) error {
	if days < 1 {
		return apperrors.Internal(nil,
			"Wanted to set check frequency to %d, but it shall be a positive integer", days)
	}
	r.CheckFrequencyDays = days
	return nil
}

// SetLastChecked stores t in UTC at second granularity.
func (r *Record) SetLastChecked(t time.Time) {
	r.LastCheckedTimestamp = t.UTC().Truncate(time.Second)
}

// HasCachedVersion reports whether a release has been observed before.
func (r *Record) HasCachedVersion() bool {
	return r.LatestVersion != ""
}

// Clone returns a copy of r.
func (r *Record) Clone() *Record {
	c := *r
	return &c
}

// Links builds GitHub URLs for slugs owned by one account.
type Links struct {
	Owner   string // GitHub account owning the repositories
	APIBase string // e.g. https://api.github.com
	WebBase string // e.g. https://github.com
}

// DefaultLinks returns links for the public GitHub endpoints.
func DefaultLinks(owner string) Links {
	return Links{Owner: owner, APIBase: "https://api.github.com", WebBase: "https://github.com"}
}

// RepoURL returns the web address of the repository.
func (l Links) RepoURL(slug string) string {
	return l.web() + slug + "/"
}

// ReleasesPageURL returns the web address of the repository's releases page.
func (l Links) ReleasesPageURL(slug string) string {
	return l.web() + slug + "/releases/"
}

// ReleaseAPIURL returns the API address of the repository's latest release.
func (l Links) ReleaseAPIURL(slug string) string {
	return strings.TrimSuffix(l.APIBase, "/") + "/repos/" + l.Owner + "/" + slug + "/releases/latest"
}

func (l Links) web() string {
	return strings.TrimSuffix(l.WebBase, "/") + "/" + l.Owner + "/"
}
