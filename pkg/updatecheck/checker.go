package updatecheck

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
	"github.com/t1nkr/releasecache/pkg/integrations"
	"github.com/t1nkr/releasecache/pkg/integrations/github"
	"github.com/t1nkr/releasecache/pkg/observability"
	"github.com/t1nkr/releasecache/pkg/repository"
	"github.com/t1nkr/releasecache/pkg/version"
)

// Outcome tells how a successful check was served.
type Outcome string

const (
	OutcomeCacheHit  Outcome = "cache-hit"
	OutcomeRefreshed Outcome = "refreshed"
	OutcomeFallback  Outcome = "fallback"
)

// Query is one update-check request. Slug and CurrentVersion are taken as
// received so that wrong types are reported as invalid input.
type Query struct {
	Slug           any
	CurrentVersion any
	Force          bool
}

// Result is the answer to a Query.
type Result struct {
	Repository      *repository.Record `json:"repository"`
	UpdateAvailable bool               `json:"updateAvailable"`
	Outcome         Outcome            `json:"-"`
}

// Fetcher retrieves the latest release of a repository.
type Fetcher interface {
	FetchLatestRelease(ctx context.Context, url string) (*integrations.Response, error)
}

// Registry decides which repositories may be checked.
type Registry interface {
	IsRegistered(ctx context.Context, slug string) (bool, error)
}

// Store holds the cached records.
type Store interface {
	Get(ctx context.Context, slug string) (*repository.Record, error)
	Put(r *repository.Record) error
	Save(ctx context.Context)
}

// Checker runs update checks against a store, refreshing from GitHub when
// a record is stale.
type Checker struct {
	registry      Registry
	store         Store
	fetcher       Fetcher
	links         repository.Links
	logger        *log.Logger
	now           func() time.Time
	forceDisabled bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

// WithForceDisabled makes the checker ignore forceUpdateCheck.
func WithForceDisabled(disabled bool) Option {
	return func(c *Checker) { c.forceDisabled = disabled }
}

// New creates a Checker.
func New(registry Registry, store Store, fetcher Fetcher, links repository.Links, logger *log.Logger, opts ...Option) *Checker {
	if logger == nil {
		logger = log.Default()
	}
	c := &Checker{
		registry: registry,
		store:    store,
		fetcher:  fetcher,
		links:    links,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check answers q. Errors are *apperrors.Error values carrying the status
// and message for the caller.
func (c *Checker) Check(ctx context.Context, q Query) (*Result, error) {
	slug, err := repository.Normalize(q.Slug, true)
	if err != nil {
		return nil, err
	}

	hooks := observability.Check()
	hooks.OnCheckStart(ctx, slug, q.Force)
	start := time.Now()

	res, err := c.check(ctx, slug, q)

	outcome := ""
	if res != nil {
		outcome = string(res.Outcome)
	}
	hooks.OnCheckComplete(ctx, slug, outcome, time.Since(start), err)
	return res, err
}

func (c *Checker) check(ctx context.Context, slug string, q Query) (*Result, error) {
	ok, err := c.registry.IsRegistered(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotRegistered(slug)
	}

	rec, err := c.store.Get(ctx, slug)
	if err != nil {
		return nil, err
	}

	force := q.Force
	if force && c.forceDisabled {
		c.logger.Info("forced checks are disabled, treating request as unforced", "slug", slug)
		force = false
	}

	if !force && c.fresh(rec) {
		c.logger.Info("serving cached release", "slug", slug, "latestVersion", rec.LatestVersion)
		return c.result(rec, q.CurrentVersion, OutcomeCacheHit)
	}

	outcome := OutcomeRefreshed
	if failure := c.refresh(ctx, rec); failure != nil {
		if !rec.HasCachedVersion() {
			return nil, failure
		}
		c.logger.Warn("could not refresh release, serving cached data", "slug", slug, "latestVersion", rec.LatestVersion)
		apperrors.Report(c.logger, failure)
		outcome = OutcomeFallback
	}

	if err := c.store.Put(rec); err != nil {
		return nil, err
	}
	c.store.Save(ctx)

	return c.result(rec, q.CurrentVersion, outcome)
}

// fresh reports whether rec was checked less than its frequency ago.
// Records that never saw a release are never fresh: serving one from cache
// would only fail comparing against an empty tag.
func (c *Checker) fresh(rec *repository.Record) bool {
	if rec == nil || rec.LastCheckedTimestamp.IsZero() || !rec.HasCachedVersion() {
		return false
	}
	days := int(c.now().Sub(rec.LastCheckedTimestamp) / (24 * time.Hour))
	return days < rec.CheckFrequencyDays
}

func (c *Checker) result(rec *repository.Record, current any, outcome Outcome) (*Result, error) {
	available, err := version.IsNewerValue(rec.LatestVersion, current)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("update check done", "slug", rec.Slug, "outcome", outcome, "updateAvailable", available)
	return &Result{Repository: rec, UpdateAvailable: available, Outcome: outcome}, nil
}

// refresh asks GitHub for the latest release and updates rec in place.
// A non-nil return means the refresh failed; rec may still have been
// changed, e.g. to defer the next check past a rate limit.
func (c *Checker) refresh(ctx context.Context, rec *repository.Record) *apperrors.Error {
	url := c.links.ReleaseAPIURL(rec.Slug)
	c.logger.Info("checking GitHub for the latest release", "slug", rec.Slug)

	resp, err := c.fetcher.FetchLatestRelease(ctx, url)
	if err != nil {
		return transportFailure(url, err)
	}
	if !resp.OK() {
		return c.statusFailure(ctx, rec, resp)
	}

	rel, err := github.ParseRelease(resp.Body)
	if err != nil {
		return apperrors.UpstreamData(err, "Invalid release data received from %s: %v", url, err)
	}
	if _, err := version.ParseTag(rel.TagName); err != nil {
		return apperrors.UpstreamData(err, "Unusable release tag %q received from %s", rel.TagName, url)
	}

	rec.LatestVersion = rel.TagName
	rec.LatestVersionName = rel.Name
	rec.SetLastChecked(c.now())
	rec.RepoURL = c.links.RepoURL(rec.Slug)
	rec.ReleaseURL = rel.HTMLURL
	if rec.ReleaseURL == "" {
		rec.ReleaseURL = c.links.ReleasesPageURL(rec.Slug)
	}
	c.logger.Info("latest release received", "slug", rec.Slug, "latestVersion", rec.LatestVersion)
	return nil
}
