// Package updatecheck answers "is there a newer release of this repository
// than the version I run?" from a cache of GitHub release information.
//
// A [Checker] serves a request in one of three ways:
//
//   - cache hit: the record was refreshed less than checkFrequencyDays ago
//   - refreshed: GitHub was asked for the latest release and answered
//   - fallback: GitHub could not be used but a release is already cached
//
// When GitHub cannot be used and nothing is cached, the check fails with an
// UPDATE_CHECKING error. A rate-limited refresh moves the record's
// lastCheckedTimestamp so that the next unforced check waits for the limit
// to lift.
package updatecheck
