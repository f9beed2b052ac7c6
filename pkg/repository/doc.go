// Package repository holds the cached state of tracked GitHub repositories.
//
// # Overview
//
// A [Record] describes one repository: its slug, how often it may be checked
// against GitHub, the latest release seen and when it was last checked.
//
// The [Registry] is the allow-list of slugs the service answers for. It is
// read once from its source and never modified at runtime.
//
// The [Store] is the ordered collection of records. It is loaded lazily from
// a [storage.Backend] and written back as one blob after every refresh.
// Only registered records survive a save.
//
// # Slugs
//
// A slug is a path-like identifier such as "T1nkR-Mesh-Name-Synchronizer" or
// "tools/exporter". [Normalize] validates a candidate and strips one leading
// and one trailing slash. Slugs from requests fail with INVALID_INPUT (400);
// slugs from the store or the registry fail with INTERNAL_ERROR (500) so that
// internal details are never shown to callers.
//
// # Serialization
//
// [Encode] and [Decode] convert records to and from the store format: a JSON
// array of objects with exactly the fields repoSlug, checkFrequencyDays,
// latestVersion, latestVersionName, lastCheckedTimestamp ("2006-01-02
// 15:04:05", UTC), releaseUrl and repoUrl, indented with four spaces.
// Decoding is strict: missing or unknown fields reject the whole input.
package repository
