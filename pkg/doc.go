// Package pkg provides the libraries behind releasecache, a caching
// middleware that answers "is there a newer release?" for GitHub
// repositories without exposing clients to GitHub's rate limits.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [repository] - Domain types (slugs, records, registry, store)
//  2. [updatecheck] - Orchestration of one update check
//  3. [integrations] - GitHub API client and shared HTTP plumbing
//  4. [storage] - Backends persisting the store (file, Redis, MongoDB)
//  5. [version] - Release tag comparison
//
// # Architecture
//
// The data flow of one check:
//
//	POST /getUpdateInfo
//	         ↓
//	    [repository] normalize slug, consult registry
//	         ↓
//	    [repository] store lookup (fresh record? answer from cache)
//	         ↓
//	    [integrations/github] fetch latest release when stale or forced
//	         ↓
//	    [version] compare against the client's version
//	         ↓
//	    [storage] persist the refreshed store
//
// Supporting packages: [errors] for structured, keyed errors; [httputil] for
// retries and rate-limit headers; [observability] for hooks; [buildinfo] for
// version stamping.
//
// [repository]: github.com/t1nkr/releasecache/pkg/repository
// [updatecheck]: github.com/t1nkr/releasecache/pkg/updatecheck
// [integrations]: github.com/t1nkr/releasecache/pkg/integrations
// [integrations/github]: github.com/t1nkr/releasecache/pkg/integrations/github
// [storage]: github.com/t1nkr/releasecache/pkg/storage
// [version]: github.com/t1nkr/releasecache/pkg/version
// [errors]: github.com/t1nkr/releasecache/pkg/errors
// [httputil]: github.com/t1nkr/releasecache/pkg/httputil
// [observability]: github.com/t1nkr/releasecache/pkg/observability
// [buildinfo]: github.com/t1nkr/releasecache/pkg/buildinfo
package pkg
