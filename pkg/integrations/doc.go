// Package integrations provides the HTTP plumbing for upstream APIs.
//
// [Client] sends requests with default headers, a per-request timeout and
// optional retries for transport failures. It never interprets the status
// of an answer: a rate-limit response carries headers the caller needs, so
// every answer comes back as a [Response].
//
// Service-specific clients live in subpackages:
//
//   - [github]: latest-release lookups
//
// [github]: github.com/t1nkr/releasecache/pkg/integrations/github
package integrations
