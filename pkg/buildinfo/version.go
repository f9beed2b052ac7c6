// Package buildinfo carries the version stamped into the binary.
//
// Values are injected at link time:
//
//	go build -ldflags "-X github.com/t1nkr/releasecache/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/t1nkr/releasecache/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/t1nkr/releasecache/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Name identifies the service in output and in upstream requests.
const Name = "releasecache"

var (
	// Version is the release of the binary, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the build information shown by the version command.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra --version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent returns the User-Agent sent to GitHub, which asks clients to
// identify themselves, e.g. "releasecache/v1.0.0".
func UserAgent() string {
	return Name + "/" + Version
}
