package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	prev := Version
	t.Cleanup(func() { Version = prev })

	Version = "v1.4.2"
	if got := UserAgent(); got != "releasecache/v1.4.2" {
		t.Errorf("UserAgent() = %q, want releasecache/v1.4.2", got)
	}
}

func TestString(t *testing.T) {
	got := String()
	for _, want := range []string{"version: " + Version, "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, lacks %q", got, want)
		}
	}
}
