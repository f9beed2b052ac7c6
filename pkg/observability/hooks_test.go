package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopCheckHooks{}
	c.OnCheckStart(ctx, "repo", true)
	c.OnCheckComplete(ctx, "repo", "refreshed", time.Second, nil)
	c.OnRateLimited(ctx, "repo", time.Now())

	s := NoopStoreHooks{}
	s.OnStoreLoad(ctx, "repositories.json", 3, nil)
	s.OnStoreSave(ctx, "repositories.json", 3, errors.New("disk full"))

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.github.com", "/repos/o/r/releases/latest")
	h.OnResponse(ctx, "GET", "api.github.com", "/repos/o/r/releases/latest", 200, time.Second)
	h.OnError(ctx, "GET", "api.github.com", "/repos/o/r/releases/latest", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Check().(NoopCheckHooks); !ok {
		t.Error("Check() should return NoopCheckHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customCheck := &testCheckHooks{}
	SetCheckHooks(customCheck)
	if Check() != customCheck {
		t.Error("SetCheckHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Check().(NoopCheckHooks); !ok {
		t.Error("Reset() should restore NoopCheckHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testCheckHooks{}
	SetCheckHooks(custom)
	SetCheckHooks(nil)

	if Check() != custom {
		t.Error("SetCheckHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	hooks := NewLogHooks(logger)
	hooks.Register()

	ctx := context.Background()
	Check().OnCheckStart(ctx, "repo", false)
	Check().OnCheckComplete(ctx, "repo", "cache-hit", time.Millisecond, nil)
	Store().OnStoreSave(ctx, "repositories.json", 0, errors.New("disk full"))
	HTTP().OnResponse(ctx, "GET", "api.github.com", "/x", 404, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"check started", "check finished", "cache-hit", "store save failed", "disk full", "status=404"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testCheckHooks struct{ NoopCheckHooks }
type testStoreHooks struct{ NoopStoreHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
