// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; main decides what
// receives them. The defaults do nothing, so no backend is required.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCheckHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Check().OnCheckStart(ctx, slug, force)
//	// ... check for an update ...
//	observability.Check().OnCheckComplete(ctx, slug, outcome, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Check Hooks
// =============================================================================

// CheckHooks receives events from update checks.
type CheckHooks interface {
	// OnCheckStart records the start of an update check.
	OnCheckStart(ctx context.Context, slug string, force bool)

	// OnCheckComplete records the end of an update check. outcome is empty
	// when the check failed.
	OnCheckComplete(ctx context.Context, slug, outcome string, duration time.Duration, err error)

	// OnRateLimited records an upstream rate limit and when it lifts.
	OnRateLimited(ctx context.Context, slug string, reset time.Time)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from the repository store.
type StoreHooks interface {
	// OnStoreLoad records a load attempt.
	OnStoreLoad(ctx context.Context, location string, records int, err error)

	// OnStoreSave records a save attempt.
	OnStoreSave(ctx context.Context, location string, records int, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCheckHooks is a no-op implementation of CheckHooks.
type NoopCheckHooks struct{}

func (NoopCheckHooks) OnCheckStart(context.Context, string, bool)                            {}
func (NoopCheckHooks) OnCheckComplete(context.Context, string, string, time.Duration, error) {}
func (NoopCheckHooks) OnRateLimited(context.Context, string, time.Time)                      {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreLoad(context.Context, string, int, error) {}
func (NoopStoreHooks) OnStoreSave(context.Context, string, int, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	checkHooks CheckHooks = NoopCheckHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetCheckHooks registers custom check hooks.
// This should be called once at application startup before any checks run.
func SetCheckHooks(h CheckHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		checkHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Check returns the registered check hooks.
func Check() CheckHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return checkHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	checkHooks = NoopCheckHooks{}
	storeHooks = NoopStoreHooks{}
	httpHooks = NoopHTTPHooks{}
}
