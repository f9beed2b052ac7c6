package storage

import "context"

// NullBackend is a no-op backend that never stores anything.
// Useful for testing or when persistence should be disabled.
type NullBackend struct{}

// NewNullBackend creates a null backend.
func NewNullBackend() *NullBackend {
	return &NullBackend{}
}

// Read always reports that nothing is stored.
func (NullBackend) Read(ctx context.Context) ([]byte, error) { return nil, ErrNotFound }

// Write does nothing.
func (NullBackend) Write(ctx context.Context, data []byte) error { return nil }

// Location returns a placeholder.
func (NullBackend) Location() string { return "(none)" }

// Close does nothing.
func (NullBackend) Close() error { return nil }

var _ Backend = NullBackend{}
