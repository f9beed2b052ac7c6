// Package storage persists a single opaque blob, the serialized repository
// store, in one of several backends.
//
// Every backend replaces the whole blob on Write. Readers never observe a
// partially written blob:
//   - [FileBackend] writes a temporary file next to the target and renames it
//   - [RedisBackend] stores the blob under one key with SET
//   - [MongoBackend] upserts one document holding the blob
//   - [NullBackend] stores nothing, for dry runs and tests
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when nothing has been stored yet.
var ErrNotFound = errors.New("not found")

// Backend stores and retrieves one blob.
type Backend interface {
	// Read returns the stored blob, or ErrNotFound if none exists.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored blob.
	Write(ctx context.Context, data []byte) error

	// Location describes where the blob lives, for logs and the CLI.
	Location() string

	// Close releases connections held by the backend.
	Close() error
}
