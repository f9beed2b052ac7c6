package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend stores the blob in a single file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file backend for path.
// The parent directory is created if it doesn't exist.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("storage: empty file path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileBackend{path: path}, nil
}

// Read returns the file contents.
func (b *FileBackend) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

// Write replaces the file atomically by writing a sibling temp file and
// renaming it over the target.
func (b *FileBackend) Write(ctx context.Context, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, b.path)
}

// Location returns the file path.
func (b *FileBackend) Location() string { return b.path }

// Close does nothing for file backends.
func (b *FileBackend) Close() error { return nil }

var _ Backend = (*FileBackend)(nil)
