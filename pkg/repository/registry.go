package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
	"github.com/t1nkr/releasecache/pkg/storage"
)

// registryKey is the key holding the slug list in the registry document.
const registryKey = "supported-repositories"

// Registry is the allow-list of repository slugs.
// It is loaded once from its source and read-only afterwards.
type Registry struct {
	source storage.Backend
	logger *log.Logger

	mu     sync.RWMutex
	slugs  map[string]struct{}
	loaded bool
}

// NewRegistry creates a registry reading from source.
// Nothing is read until the first lookup.
func NewRegistry(source storage.Backend, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{source: source, logger: logger}
}

// Load reads the registry if it has not been read yet.
// A missing or malformed source yields an INTERNAL_ERROR.
func (r *Registry) Load(ctx context.Context) error {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return nil
	}

	slugs, err := r.read(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		r.slugs = slugs
		r.loaded = true
		r.logger.Debug("repository registry loaded", "source", r.source.Location(), "repositories", len(slugs))
	}
	return nil
}

func (r *Registry) read(ctx context.Context) (map[string]struct{}, error) {
	loc := r.source.Location()
	data, err := r.source.Read(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.Internal(err, "Repository registry %s does not exist", loc)
	}
	if err != nil {
		return nil, apperrors.Internal(err, "Could not load repository registry %s: %v", loc, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Internal(err, "Could not parse repository registry %s: %v", loc, err)
	}
	rawList, ok := doc[registryKey]
	if !ok {
		return nil, apperrors.Internal(nil, "Repository registry %s lacks the %q key", loc, registryKey)
	}
	var list []any
	if err := json.Unmarshal(rawList, &list); err != nil {
		return nil, apperrors.Internal(err, "The %q key of repository registry %s is not a list", registryKey, loc)
	}

	slugs := make(map[string]struct{}, len(list))
	for _, item := range list {
		slug, err := Normalize(item, false)
		if err != nil {
			return nil, err
		}
		slugs[slug] = struct{}{}
	}
	return slugs, nil
}

// IsRegistered reports whether slug is on the allow-list.
func (r *Registry) IsRegistered(ctx context.Context, slug string) (bool, error) {
	s, err := Normalize(slug, false)
	if err != nil {
		return false, err
	}
	if err := r.Load(ctx); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.slugs[s]
	return ok, nil
}

// Slugs returns the registered slugs in sorted order.
func (r *Registry) Slugs(ctx context.Context) ([]string, error) {
	if err := r.Load(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.slugs))
	for s := range r.slugs {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

// Invalidate forgets the loaded list so the next lookup reads the source again.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slugs = nil
	r.loaded = false
}
