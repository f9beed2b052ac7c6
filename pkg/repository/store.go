package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
	"github.com/t1nkr/releasecache/pkg/observability"
	"github.com/t1nkr/releasecache/pkg/storage"
)

// Store is the ordered collection of repository records, persisted as one
// blob through a storage backend.
//
// Load and Save never fail the caller: a store that cannot be read is
// treated as empty and a failed write is only logged. The mutex protects the
// in-memory slice only; it is never held during backend I/O, so concurrent
// requests for one slug may still both refresh it and the last Save wins.
type Store struct {
	backend          storage.Backend
	registry         *Registry
	logger           *log.Logger
	defaultFrequency int
	now              func() time.Time

	mu      sync.RWMutex
	records []*Record
	loaded  bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDefaultFrequency sets the freshness window of records created by Get.
func WithDefaultFrequency(days int) StoreOption {
	return func(s *Store) {
		if days > 0 {
			s.defaultFrequency = days
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store persisted in backend and filtered by registry on save.
func NewStore(backend storage.Backend, registry *Registry, logger *log.Logger, opts ...StoreOption) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		backend:          backend,
		registry:         registry,
		logger:           logger,
		defaultFrequency: DefaultCheckFrequencyDays,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted records unless the store is already populated.
// Read or decode failures are logged and leave the store empty.
func (s *Store) Load(ctx context.Context) {
	s.mu.RLock()
	populated := s.loaded || len(s.records) > 0
	s.mu.RUnlock()
	if populated {
		return
	}

	records, err := s.read(ctx)
	observability.Store().OnStoreLoad(ctx, s.backend.Location(), len(records), err)
	if err != nil {
		s.logger.Error("could not load repository store, continuing with an empty one",
			"location", s.backend.Location())
		apperrors.Report(s.logger, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded || len(s.records) > 0 {
		return
	}
	s.records = records
	s.loaded = true
	s.logger.Debug("repository store loaded", "location", s.backend.Location(), "records", len(records))
}

func (s *Store) read(ctx context.Context) ([]*Record, error) {
	data, err := s.backend.Read(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Internal(err, "Could not read repository store %s: %v", s.backend.Location(), err)
	}
	return Decode(data)
}

// Get returns a copy of the record for slug, or a new default record if the
// store has none. slug must be normalized and registered.
func (s *Store) Get(ctx context.Context, slug string) (*Record, error) {
	s.Load(ctx)

	s.mu.RLock()
	for _, r := range s.records {
		if r.Slug == slug {
			s.mu.RUnlock()
			return r.Clone(), nil
		}
	}
	s.mu.RUnlock()

	return NewRecord(slug, s.defaultFrequency, s.now())
}

// Contains reports whether a record for slug is held in memory.
func (s *Store) Contains(slug string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(slug) >= 0
}

// Append adds item to the store. Only *Record values are accepted.
func (s *Store) Append(item any) error {
	r, ok := item.(*Record)
	if !ok || r == nil {
		return apperrors.Internal(nil,
			"Only repository records can be added to the store, but an item of %T was attempted to be added", item)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

// Put stores a copy of r, replacing the record with the same slug or
// appending it when there is none.
func (s *Store) Put(r *Record) error {
	if r == nil {
		return s.Append(r)
	}
	c := r.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(c.Slug); i >= 0 {
		s.records[i] = c
	} else {
		s.records = append(s.records, c)
	}
	return nil
}

// Records returns copies of all records in store order.
func (s *Store) Records(ctx context.Context) []*Record {
	s.Load(ctx)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Save writes all registered records to the backend, replacing its content.
// Failures are logged, never returned.
func (s *Store) Save(ctx context.Context) {
	s.mu.RLock()
	snapshot := make([]*Record, len(s.records))
	for i, r := range s.records {
		snapshot[i] = r.Clone()
	}
	s.mu.RUnlock()

	kept := make([]*Record, 0, len(snapshot))
	for _, r := range snapshot {
		ok, err := s.registry.IsRegistered(ctx, r.Slug)
		if err != nil {
			s.logger.Error("could not save repository store", "location", s.backend.Location())
			apperrors.Report(s.logger, err)
			return
		}
		if ok {
			kept = append(kept, r)
		} else {
			s.logger.Debug("dropping unregistered repository from store", "slug", r.Slug)
		}
	}

	err := s.write(ctx, kept)
	observability.Store().OnStoreSave(ctx, s.backend.Location(), len(kept), err)
	if err != nil {
		s.logger.Error("could not save repository store", "location", s.backend.Location())
		apperrors.Report(s.logger, err)
	}
}

// Clear removes all records from memory and from the backend.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.records = nil
	s.loaded = true
	s.mu.Unlock()
	return s.write(ctx, nil)
}

// Location describes where the store is persisted.
func (s *Store) Location() string {
	return s.backend.Location()
}

func (s *Store) write(ctx context.Context, records []*Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return apperrors.Internal(err, "Could not write repository store %s: %v", s.backend.Location(), err)
	}
	s.logger.Debug("repository store saved", "location", s.backend.Location(), "records", len(records))
	return nil
}

func (s *Store) indexOf(slug string) int {
	for i, r := range s.records {
		if r.Slug == slug {
			return i
		}
	}
	return -1
}
