package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
	"github.com/t1nkr/releasecache/pkg/storage"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

// newTestStore opens a file-backed store next to a registry holding slugs.
func newTestStore(t *testing.T, slugs string) (*Store, string) {
	t.Helper()
	reg := newTestRegistry(t, `{"supported-repositories": [`+slugs+`]}`)
	path := filepath.Join(t.TempDir(), "repositories.json")
	backend, err := storage.NewFileBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	return NewStore(backend, reg, testLogger(), WithClock(func() time.Time { return testNow })), path
}

func record(slug, version string) *Record {
	return &Record{
		Slug:                 slug,
		CheckFrequencyDays:   3,
		LatestVersion:        version,
		LastCheckedTimestamp: testNow,
	}
}

func TestStoreGetDefault(t *testing.T) {
	s, _ := newTestStore(t, `"A"`)

	r, err := s.Get(context.Background(), "A")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if r.Slug != "A" || r.CheckFrequencyDays != DefaultCheckFrequencyDays || r.HasCachedVersion() {
		t.Errorf("Get = %+v, want fresh default record", r)
	}
	if want := testNow.Add(-4 * 24 * time.Hour); !r.LastCheckedTimestamp.Equal(want) {
		t.Errorf("LastCheckedTimestamp = %v, want %v", r.LastCheckedTimestamp, want)
	}
	if s.Contains("A") {
		t.Error("Get should not add the default record to the store")
	}
}

func TestStoreDefaultFrequencyOption(t *testing.T) {
	reg := newTestRegistry(t, `{"supported-repositories": ["A"]}`)
	s := NewStore(storage.NewNullBackend(), reg, testLogger(), WithDefaultFrequency(7))

	r, err := s.Get(context.Background(), "A")
	if err != nil {
		t.Fatal(err)
	}
	if r.CheckFrequencyDays != 7 {
		t.Errorf("CheckFrequencyDays = %d, want 7", r.CheckFrequencyDays)
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, `"A"`)
	if err := s.Put(record("A", "v1.0.0")); err != nil {
		t.Fatal(err)
	}

	r, _ := s.Get(ctx, "A")
	r.LatestVersion = "v9.9.9"

	again, _ := s.Get(ctx, "A")
	if again.LatestVersion != "v1.0.0" {
		t.Errorf("store record changed through a Get copy: %q", again.LatestVersion)
	}
}

func TestStorePutReplaces(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, `"A", "B"`)

	for _, r := range []*Record{record("A", "v1"), record("B", "v1"), record("A", "v2")} {
		if err := s.Put(r); err != nil {
			t.Fatal(err)
		}
	}

	records := s.Records(ctx)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Slug != "A" || records[0].LatestVersion != "v2" {
		t.Errorf("records[0] = %+v, want A at v2", records[0])
	}
	if records[1].Slug != "B" {
		t.Errorf("records[1] = %+v, want B", records[1])
	}
}

func TestStoreAppendRejectsNonRecords(t *testing.T) {
	s, _ := newTestStore(t, `"A"`)

	for _, item := range []any{"A", 42, nil, (*Record)(nil), Record{Slug: "A"}} {
		if err := s.Append(item); !apperrors.Is(err, apperrors.ErrCodeInternal) {
			t.Errorf("Append(%#v) error = %v, want INTERNAL_ERROR", item, err)
		}
	}
	if err := s.Put(nil); !apperrors.Is(err, apperrors.ErrCodeInternal) {
		t.Errorf("Put(nil) error = %v, want INTERNAL_ERROR", err)
	}
	if len(s.Records(context.Background())) != 0 {
		t.Error("rejected items should not be stored")
	}
}

func TestStoreSaveDropsUnregistered(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t, `"A", "C"`)

	for _, slug := range []string{"A", "B", "C"} {
		if err := s.Append(record(slug, "v1.0.0")); err != nil {
			t.Fatal(err)
		}
	}
	s.Save(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("store file not written: %v", err)
	}
	saved, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(saved) != 2 || saved[0].Slug != "A" || saved[1].Slug != "C" {
		t.Errorf("saved slugs = %v, want [A C]", slugsOf(saved))
	}

	// Unregistered records stay in memory.
	if !s.Contains("B") {
		t.Error("Save should not remove records from memory")
	}
}

func TestStoreSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t, `"A"`)
	if err := s.Put(record("A", "v1.2.3")); err != nil {
		t.Fatal(err)
	}
	s.Save(ctx)

	backend, _ := storage.NewFileBackend(path)
	reloaded := NewStore(backend, s.registry, testLogger())
	r, err := reloaded.Get(ctx, "A")
	if err != nil {
		t.Fatal(err)
	}
	if r.LatestVersion != "v1.2.3" || !r.LastCheckedTimestamp.Equal(testNow) {
		t.Errorf("reloaded record = %+v", r)
	}
}

func TestStoreLoadCorruptFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t, `"A"`)
	if err := os.WriteFile(path, []byte(`[{"repoSlug": "A"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	s.Load(ctx)
	if got := s.Records(ctx); len(got) != 0 {
		t.Errorf("corrupt store should load as empty, got %d records", len(got))
	}

	r, err := s.Get(ctx, "A")
	if err != nil || r.HasCachedVersion() {
		t.Errorf("Get after corrupt load = %+v, %v; want default record", r, err)
	}
}

func TestStoreLoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t, `"A", "B"`)
	data, _ := Encode([]*Record{record("A", "v1")})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	s.Load(ctx)
	if err := s.Put(record("B", "v1")); err != nil {
		t.Fatal(err)
	}

	// The file changing underneath must not reload over in-memory edits.
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	s.Load(ctx)

	if got := slugsOf(s.Records(ctx)); len(got) != 2 {
		t.Errorf("records after second Load = %v, want [A B]", got)
	}
}

func TestStoreLoadSkippedWhenPopulated(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t, `"A", "B"`)
	data, _ := Encode([]*Record{record("A", "v1")})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Append(record("B", "v1")); err != nil {
		t.Fatal(err)
	}
	s.Load(ctx)

	if got := slugsOf(s.Records(ctx)); len(got) != 1 || got[0] != "B" {
		t.Errorf("records = %v, want [B]", got)
	}
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t, `"A"`)
	if err := s.Put(record("A", "v1")); err != nil {
		t.Fatal(err)
	}
	s.Save(ctx)

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[]" {
		t.Errorf("store file after Clear = %s, want []", data)
	}
	if s.Contains("A") {
		t.Error("Clear should empty memory")
	}
	if s.Location() != path {
		t.Errorf("Location = %q, want %q", s.Location(), path)
	}
}

func slugsOf(records []*Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Slug
	}
	return out
}
