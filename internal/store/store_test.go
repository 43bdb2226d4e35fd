package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mmcdole/screenly/internal/domain"
	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T) *WatchedStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "screenly.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleList() []domain.WatchedMovie {
	return []domain.WatchedMovie{
		{ID: "tt1375666", Title: "Inception", Year: "2010", PosterURL: "https://example.com/p.jpg", IMDbRating: 8.8, UserRating: 10, RuntimeMinutes: 148},
		{ID: "tt2713180", Title: "Fury", Year: "2014", IMDbRating: 7.6, UserRating: 8, RuntimeMinutes: 134},
	}
}

func TestLoad_AbsentSlot(t *testing.T) {
	s := openTestStore(t)
	got := s.Load()
	if got == nil || len(got) != 0 {
		t.Fatalf("Load on fresh store = %#v, want empty non-nil slice", got)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	want := sampleList()

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := s.Load()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %#v, want %#v", got, want)
	}

	// save(load()) is the identity
	if err := s.Save(got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if again := s.Load(); !reflect.DeepEqual(again, want) {
		t.Errorf("second Load = %#v, want %#v", again, want)
	}
}

func TestSave_Overwrites(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save(sampleList()); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(nil); err != nil {
		t.Fatal(err)
	}
	if got := s.Load(); len(got) != 0 {
		t.Errorf("expected empty list after overwrite, got %d items", len(got))
	}
}

func TestLoad_CorruptOrEmptySlot(t *testing.T) {
	for _, raw := range []string{"", "{not json", `{"imdbID":"tt1"}`, "null"} {
		t.Run(raw, func(t *testing.T) {
			s := openTestStore(t)
			err := s.db.Update(func(tx *bolt.Tx) error {
				return tx.Bucket(bucketScreenly).Put(keyWatched, []byte(raw))
			})
			if err != nil {
				t.Fatal(err)
			}
			got := s.Load()
			if got == nil || len(got) != 0 {
				t.Errorf("Load = %#v, want empty list", got)
			}
		})
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "screenly.db")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(sampleList()); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if got := s2.Load(); !reflect.DeepEqual(got, sampleList()) {
		t.Errorf("reopened Load = %#v", got)
	}
}

func TestMemoryMode(t *testing.T) {
	s, err := Open("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Load(); len(got) != 0 {
		t.Fatalf("fresh memory store not empty: %#v", got)
	}
	if err := s.Save(sampleList()); err != nil {
		t.Fatal(err)
	}
	if got := s.Load(); !reflect.DeepEqual(got, sampleList()) {
		t.Errorf("Load = %#v", got)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
