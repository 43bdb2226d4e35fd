package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/mmcdole/screenly/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket and key of the watched slot
var (
	bucketScreenly = []byte("screenly")
	keyWatched     = []byte("watched")
)

// WatchedStore implements domain.WatchedStore using BoltDB.
// The whole list lives under a single key as a JSON array.
type WatchedStore struct {
	db     *bolt.DB
	logger *slog.Logger

	// Memory-only mode keeps the encoded slot here
	mu  sync.Mutex
	mem []byte
}

// Open opens (or creates) the store at path. An empty path selects
// memory-only mode with no persistence.
func Open(path string, logger *slog.Logger) (*WatchedStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return &WatchedStore{logger: logger}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketScreenly)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &WatchedStore{db: db, logger: logger}, nil
}

func (s *WatchedStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the persisted watched list. Absent, empty or corrupt slots
// degrade to an empty list.
func (s *WatchedStore) Load() []domain.WatchedMovie {
	data := s.read()
	if len(data) == 0 {
		return []domain.WatchedMovie{}
	}

	var list []domain.WatchedMovie
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.Warn("discarding unreadable watched list", "error", err, "bytes", len(data))
		return []domain.WatchedMovie{}
	}
	if list == nil {
		list = []domain.WatchedMovie{}
	}
	return list
}

// Save overwrites the slot with list
func (s *WatchedStore) Save(list []domain.WatchedMovie) error {
	if list == nil {
		list = []domain.WatchedMovie{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}

	if s.db == nil {
		s.mu.Lock()
		s.mem = data
		s.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScreenly)
		return b.Put(keyWatched, data)
	})
}

// read returns a copy of the raw slot, or nil if absent
func (s *WatchedStore) read() []byte {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.mem
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScreenly)
		if b == nil {
			return nil
		}
		if v := b.Get(keyWatched); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to read watched list", "error", err)
		return nil
	}
	return data
}
