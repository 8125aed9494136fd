package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/showlist/internal/codec"
	"github.com/mmcdole/showlist/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketShows = []byte("shows")
	bucketMeta  = []byte("meta")
)

// LocalNamespace is the namespace the client keeps its own list under
const LocalNamespace = "local"

// Store persists show collections in BoltDB, one document per namespace.
// The client uses a single namespace; the backup server uses one per token.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache of encoded documents (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the database at path.
// An empty path gives a memory-only store.
func Open(path string) (*Store, error) {
	if path == "" {
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketShows, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

// HashToken derives a stable namespace from a session token so the raw token
// never lands on disk.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:12])
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string) ([]byte, bool) {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return data, true
}

func (s *Store) set(bucket []byte, key string, data []byte) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) error {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// === Shows ===

// GetShows returns the collection stored under namespace.
// ok is false when nothing has been stored yet.
func (s *Store) GetShows(namespace string) (shows []domain.Show, ok bool, err error) {
	data, ok := s.get(bucketShows, namespace)
	if !ok {
		return nil, false, nil
	}
	shows, err = codec.DecodeShows(data)
	if err != nil {
		return nil, true, err
	}
	return shows, true, nil
}

// PutShows replaces the collection stored under namespace and stamps it
func (s *Store) PutShows(namespace string, shows []domain.Show) error {
	data, err := codec.EncodeShows(shows)
	if err != nil {
		return err
	}
	if err := s.set(bucketShows, namespace, data); err != nil {
		return err
	}
	ts, err := json.Marshal(time.Now().Unix())
	if err != nil {
		return err
	}
	return s.set(bucketMeta, namespace+":ts", ts)
}

// UpdatedAt returns when namespace was last written
func (s *Store) UpdatedAt(namespace string) (time.Time, bool) {
	data, ok := s.get(bucketMeta, namespace+":ts")
	if !ok {
		return time.Time{}, false
	}
	var ts int64
	if json.Unmarshal(data, &ts) != nil {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

// DeleteShows removes namespace and its timestamp
func (s *Store) DeleteShows(namespace string) error {
	if err := s.delete(bucketShows, namespace); err != nil {
		return err
	}
	return s.delete(bucketMeta, namespace+":ts")
}

// Namespace returns a domain.ShowStore bound to one namespace
func (s *Store) Namespace(namespace string) *ShowStore {
	return &ShowStore{store: s, namespace: namespace}
}

// ShowStore implements domain.ShowStore over a single namespace.
type ShowStore struct {
	store     *Store
	namespace string
}

var _ domain.ShowStore = (*ShowStore)(nil)

// LoadShows returns the stored collection, or an empty one when nothing was saved
func (n *ShowStore) LoadShows(ctx context.Context) ([]domain.Show, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shows, ok, err := n.store.GetShows(n.namespace)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Show{}, nil
	}
	return shows, nil
}

func (n *ShowStore) SaveShows(ctx context.Context, shows []domain.Show) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.store.PutShows(n.namespace, shows)
}
