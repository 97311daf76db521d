package history

import (
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// KV is the keyed record storage behind a Durable history.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Put stores value under key.
	Put(key string, value []byte) error
}

// MemKV is a KV held in memory.
type MemKV struct {
	mu sync.Mutex
	m  map[string][]byte
}

// NewMemKV creates an empty MemKV.
func NewMemKV() *MemKV {
	return &MemKV{m: make(map[string][]byte)}
}

// Get implements KV.
func (s *MemKV) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put implements KV.
func (s *MemKV) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[key] = append([]byte(nil), value...)
	return nil
}

// BucketHistory is the bbolt bucket holding history records.
const BucketHistory = "history"

// BoltKV is a KV backed by a bbolt database file.
type BoltKV struct {
	db     *bolt.DB
	bucket []byte
}

// OpenBolt opens (or creates) the bbolt database at path.
func OpenBolt(path string) (*BoltKV, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}

	kv := &BoltKV{db: db, bucket: []byte(BucketHistory)}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(kv.bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history db %s: %w", path, err)
	}
	return kv, nil
}

// Get implements KV.
func (s *BoltKV) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}

// Put implements KV.
func (s *BoltKV) Put(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	})
}

// Keys returns every key in the history bucket in byte order.
func (s *BoltKV) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Close closes the database.
func (s *BoltKV) Close() error {
	return s.db.Close()
}
