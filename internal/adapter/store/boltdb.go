package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"staffq/internal/adapter/memstore"
	"staffq/internal/port"
)

var (
	bucketVectors = []byte("vectors")
	bucketMeta    = []byte("meta")
)

// BoltStore persists profile vectors in BoltDB so an index built once can
// serve later processes. All reads go through an in-memory cache; the
// database is only touched on Replace and open.
type BoltStore struct {
	db    *bbolt.DB
	cache *memstore.MemoryStore
}

type storedVector struct {
	Vector []float32 `json:"v"`
}

// NewBoltStore opens or creates the database at path and loads existing
// vectors into memory.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketVectors, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &BoltStore{db: db, cache: memstore.NewMemoryStore()}
	if err := s.loadVectors(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load vectors: %w", err)
	}
	return s, nil
}

func (s *BoltStore) loadVectors() error {
	var items []port.VectorItem
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVectors)
		return b.ForEach(func(k, v []byte) error {
			if len(k) != 8 {
				return fmt.Errorf("malformed vector key of length %d", len(k))
			}
			var stored storedVector
			if err := json.Unmarshal(v, &stored); err != nil {
				return fmt.Errorf("corrupt vector record %d: %w", binary.BigEndian.Uint64(k), err)
			}
			items = append(items, port.VectorItem{
				ID:     int(binary.BigEndian.Uint64(k)),
				Vector: stored.Vector,
			})
			return nil
		})
	})
	if err != nil {
		return err
	}
	return s.cache.Replace(items)
}

// Replace atomically swaps the store contents.
func (s *BoltStore) Replace(items []port.VectorItem) error {
	// Validate against a scratch store first so a bad batch never reaches
	// the database.
	if err := memstore.NewMemoryStore().Replace(items); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketVectors); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketVectors)
		if err != nil {
			return err
		}

		for _, item := range items {
			if item.ID <= 0 {
				return fmt.Errorf("vector ID must be positive, got %d", item.ID)
			}
			data, err := json.Marshal(storedVector{Vector: item.Vector})
			if err != nil {
				return err
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, uint64(item.ID))
			if err := b.Put(key, data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	// The transaction is durable; now make the swap visible to readers.
	return s.cache.Replace(items)
}

// Search finds the k nearest vectors to the query, best first.
// Equal scores order by ascending ID.
func (s *BoltStore) Search(query []float32, k int) ([]port.VectorResult, error) {
	return s.cache.Search(query, k)
}

// Count returns the number of vectors in the store.
func (s *BoltStore) Count() (int, error) {
	return s.cache.Count()
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
