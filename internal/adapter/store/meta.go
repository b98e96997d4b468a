package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

// CurrentSchemaVersion is the on-disk format version.
// Increment this when making breaking changes to the storage format.
const CurrentSchemaVersion = 1

var keyIndexMeta = []byte("index_meta")

// IndexMeta records how the stored vectors were built. A stored index is
// only usable when the embedding model, dimension and corpus fingerprint all
// match the current configuration.
type IndexMeta struct {
	SchemaVersion int       `json:"schema_version"`
	IndexID       string    `json:"index_id"` // distinguishes rebuilds of an identical corpus
	Model         string    `json:"model"`
	Dimension     int       `json:"dimension"`
	CorpusHash    string    `json:"corpus_hash"`
	Count         int       `json:"count"`
	BuiltAt       time.Time `json:"built_at"`
}

// WriteMeta stores the build metadata, stamping the current schema version
// and a fresh build ID when none is set.
func (s *BoltStore) WriteMeta(meta IndexMeta) error {
	meta.SchemaVersion = CurrentSchemaVersion
	if meta.IndexID == "" {
		meta.IndexID = uuid.NewString()
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keyIndexMeta, data)
	})
}

// ReadMeta returns the build metadata, or nil when the store was never built.
func (s *BoltStore) ReadMeta() (*IndexMeta, error) {
	var meta *IndexMeta
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keyIndexMeta)
		if data == nil {
			return nil
		}
		meta = &IndexMeta{}
		return json.Unmarshal(data, meta)
	})
	return meta, err
}

// CheckCompatible reports why the stored index cannot serve the given
// embedder and corpus, or nil if it can.
func (m *IndexMeta) CheckCompatible(model string, dimension int, corpusHash string) error {
	if m.SchemaVersion > CurrentSchemaVersion {
		return fmt.Errorf("index built by a newer version (schema v%d > v%d)", m.SchemaVersion, CurrentSchemaVersion)
	}
	if m.SchemaVersion < CurrentSchemaVersion {
		return fmt.Errorf("index schema v%d is outdated, rebuild required", m.SchemaVersion)
	}
	if m.Model != model {
		return fmt.Errorf("index built with model %q, configured model is %q", m.Model, model)
	}
	if m.Dimension != dimension {
		return fmt.Errorf("index dimension %d, embedder dimension %d", m.Dimension, dimension)
	}
	if m.CorpusHash != corpusHash {
		return fmt.Errorf("corpus changed since the index was built")
	}
	return nil
}
