package memstore

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"staffq/internal/port"
)

// MemoryStore is an in-process vector store. Search is a brute-force cosine
// scan, which is exact and fast at directory scale.
type MemoryStore struct {
	mu    sync.RWMutex
	items []port.VectorItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Replace atomically swaps the store contents.
func (s *MemoryStore) Replace(items []port.VectorItem) error {
	next := make([]port.VectorItem, len(items))
	copy(next, items)
	sort.Slice(next, func(i, j int) bool { return next[i].ID < next[j].ID })

	for i := 1; i < len(next); i++ {
		if next[i].ID == next[i-1].ID {
			return fmt.Errorf("duplicate vector ID: %d", next[i].ID)
		}
	}
	for _, item := range next {
		if len(item.Vector) != len(next[0].Vector) {
			return fmt.Errorf("vector ID %d has dimension %d, want %d", item.ID, len(item.Vector), len(next[0].Vector))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = next
	return nil
}

// Search finds the k nearest vectors to the query, best first.
// Equal scores order by ascending ID.
func (s *MemoryStore) Search(query []float32, k int) ([]port.VectorResult, error) {
	if k <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) > 0 && len(query) != len(s.items[0].Vector) {
		return nil, fmt.Errorf("query dimension %d, store dimension %d", len(query), len(s.items[0].Vector))
	}

	results := make([]port.VectorResult, 0, len(s.items))
	for _, item := range s.items {
		results = append(results, port.VectorResult{
			ID:    item.ID,
			Score: Cosine(query, item.Vector),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of vectors in the store.
func (s *MemoryStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Cosine returns the cosine similarity of a and b. Mismatched lengths and
// zero vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
