package port

import "context"

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates embeddings for the given texts.
	// Returns a slice of vectors, one per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}

// VectorStore stores and searches profile embeddings.
type VectorStore interface {
	// Replace atomically swaps the store contents. A build that fails
	// partway leaves the previous contents untouched.
	Replace(items []VectorItem) error

	// Search finds the k nearest vectors to the query, best first.
	// Equal scores order by ascending ID.
	Search(query []float32, k int) ([]VectorResult, error)

	// Count returns the number of vectors in the store.
	Count() (int, error)

	Close() error
}

// VectorItem represents a vector to be stored.
type VectorItem struct {
	ID     int       // Employee ID
	Vector []float32 // Embedding vector
}

// VectorResult represents a search result.
type VectorResult struct {
	ID    int     // Employee ID
	Score float64 // Cosine similarity (higher is better)
}
