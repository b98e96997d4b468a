package embedding

import (
	"context"
	"fmt"
)

// MockEmbedder returns preset vectors keyed by exact text, for tests that
// need full control over similarity scores.
type MockEmbedder struct {
	dimension int
	vectors   map[string][]float32
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{
		dimension: dimension,
		vectors:   make(map[string][]float32),
	}
}

// Set registers the vector returned for text.
func (e *MockEmbedder) Set(text string, vector []float32) {
	e.vectors[text] = vector
}

// Embed returns the registered vector for each text. Unregistered texts get
// the zero vector.
func (e *MockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		if vec, ok := e.vectors[text]; ok {
			if len(vec) != e.dimension {
				return nil, fmt.Errorf("mock embedder: vector for %q has dimension %d, want %d", text, len(vec), e.dimension)
			}
			embeddings[i] = vec
			continue
		}
		embeddings[i] = make([]float32, e.dimension)
	}
	return embeddings, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
