package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"

	"staffq/internal/adapter/analyzer"
)

// DefaultLocalDimension is wide enough that two distinct profile terms
// almost never share a slot.
const DefaultLocalDimension = 4096

// LocalEmbedder produces deterministic embeddings with no network access.
// Each term hashes to two signed slots of the vector and the result is
// L2-normalized, so cosine similarity degrades into term overlap. Texts with
// no usable terms embed to the zero vector.
type LocalEmbedder struct {
	dimension int
	stemming  bool
	tokenizer *analyzer.Tokenizer
}

// NewLocalEmbedder creates a LocalEmbedder. A dimension below 64 is rejected
// because slot collisions would start to rival genuine term matches.
func NewLocalEmbedder(dimension int, stemming bool) (*LocalEmbedder, error) {
	if dimension == 0 {
		dimension = DefaultLocalDimension
	}
	if dimension < 64 {
		return nil, fmt.Errorf("local embedder dimension too small: %d", dimension)
	}
	return &LocalEmbedder{
		dimension: dimension,
		stemming:  stemming,
		tokenizer: analyzer.NewTokenizer(stemming),
	}, nil
}

// Embed generates one vector per text, in input order.
func (e *LocalEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		embeddings[i] = e.vectorFor(text)
	}
	return embeddings, nil
}

func (e *LocalEmbedder) vectorFor(text string) []float32 {
	vec := make([]float32, e.dimension)

	for _, token := range e.tokenizer.Tokenize(text) {
		h := fnv.New64a()
		h.Write([]byte(token))
		sum := h.Sum64()

		// Slots come from the low and high halves of the hash, signs from
		// two further bits.
		dim := uint64(e.dimension)
		s1 := int(sum % dim)
		s2 := int((sum >> 32) % dim)
		if s2 == s1 {
			s2 = (s1 + 1) % e.dimension
		}
		sign1 := float32(1)
		if sum&(1<<16) != 0 {
			sign1 = -1
		}
		sign2 := float32(1)
		if sum&(1<<48) != 0 {
			sign2 = -1
		}

		vec[s1] += sign1
		vec[s2] += sign2
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Dimension returns the embedding vector dimension.
func (e *LocalEmbedder) Dimension() int {
	return e.dimension
}

// ModelName identifies the hashing scheme and analyzer settings. Vectors from
// different ModelNames are never comparable.
func (e *LocalEmbedder) ModelName() string {
	if e.stemming {
		return "local-hash-v1"
	}
	return "local-hash-v1-nostem"
}
