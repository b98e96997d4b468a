package port

import "context"

// Generator represents a language model for answer generation.
type Generator interface {
	// Generate produces text for the given request.
	Generate(ctx context.Context, req GenerationRequest) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}

// GenerationRequest carries one grounded prompt and its sampling parameters.
type GenerationRequest struct {
	System      string  // Role and grounding instructions
	User        string  // Query plus retrieved profiles
	Temperature float32 // Sampling temperature
	MaxTokens   int     // Response token cap
}
