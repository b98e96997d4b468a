package embedding

import (
	"context"
	"fmt"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
	"golang.org/x/time/rate"
)

// Embedding widths of the hosted models the pipeline knows about. Unknown
// models need an explicit dimension from configuration.
var openAIModelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// Models that accept a requested output dimension.
var openAIShortenable = map[string]bool{
	"text-embedding-3-small": true,
	"text-embedding-3-large": true,
}

const openAIMaxBatch = 100

// OpenAIEmbedder embeds text through the OpenAI embeddings API, or any
// compatible endpoint when a base URL is given. Requests are rate limited
// client side.
type OpenAIEmbedder struct {
	client    openaisdk.Client
	model     string
	dimension int
	limiter   *rate.Limiter
}

// NewOpenAIEmbedder creates an embedder for the given model. dimension may be
// zero for models with a known width. requestsPerSecond caps outgoing batch
// requests; zero or negative disables the cap.
func NewOpenAIEmbedder(apiKey, model, baseURL string, dimension int, requestsPerSecond float64) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai embedder: API key is empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai embedder: model is empty")
	}
	if dimension == 0 {
		known, ok := openAIModelDimensions[model]
		if !ok {
			return nil, fmt.Errorf("openai embedder: unknown model %q needs an explicit dimension", model)
		}
		dimension = known
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &OpenAIEmbedder{
		client:    openaisdk.NewClient(opts...),
		model:     model,
		dimension: dimension,
		limiter:   rate.NewLimiter(limit, 1),
	}, nil
}

// Embed generates embeddings for the given texts.
// Returns a slice of vectors, one per input text, in input order.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var all [][]float32
	for i := 0; i < len(texts); i += openAIMaxBatch {
		end := i + openAIMaxBatch
		if end > len(texts) {
			end = len(texts)
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		batch, err := e.embedBatch(ctx, texts[i:end])
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}

	return all, nil
}

func (e *OpenAIEmbedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	params := openaisdk.EmbeddingNewParams{
		Input: openaisdk.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: e.model,
	}
	if openAIShortenable[e.model] {
		params.Dimensions = param.NewOpt(int64(e.dimension))
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai embedding request: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embedding: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	out := make([][]float32, len(texts))
	for _, data := range resp.Data {
		idx := int(data.Index)
		if idx < 0 || idx >= len(out) {
			return nil, fmt.Errorf("openai embedding: index %d out of range", idx)
		}
		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		if len(vec) != e.dimension {
			return nil, fmt.Errorf("openai embedding: dimension %d, want %d", len(vec), e.dimension)
		}
		out[idx] = vec
	}

	return out, nil
}

// Dimension returns the embedding vector dimension.
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// ModelName returns the name of the embedding model.
func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}
