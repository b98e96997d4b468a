package generator

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"

	"staffq/internal/domain"
	"staffq/internal/port"
)

const defaultOpenAIModel = "gpt-3.5-turbo"

// openAIChatAPI is the slice of the SDK surface the generator needs, kept as
// an interface so tests can substitute a fake.
type openAIChatAPI interface {
	New(ctx context.Context, body openaisdk.ChatCompletionNewParams, opts ...option.RequestOption) (*openaisdk.ChatCompletion, error)
}

// OpenAIGenerator produces answers through the OpenAI chat completions API,
// or any compatible endpoint when a base URL is given.
type OpenAIGenerator struct {
	chat  openAIChatAPI
	model string
}

// NewOpenAIGenerator creates a generator for the given chat model.
func NewOpenAIGenerator(apiKey, model, baseURL string) (*OpenAIGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai generator: API key is empty")
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openaisdk.NewClient(opts...)
	return &OpenAIGenerator{chat: &client.Chat.Completions, model: model}, nil
}

// Generate runs one chat completion. Any failure, including an empty
// completion, is reported as a GenerationUnavailableError so callers can
// fall back to the template path.
func (g *OpenAIGenerator) Generate(ctx context.Context, req port.GenerationRequest) (string, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(req.System),
			openaisdk.UserMessage(req.User),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = param.NewOpt(float64(req.Temperature))
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = param.NewOpt(int64(req.MaxTokens))
	}

	resp, err := g.chat.New(ctx, params)
	if err != nil {
		return "", unavailable("openai", fmt.Errorf("chat completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", unavailable("openai", fmt.Errorf("chat completion returned no choices"))
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", unavailable("openai", fmt.Errorf("chat completion returned empty content"))
	}
	return text, nil
}

// ModelName returns the chat model in use.
func (g *OpenAIGenerator) ModelName() string {
	return g.model
}

func unavailable(provider string, err error) error {
	return &domain.GenerationUnavailableError{Provider: provider, Err: err}
}
