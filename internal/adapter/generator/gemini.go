package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"staffq/internal/port"
)

const defaultGeminiModel = "gemini-2.5-flash"

// geminiContentAPI mirrors the Models service of the Gen AI SDK so tests can
// substitute a fake.
type geminiContentAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator produces answers through the Gemini API.
type GeminiGenerator struct {
	models geminiContentAPI
	model  string
}

// NewGeminiGenerator creates a generator for the given Gemini model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini generator: API key is empty")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generator: %w", err)
	}

	return &GeminiGenerator{models: client.Models, model: model}, nil
}

// Generate runs one content generation. Any failure, including an empty
// candidate list, is reported as a GenerationUnavailableError so callers can
// fall back to the template path.
func (g *GeminiGenerator) Generate(ctx context.Context, req port.GenerationRequest) (string, error) {
	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(req.Temperature)
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(req.User), config)
	if err != nil {
		return "", unavailable("gemini", fmt.Errorf("generate content: %w", err))
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", unavailable("gemini", fmt.Errorf("response held no text"))
	}
	return text, nil
}

// ModelName returns the Gemini model in use.
func (g *GeminiGenerator) ModelName() string {
	return g.model
}
