package generator

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"

	"staffq/internal/domain"
)

type fakeContentAPI struct {
	resp *genai.GenerateContentResponse
	err  error

	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
}

func (f *fakeContentAPI) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.lastModel = model
	f.lastContents = contents
	f.lastConfig = config
	return f.resp, f.err
}

func geminiResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, len(texts))
	for i, t := range texts {
		parts[i] = &genai.Part{Text: t}
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
		},
	}
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	if _, err := NewGeminiGenerator(context.Background(), "", ""); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestGeminiGenerator_Generate(t *testing.T) {
	fake := &fakeContentAPI{resp: geminiResponse("Alice fits best.", "She is available now.")}
	g := &GeminiGenerator{models: fake, model: "gemini-2.5-flash"}

	text, err := g.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatal(err)
	}
	if text != "Alice fits best.\nShe is available now." {
		t.Errorf("expected joined candidate parts, got %q", text)
	}

	if fake.lastModel != "gemini-2.5-flash" {
		t.Errorf("unexpected model %q", fake.lastModel)
	}
	if len(fake.lastContents) == 0 || len(fake.lastContents[0].Parts) == 0 {
		t.Fatal("expected user prompt in contents")
	}
	if got := fake.lastContents[0].Parts[0].Text; got != "Find Python developers" {
		t.Errorf("unexpected user prompt %q", got)
	}

	cfg := fake.lastConfig
	if cfg == nil || cfg.SystemInstruction == nil || len(cfg.SystemInstruction.Parts) == 0 {
		t.Fatal("expected system instruction in config")
	}
	if got := cfg.SystemInstruction.Parts[0].Text; got != "You are a helpful assistant." {
		t.Errorf("unexpected system instruction %q", got)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", cfg.Temperature)
	}
	if cfg.MaxOutputTokens != 500 {
		t.Errorf("expected max output tokens 500, got %d", cfg.MaxOutputTokens)
	}
}

func TestGeminiGenerator_WrapsAPIError(t *testing.T) {
	fake := &fakeContentAPI{err: errors.New("quota exhausted")}
	g := &GeminiGenerator{models: fake, model: "gemini-2.5-flash"}

	_, err := g.Generate(context.Background(), testRequest())
	var unavailable *domain.GenerationUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected GenerationUnavailableError, got %v", err)
	}
	if unavailable.Provider != "gemini" {
		t.Errorf("expected gemini provider, got %q", unavailable.Provider)
	}
}

func TestGeminiGenerator_EmptyResponse(t *testing.T) {
	cases := map[string]*genai.GenerateContentResponse{
		"no candidates": {},
		"empty parts":   geminiResponse(""),
	}
	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			g := &GeminiGenerator{models: &fakeContentAPI{resp: resp}, model: "gemini-2.5-flash"}
			_, err := g.Generate(context.Background(), testRequest())
			var unavailable *domain.GenerationUnavailableError
			if !errors.As(err, &unavailable) {
				t.Fatalf("expected GenerationUnavailableError, got %v", err)
			}
		})
	}
}
