package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"staffq/internal/adapter/analyzer"
	"staffq/internal/domain"
	"staffq/internal/port"
	"staffq/internal/prompt"
)

// GenerationOptions bound a single generation call.
type GenerationOptions struct {
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 500
	defaultGenTimeout  = 30 * time.Second
)

// AnswerUseCase runs the full pipeline for one query: retrieve a shortlist,
// attempt grounded generation, and fall back to a deterministic template when
// generation is unavailable. Answer always produces a usable response; a
// failing stage degrades the answer instead of failing the request.
type AnswerUseCase struct {
	retriever port.Retriever
	generator port.Generator // nil disables generation
	prompts   *prompt.Builder
	tokenizer *analyzer.Tokenizer
	opts      GenerationOptions
	log       *zap.Logger
}

// NewAnswerUseCase creates a new answer use case. A nil generator puts the
// pipeline in template-only mode.
func NewAnswerUseCase(
	retriever port.Retriever,
	generator port.Generator,
	prompts *prompt.Builder,
	opts GenerationOptions,
	log *zap.Logger,
) *AnswerUseCase {
	if opts.Temperature <= 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultGenTimeout
	}
	return &AnswerUseCase{
		retriever: retriever,
		generator: generator,
		prompts:   prompts,
		tokenizer: analyzer.NewTokenizer(false),
		opts:      opts,
		log:       log,
	}
}

// Answer processes a query end to end and never fails: retrieval errors and
// generation failures both degrade to the template path.
func (u *AnswerUseCase) Answer(ctx context.Context, query string) domain.Answer {
	shortlist, err := u.retriever.Retrieve(ctx, query)
	if err != nil {
		u.log.Error("retrieval failed, returning degraded answer",
			zap.String("query", query), zap.Error(err))
		return u.fallback(query, []domain.ShortlistEntry{}, 0)
	}
	if shortlist == nil {
		shortlist = []domain.ShortlistEntry{}
	}
	confidence := Confidence(shortlist)

	// Nothing to ground a generation on, so go straight to the template.
	if len(shortlist) == 0 || u.generator == nil {
		return u.fallback(query, shortlist, confidence)
	}

	text, ok := u.generate(ctx, query, shortlist)
	if !ok {
		return u.fallback(query, shortlist, confidence)
	}
	return domain.Answer{
		Text:       text,
		Shortlist:  shortlist,
		Confidence: confidence,
		Source:     domain.SourceGenerated,
	}
}

// fallback assembles the template answer. Even a compose failure yields a
// usable reply.
func (u *AnswerUseCase) fallback(query string, shortlist []domain.ShortlistEntry, confidence float64) domain.Answer {
	text, err := u.prompts.Compose(query, shortlist)
	if err != nil {
		u.log.Error("fallback compose failed", zap.Error(err))
		text = prompt.NoMatchMessage
	}
	return domain.Answer{
		Text:       text,
		Shortlist:  shortlist,
		Confidence: confidence,
		Source:     domain.SourceFallback,
	}
}

// generate attempts one bounded generation call. It reports false whenever
// the template fallback should be used instead.
func (u *AnswerUseCase) generate(ctx context.Context, query string, shortlist []domain.ShortlistEntry) (string, bool) {
	user, err := u.prompts.User(query, shortlist)
	if err != nil {
		u.log.Error("prompt build failed", zap.Error(err))
		return "", false
	}
	u.log.Debug("built grounded prompt",
		zap.Int("candidates", len(shortlist)),
		zap.Int("approx_tokens", u.tokenizer.CountTokens(user)))

	gctx, cancel := context.WithTimeout(ctx, u.opts.Timeout)
	defer cancel()

	text, err := u.generator.Generate(gctx, port.GenerationRequest{
		System:      u.prompts.System(),
		User:        user,
		Temperature: u.opts.Temperature,
		MaxTokens:   u.opts.MaxTokens,
	})
	if err != nil {
		var unavailable *domain.GenerationUnavailableError
		if errors.As(err, &unavailable) {
			u.log.Warn("generation unavailable, using fallback",
				zap.String("provider", unavailable.Provider), zap.Error(err))
		} else {
			u.log.Error("generation failed, using fallback", zap.Error(err))
		}
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		u.log.Warn("generator returned empty text, using fallback",
			zap.String("model", u.generator.ModelName()))
		return "", false
	}
	return text, true
}
