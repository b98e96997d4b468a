package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"staffq/internal/corpus"
	"staffq/internal/domain"
	"staffq/internal/port"
)

// RetrieveUseCase turns a natural-language query into a ranked shortlist of
// employees. It implements port.Retriever.
type RetrieveUseCase struct {
	embedder  port.Embedder
	store     port.VectorStore
	directory *corpus.Directory
	topK      int
	minScore  float64
	log       *zap.Logger
}

// NewRetrieveUseCase creates a new retrieve use case.
func NewRetrieveUseCase(
	embedder port.Embedder,
	store port.VectorStore,
	directory *corpus.Directory,
	topK int,
	minScore float64,
	log *zap.Logger,
) *RetrieveUseCase {
	return &RetrieveUseCase{
		embedder:  embedder,
		store:     store,
		directory: directory,
		topK:      topK,
		minScore:  minScore,
		log:       log,
	}
}

// Retrieve embeds the query, searches the vector store, and hydrates the
// resulting IDs into employee records. Matches scoring below the minimum
// threshold are dropped, so the shortlist may be empty.
func (u *RetrieveUseCase) Retrieve(ctx context.Context, query string) ([]domain.ShortlistEntry, error) {
	vectors, err := u.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vectors))
	}

	results, err := u.store.Search(vectors[0], u.topK)
	if err != nil {
		return nil, fmt.Errorf("search vector store: %w", err)
	}

	shortlist := make([]domain.ShortlistEntry, 0, len(results))
	for _, r := range results {
		if r.Score < u.minScore {
			continue
		}
		emp, ok := u.directory.Get(r.ID)
		if !ok {
			// Index entry with no corpus record, usually a stale index.
			u.log.Warn("dropping unknown employee id from results", zap.Int("id", r.ID))
			continue
		}
		shortlist = append(shortlist, domain.ShortlistEntry{
			Employee: emp,
			Score:    r.Score,
			Rank:     len(shortlist) + 1,
		})
	}

	u.log.Debug("retrieved shortlist",
		zap.String("query", query),
		zap.Int("candidates", len(results)),
		zap.Int("shortlisted", len(shortlist)))

	return shortlist, nil
}
