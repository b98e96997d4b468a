package usecase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"staffq/internal/domain"
	"staffq/internal/port"
)

const (
	encodeBatchSize = 32
	encodeWorkers   = 4
)

// EncodeUseCase builds the vector store from employee records: render each
// profile to its canonical text, embed the texts, and atomically replace the
// store contents.
type EncodeUseCase struct {
	embedder port.Embedder
	store    port.VectorStore
	log      *zap.Logger
}

// NewEncodeUseCase creates a new encode use case.
func NewEncodeUseCase(embedder port.Embedder, store port.VectorStore, log *zap.Logger) *EncodeUseCase {
	return &EncodeUseCase{
		embedder: embedder,
		store:    store,
		log:      log,
	}
}

// EncodeResult contains the results of a corpus build.
type EncodeResult struct {
	Encoded    int
	Skipped    int
	Model      string
	Dimension  int
	CorpusHash string
}

// Encode embeds every employee profile and replaces the store contents.
// Profiles that embed to nothing usable are skipped with a warning; the
// build fails only when embedding itself fails. progress may be nil.
func (u *EncodeUseCase) Encode(ctx context.Context, employees []domain.Employee, progress func(done, total int)) (*EncodeResult, error) {
	total := len(employees)
	if progress == nil {
		progress = func(int, int) {}
	}

	texts := make([]string, total)
	for i, e := range employees {
		texts[i] = e.ProfileText()
	}

	vectors := make([][]float32, total)
	var done int
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(encodeWorkers)
	for start := 0; start < total; start += encodeBatchSize {
		start := start
		end := start + encodeBatchSize
		if end > total {
			end = total
		}

		g.Go(func() error {
			batch, err := u.embedder.Embed(gctx, texts[start:end])
			if err != nil {
				return fmt.Errorf("embed profiles %d-%d: %w", start, end-1, err)
			}
			if len(batch) != end-start {
				return fmt.Errorf("embedder returned %d vectors for %d profiles", len(batch), end-start)
			}
			copy(vectors[start:end], batch)

			mu.Lock()
			done += end - start
			progress(done, total)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &EncodeResult{
		Model:      u.embedder.ModelName(),
		Dimension:  u.embedder.Dimension(),
		CorpusHash: domain.Fingerprint(employees),
	}

	items := make([]port.VectorItem, 0, total)
	for i, e := range employees {
		if isZeroVector(vectors[i]) {
			encErr := &domain.EncodingError{
				EmployeeID: e.ID,
				Err:        fmt.Errorf("profile produced no usable terms"),
			}
			u.log.Warn("skipping profile", zap.Int("id", e.ID), zap.Error(encErr))
			result.Skipped++
			continue
		}
		items = append(items, port.VectorItem{ID: e.ID, Vector: vectors[i]})
	}
	result.Encoded = len(items)

	if err := u.store.Replace(items); err != nil {
		return nil, fmt.Errorf("replace vector store: %w", err)
	}

	u.log.Info("corpus encoded",
		zap.Int("encoded", result.Encoded),
		zap.Int("skipped", result.Skipped),
		zap.String("model", result.Model),
		zap.Int("dimension", result.Dimension))

	return result, nil
}

func isZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
