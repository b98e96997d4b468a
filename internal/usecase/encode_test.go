package usecase

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"staffq/internal/adapter/embedding"
	"staffq/internal/adapter/memstore"
	"staffq/internal/domain"
)

func TestEncode_BuildsStoreFromProfiles(t *testing.T) {
	employees := []domain.Employee{
		{ID: 1, Name: "Alice Chen", Skills: []string{"Python"}, ExperienceYears: 6, Availability: domain.Available},
		{ID: 2, Name: "Bob Singh", Skills: []string{"Go"}, ExperienceYears: 4, Availability: domain.Busy},
	}

	emb := embedding.NewMockEmbedder(3)
	emb.Set(employees[0].ProfileText(), []float32{1, 0, 0})
	emb.Set(employees[1].ProfileText(), []float32{0, 1, 0})
	st := memstore.NewMemoryStore()

	uc := NewEncodeUseCase(emb, st, zap.NewNop())
	res, err := uc.Encode(context.Background(), employees, nil)
	if err != nil {
		t.Fatal(err)
	}

	if res.Encoded != 2 || res.Skipped != 0 {
		t.Errorf("expected 2 encoded, 0 skipped, got %d/%d", res.Encoded, res.Skipped)
	}
	if res.Model != "mock" || res.Dimension != 3 {
		t.Errorf("unexpected model metadata: %q dim %d", res.Model, res.Dimension)
	}
	if res.CorpusHash != domain.Fingerprint(employees) {
		t.Errorf("corpus hash mismatch: %q", res.CorpusHash)
	}

	n, err := st.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 stored vectors, got %d", n)
	}

	results, err := st.Search([]float32{1, 0, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != 1 {
		t.Errorf("expected employee 1 as best match, got %v", results)
	}
}

func TestEncode_SkipsProfilesWithNoUsableTerms(t *testing.T) {
	employees := []domain.Employee{
		{ID: 1, Name: "Alice Chen", Skills: []string{"Python"}, ExperienceYears: 6, Availability: domain.Available},
		{ID: 2, Name: "Bob Singh", Skills: []string{"Go"}, ExperienceYears: 4, Availability: domain.Busy},
	}

	// Only Alice gets a real vector; Bob embeds to the zero vector.
	emb := embedding.NewMockEmbedder(3)
	emb.Set(employees[0].ProfileText(), []float32{1, 0, 0})
	st := memstore.NewMemoryStore()

	uc := NewEncodeUseCase(emb, st, zap.NewNop())
	res, err := uc.Encode(context.Background(), employees, nil)
	if err != nil {
		t.Fatal(err)
	}

	if res.Encoded != 1 || res.Skipped != 1 {
		t.Errorf("expected 1 encoded, 1 skipped, got %d/%d", res.Encoded, res.Skipped)
	}
	n, err := st.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 stored vector, got %d", n)
	}
}

func TestEncode_ReportsProgressAcrossBatches(t *testing.T) {
	// More employees than one batch holds, so progress arrives in pieces.
	employees := make([]domain.Employee, 70)
	for i := range employees {
		employees[i] = domain.Employee{
			ID:              i + 1,
			Name:            fmt.Sprintf("Person %d", i+1),
			Skills:          []string{"Python"},
			ExperienceYears: 3,
			Availability:    domain.Available,
		}
	}

	emb := embedding.NewMockEmbedder(4)
	st := memstore.NewMemoryStore()
	uc := NewEncodeUseCase(emb, st, zap.NewNop())

	var calls []int
	res, err := uc.Encode(context.Background(), employees, func(done, total int) {
		if total != 70 {
			t.Errorf("expected total 70, got %d", total)
		}
		calls = append(calls, done)
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(calls) == 0 {
		t.Fatal("expected progress callbacks")
	}
	for i := 1; i < len(calls); i++ {
		if calls[i] <= calls[i-1] {
			t.Errorf("progress not monotonic: %v", calls)
		}
	}
	if calls[len(calls)-1] != 70 {
		t.Errorf("expected final progress 70, got %d", calls[len(calls)-1])
	}

	// Unregistered mock texts embed to zero vectors, so everything is skipped.
	if res.Encoded != 0 || res.Skipped != 70 {
		t.Errorf("expected 0 encoded, 70 skipped, got %d/%d", res.Encoded, res.Skipped)
	}
}
