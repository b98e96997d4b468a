package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"staffq/internal/adapter/embedding"
	"staffq/internal/adapter/memstore"
	"staffq/internal/corpus"
	"staffq/internal/domain"
	"staffq/internal/port"
)

func retrieveFixture(t *testing.T) (*embedding.MockEmbedder, *memstore.MemoryStore, *corpus.Directory) {
	t.Helper()

	employees := []domain.Employee{
		{ID: 1, Name: "Alice Chen", Skills: []string{"Python"}, ExperienceYears: 6, Availability: domain.Available},
		{ID: 2, Name: "Bob Singh", Skills: []string{"Go"}, ExperienceYears: 4, Availability: domain.Busy},
		{ID: 3, Name: "Carol Diaz", Skills: []string{"Java"}, ExperienceYears: 8, Availability: domain.Available},
	}

	emb := embedding.NewMockEmbedder(3)
	st := memstore.NewMemoryStore()
	err := st.Replace([]port.VectorItem{
		{ID: 1, Vector: []float32{1, 0, 0}},
		{ID: 2, Vector: []float32{0, 1, 0}},
		{ID: 3, Vector: []float32{0, 0, 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	return emb, st, corpus.NewDirectory(employees)
}

func TestRetrieve_RanksByScore(t *testing.T) {
	emb, st, dir := retrieveFixture(t)
	emb.Set("python work", []float32{0.9, 0.3, 0})

	uc := NewRetrieveUseCase(emb, st, dir, 5, 0.1, zap.NewNop())
	shortlist, err := uc.Retrieve(context.Background(), "python work")
	if err != nil {
		t.Fatal(err)
	}

	if len(shortlist) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(shortlist))
	}
	if shortlist[0].Employee.ID != 1 || shortlist[1].Employee.ID != 2 {
		t.Errorf("expected employees 1,2 in order, got %d,%d",
			shortlist[0].Employee.ID, shortlist[1].Employee.ID)
	}
	if shortlist[0].Score <= shortlist[1].Score {
		t.Errorf("scores not descending: %f then %f", shortlist[0].Score, shortlist[1].Score)
	}
	if shortlist[0].Rank != 1 || shortlist[1].Rank != 2 {
		t.Errorf("expected ranks 1,2, got %d,%d", shortlist[0].Rank, shortlist[1].Rank)
	}
	if shortlist[0].Employee.Name != "Alice Chen" {
		t.Errorf("expected hydrated employee record, got %q", shortlist[0].Employee.Name)
	}
}

func TestRetrieve_KeepsScoreEqualToThreshold(t *testing.T) {
	emb, st, dir := retrieveFixture(t)
	emb.Set("exact", []float32{1, 0, 0})

	// Employee 1 scores exactly 1.0 against this query.
	uc := NewRetrieveUseCase(emb, st, dir, 5, 1.0, zap.NewNop())
	shortlist, err := uc.Retrieve(context.Background(), "exact")
	if err != nil {
		t.Fatal(err)
	}

	if len(shortlist) != 1 || shortlist[0].Employee.ID != 1 {
		t.Fatalf("expected employee 1 kept at the threshold, got %v", shortlist)
	}
}

func TestRetrieve_EmptyBelowThreshold(t *testing.T) {
	emb, st, dir := retrieveFixture(t)
	emb.Set("weak", []float32{0.05, 0.05, 0.05})

	uc := NewRetrieveUseCase(emb, st, dir, 5, 0.9, zap.NewNop())
	shortlist, err := uc.Retrieve(context.Background(), "weak")
	if err != nil {
		t.Fatal(err)
	}
	if len(shortlist) != 0 {
		t.Errorf("expected empty shortlist, got %d entries", len(shortlist))
	}
}

func TestRetrieve_HonorsTopK(t *testing.T) {
	emb, st, dir := retrieveFixture(t)
	emb.Set("all", []float32{1, 1, 1})

	uc := NewRetrieveUseCase(emb, st, dir, 2, 0.1, zap.NewNop())
	shortlist, err := uc.Retrieve(context.Background(), "all")
	if err != nil {
		t.Fatal(err)
	}

	// Equal scores tie-break by ascending ID, truncated to topK.
	if len(shortlist) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(shortlist))
	}
	if shortlist[0].Employee.ID != 1 || shortlist[1].Employee.ID != 2 {
		t.Errorf("expected employees 1,2, got %d,%d",
			shortlist[0].Employee.ID, shortlist[1].Employee.ID)
	}
}

func TestRetrieve_SkipsIDsMissingFromCorpus(t *testing.T) {
	employees := []domain.Employee{
		{ID: 1, Name: "Alice Chen", Skills: []string{"Python"}, ExperienceYears: 6, Availability: domain.Available},
	}
	emb := embedding.NewMockEmbedder(2)
	st := memstore.NewMemoryStore()
	err := st.Replace([]port.VectorItem{
		{ID: 1, Vector: []float32{1, 0}},
		{ID: 99, Vector: []float32{1, 0}},
	})
	if err != nil {
		t.Fatal(err)
	}
	emb.Set("q", []float32{1, 0})

	uc := NewRetrieveUseCase(emb, st, corpus.NewDirectory(employees), 5, 0.1, zap.NewNop())
	shortlist, err := uc.Retrieve(context.Background(), "q")
	if err != nil {
		t.Fatal(err)
	}

	if len(shortlist) != 1 || shortlist[0].Employee.ID != 1 {
		t.Fatalf("expected only employee 1, got %v", shortlist)
	}
	if shortlist[0].Rank != 1 {
		t.Errorf("expected rank 1 after skipping stale id, got %d", shortlist[0].Rank)
	}
}

func TestRetrieve_EmbedderError(t *testing.T) {
	emb, st, dir := retrieveFixture(t)
	emb.Set("bad", []float32{1, 0}) // wrong dimension, Embed fails

	uc := NewRetrieveUseCase(emb, st, dir, 5, 0.1, zap.NewNop())
	if _, err := uc.Retrieve(context.Background(), "bad"); err == nil {
		t.Fatal("expected error from failing embedder")
	}
}
