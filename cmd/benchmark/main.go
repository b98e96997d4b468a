package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"staffq/config"
	"staffq/internal/adapter/embedding"
	"staffq/internal/adapter/memstore"
	"staffq/internal/corpus"
	"staffq/internal/port"
	"staffq/internal/usecase"
)

func main() {
	dir := flag.String("dir", ".", "Directory holding the config and corpus")
	query := flag.String("q", "", "Query to test")
	topK := flag.Int("k", 10, "Number of results")
	flag.Parse()

	if *query == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -dir . -q \"query\"")
		fmt.Println("\nMeasures:")
		fmt.Println("  1. Corpus encoding time (profiles to vectors)")
		fmt.Println("  2. Query latency (embed + rank)")
		fmt.Println("  3. Shortlist quality (similarity spread)")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	pattern := cfg.Corpus.Path
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(*dir, pattern)
	}
	directory, err := corpus.NewLoader(zap.NewNop()).LoadGlob(pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading corpus: %v\n", err)
		os.Exit(1)
	}
	if directory.Count() == 0 {
		fmt.Fprintln(os.Stderr, "Corpus holds no usable employee records")
		os.Exit(1)
	}

	embedder, err := setupEmbedder(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Embedder not available: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("STAFFING RETRIEVAL BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))

	ctx := context.Background()
	store := memstore.NewMemoryStore()

	encodeStart := time.Now()
	result, err := usecase.NewEncodeUseCase(embedder, store, zap.NewNop()).
		Encode(ctx, directory.All(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Encoding error: %v\n", err)
		os.Exit(1)
	}
	encodeTime := time.Since(encodeStart)

	fmt.Printf("Profiles encoded: %d (%d skipped)\n", result.Encoded, result.Skipped)
	fmt.Printf("Model: %s (%s)\n", result.Model, cfg.Embedding.Provider)
	fmt.Printf("Dimension: %d\n", result.Dimension)
	fmt.Printf("Encode time: %s (%.2fms per profile)\n", encodeTime.Round(time.Microsecond),
		float64(encodeTime.Microseconds())/1000/float64(directory.Count()))
	fmt.Println()

	fmt.Printf("Query: %q\n", *query)
	fmt.Println(strings.Repeat("-", 70))

	retriever := usecase.NewRetrieveUseCase(embedder, store, directory, *topK, 0, zap.NewNop())

	queryStart := time.Now()
	shortlist, err := retriever.Retrieve(ctx, *query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Retrieval error: %v\n", err)
		os.Exit(1)
	}
	queryTime := time.Since(queryStart)

	fmt.Printf("Embedded and ranked in %s\n\n", queryTime.Round(time.Microsecond))

	if len(shortlist) == 0 {
		fmt.Println("No matches. The query may hold no usable terms.")
		os.Exit(0)
	}

	fmt.Printf("Top %d matches:\n\n", len(shortlist))

	totalScore := 0.0
	for _, entry := range shortlist {
		e := entry.Employee
		totalScore += entry.Score

		rating := "LOW"
		if entry.Score > 0.5 {
			rating = "HIGH"
		} else if entry.Score > 0.3 {
			rating = "GOOD"
		} else if entry.Score > 0.15 {
			rating = "OK"
		}

		fmt.Printf("%d. [%s %.3f] %s - %s (%d yrs, %s)\n", entry.Rank, rating, entry.Score,
			e.Name, strings.Join(e.Skills, ", "), e.ExperienceYears, e.Availability)
		if len(e.Projects) > 0 {
			fmt.Printf("   Projects: %s\n", strings.Join(e.Projects, ", "))
		}
		fmt.Println()
	}

	avgScore := totalScore / float64(len(shortlist))
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("QUALITY METRICS:\n")
	fmt.Printf("  Average similarity: %.3f\n", avgScore)
	fmt.Printf("  Top-1 similarity:   %.3f\n", shortlist[0].Score)
	fmt.Printf("  Confidence:         %.3f\n", usecase.Confidence(shortlist))

	if avgScore > 0.3 {
		fmt.Println("  Status: GOOD - the shortlist tracks the query well")
	} else if avgScore > 0.15 {
		fmt.Println("  Status: OK - matches share some terms with the query")
	} else {
		fmt.Println("  Status: POOR - consider richer profiles or a remote embedding model")
	}
}

func setupEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "", "local":
		return embedding.NewLocalEmbedder(cfg.Embedding.Dimension, cfg.Embedding.Stemming)
	default:
		return nil, fmt.Errorf("benchmark runs the local embedder only, config has %q", cfg.Embedding.Provider)
	}
}
