package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"staffq/config"
	"staffq/internal/adapter/cache"
	"staffq/internal/adapter/embedding"
	"staffq/internal/adapter/generator"
	"staffq/internal/adapter/memstore"
	"staffq/internal/adapter/store"
	"staffq/internal/corpus"
	"staffq/internal/port"
	"staffq/internal/prompt"
	"staffq/internal/usecase"
)

// pipeline bundles everything a query-answering command needs.
type pipeline struct {
	directory *corpus.Directory
	embedder  port.Embedder
	store     port.VectorStore
	answer    *usecase.AnswerUseCase
}

func (p *pipeline) Close() {
	if p.store != nil {
		_ = p.store.Close()
	}
}

// buildPipeline loads the corpus, ensures the vector index matches it, and
// wires retrieval and answering. The returned pipeline must be closed.
func buildPipeline(ctx context.Context) (*pipeline, error) {
	directory, err := loadDirectory()
	if err != nil {
		return nil, err
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	vectorStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := ensureIndex(ctx, vectorStore, embedder, directory); err != nil {
		_ = vectorStore.Close()
		return nil, err
	}

	var retriever port.Retriever = usecase.NewRetrieveUseCase(
		embedder, vectorStore, directory, cfg.Retrieve.TopK, cfg.Retrieve.MinScore, log)
	if cfg.Retrieve.Cache.Enabled {
		qc := cache.NewQueryCache(cfg.Retrieve.Cache.Size,
			time.Duration(cfg.Retrieve.Cache.TTLSeconds)*time.Second)
		retriever = cache.NewCachedRetriever(retriever, qc)
	}

	prompts, err := prompt.NewBuilder()
	if err != nil {
		_ = vectorStore.Close()
		return nil, err
	}

	answer := usecase.NewAnswerUseCase(retriever, buildGenerator(ctx, cfg), prompts,
		usecase.GenerationOptions{
			Temperature: cfg.Generation.Temperature,
			MaxTokens:   cfg.Generation.MaxTokens,
			Timeout:     time.Duration(cfg.Generation.TimeoutSeconds) * time.Second,
		}, log)

	return &pipeline{
		directory: directory,
		embedder:  embedder,
		store:     vectorStore,
		answer:    answer,
	}, nil
}

// loadDirectory reads the corpus. Zero usable records is a startup failure,
// since nothing downstream can work without them.
func loadDirectory() (*corpus.Directory, error) {
	pattern := cfg.Corpus.Path
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}

	directory, err := corpus.NewLoader(log).LoadGlob(pattern)
	if err != nil {
		return nil, err
	}
	if directory.Count() == 0 {
		return nil, fmt.Errorf("corpus %s holds no usable employee records", cfg.Corpus.Path)
	}
	return directory, nil
}

func buildEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "", "local":
		return embedding.NewLocalEmbedder(cfg.Embedding.Dimension, cfg.Embedding.Stemming)
	case "openai":
		key, envName := apiKey(cfg.Embedding.APIKeyEnv, "OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("embedding provider openai needs %s", envName)
		}
		return embedding.NewOpenAIEmbedder(key, cfg.Embedding.Model, cfg.Embedding.BaseURL,
			cfg.Embedding.Dimension, cfg.Embedding.RequestsPerSecond)
	case "mock":
		if cfg.Embedding.Dimension <= 0 {
			return nil, fmt.Errorf("mock embedding provider needs an explicit dimension")
		}
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
}

// buildGenerator returns nil when generation is disabled or unusable; the
// pipeline then answers from the template path alone.
func buildGenerator(ctx context.Context, cfg *config.Config) port.Generator {
	switch cfg.Generation.Provider {
	case "", "none":
		return nil
	case "openai":
		key, envName := apiKey(cfg.Generation.APIKeyEnv, "OPENAI_API_KEY")
		if key == "" {
			log.Warn("generation disabled: API key not set", zap.String("env", envName))
			return nil
		}
		gen, err := generator.NewOpenAIGenerator(key, cfg.Generation.Model, cfg.Generation.BaseURL)
		if err != nil {
			log.Warn("generation disabled", zap.Error(err))
			return nil
		}
		return gen
	case "gemini":
		key, envName := apiKey(cfg.Generation.APIKeyEnv, "GEMINI_API_KEY")
		if key == "" {
			log.Warn("generation disabled: API key not set", zap.String("env", envName))
			return nil
		}
		gen, err := generator.NewGeminiGenerator(ctx, key, cfg.Generation.Model)
		if err != nil {
			log.Warn("generation disabled", zap.Error(err))
			return nil
		}
		return gen
	default:
		log.Warn("generation disabled: unknown provider",
			zap.String("provider", cfg.Generation.Provider))
		return nil
	}
}

func apiKey(envVar, fallback string) (key, envName string) {
	envName = envVar
	if envName == "" {
		envName = fallback
	}
	return os.Getenv(envName), envName
}

func openStore(cfg *config.Config) (port.VectorStore, error) {
	switch cfg.Store.Type {
	case "", "memory":
		return memstore.NewMemoryStore(), nil
	case "bolt":
		if err := config.EnsureStateDir(rootDir); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		return store.NewBoltStore(cfg.StorePath(rootDir))
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Store.Type)
	}
}

// ensureIndex makes the vector store serve the current corpus. A persistent
// store is reused when its metadata still matches; anything else triggers a
// fresh encode.
func ensureIndex(ctx context.Context, vectorStore port.VectorStore, embedder port.Embedder, directory *corpus.Directory) error {
	if bolt, ok := vectorStore.(*store.BoltStore); ok {
		meta, err := bolt.ReadMeta()
		if err != nil {
			return fmt.Errorf("read index metadata: %w", err)
		}
		if meta != nil {
			err := meta.CheckCompatible(embedder.ModelName(), embedder.Dimension(), directory.Fingerprint())
			if err == nil {
				log.Debug("reusing stored index",
					zap.String("index_id", meta.IndexID),
					zap.Int("vectors", meta.Count))
				return nil
			}
			log.Info("rebuilding index", zap.String("reason", err.Error()))
		}
	}

	result, err := usecase.NewEncodeUseCase(embedder, vectorStore, log).
		Encode(ctx, directory.All(), nil)
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	if result.Encoded == 0 {
		log.Warn("no profiles produced usable vectors, every query will fall back")
	}

	if bolt, ok := vectorStore.(*store.BoltStore); ok {
		err := bolt.WriteMeta(store.IndexMeta{
			Model:      result.Model,
			Dimension:  result.Dimension,
			CorpusHash: result.CorpusHash,
			Count:      result.Encoded,
			BuiltAt:    time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("write index metadata: %w", err)
		}
	}
	return nil
}
