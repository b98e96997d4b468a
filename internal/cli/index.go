package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"staffq/config"
	"staffq/internal/adapter/store"
	"staffq/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index [corpus-file]",
	Short: "Build the vector index from the employee corpus",
	Long: `Embed every employee profile and store the vectors in the index database
at .staffq/index.db. Serving commands reuse the stored index as long as the
embedding model and the corpus are unchanged.

Examples:
  staffq index                      # Index the configured corpus
  staffq index data/employees.json  # Index a specific corpus file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		cfg.Corpus.Path = args[0]
	}

	directory, err := loadDirectory()
	if err != nil {
		return err
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}

	if err := config.EnsureStateDir(rootDir); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	dbPath := cfg.StorePath(rootDir)
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open index store: %w", err)
	}
	defer st.Close()

	fmt.Printf("Encoding %d employee profiles with %s...\n", directory.Count(), embedder.ModelName())

	bar := progressbar.NewOptions(directory.Count(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Encoding[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	result, err := usecase.NewEncodeUseCase(embedder, st, log).
		Encode(cmd.Context(), directory.All(), func(done, total int) {
			_ = bar.Set(done)
		})
	if err != nil {
		return fmt.Errorf("encoding failed: %w", err)
	}

	err = st.WriteMeta(store.IndexMeta{
		Model:      result.Model,
		Dimension:  result.Dimension,
		CorpusHash: result.CorpusHash,
		Count:      result.Encoded,
		BuiltAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to write index metadata: %w", err)
	}

	meta, err := st.ReadMeta()
	if err != nil {
		return fmt.Errorf("failed to read index metadata: %w", err)
	}

	fmt.Printf("\nIndexing complete:\n")
	fmt.Printf("  Profiles encoded: %d\n", result.Encoded)
	if result.Skipped > 0 {
		fmt.Printf("  Profiles skipped: %d (no usable terms)\n", result.Skipped)
	}
	fmt.Printf("  Model:            %s (%d dimensions)\n", result.Model, result.Dimension)
	fmt.Printf("  Build ID:         %s\n", meta.IndexID)
	fmt.Printf("\nIndex stored at: %s\n", dbPath)
	return nil
}
