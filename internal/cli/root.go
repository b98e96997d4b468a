package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"staffq/config"
	"staffq/internal/logger"
)

var (
	cfgFile  string
	rootDir  string
	logJSON  bool
	logDebug bool

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "staffq",
	Short: "Answer staffing questions over an employee directory",
	Long: `staffq answers natural-language staffing queries ("find a Python developer
with ML experience") over a small employee corpus. Profiles are embedded into
vectors, queries are matched by cosine similarity, and the shortlist grounds
either a generated answer or a deterministic template.

Example usage:
  staffq index                       # Build the vector index from the corpus
  staffq ask -q "who knows Python?"  # Answer a single query
  staffq chat                        # Interactive question loop
  staffq serve                       # Start the HTTP API`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		_ = godotenv.Load()

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("log-json") {
			cfg.Logging.JSON = logJSON
		}
		if cmd.Flags().Changed("debug") {
			cfg.Logging.Debug = logDebug
		}

		log, err = logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./staffq.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "working directory (default is current directory)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
	rootCmd.PersistentFlags().BoolVar(&logDebug, "debug", false, "enable debug logging")
}
