package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via -ldflags "-X staffq/internal/cli.version=..." at build time.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("staffq version: %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
