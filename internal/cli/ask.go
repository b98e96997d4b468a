package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"staffq/internal/usecase"
)

var (
	askQuery    string
	askTopK     int
	askMinScore float64
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a staffing query against the indexed corpus",
	Long: `Run a single natural-language staffing query through the retrieval
pipeline and print the answer with the matching employees.

Examples:
  staffq ask -q "Find Python developers with 3+ years experience"
  staffq ask -q "Who has worked on healthcare projects?" --json`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "Staffing query to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "Number of matches to consider (default from config)")
	askCmd.Flags().Float64Var(&askMinScore, "min-score", -1, "Minimum similarity score (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the full response as JSON")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(askQuery) == "" {
		return fmt.Errorf("query must not be empty")
	}
	if askTopK > 0 {
		cfg.Retrieve.TopK = askTopK
	}
	if cmd.Flags().Changed("min-score") {
		cfg.Retrieve.MinScore = askMinScore
	}

	ctx := cmd.Context()
	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	ans := p.answer.Answer(ctx, askQuery)

	if askJSON {
		out, err := json.MarshalIndent(usecase.NewAnswerResponse(ans), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal response: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(ans.Text)
	if len(ans.Shortlist) > 0 {
		fmt.Printf("\nMatches (confidence %.2f):\n", ans.Confidence)
		for _, entry := range ans.Shortlist {
			fmt.Printf("  %d. %s - %s, %d years (score %.3f)\n",
				entry.Rank, entry.Employee.Name, strings.Join(entry.Employee.Skills, ", "),
				entry.Employee.ExperienceYears, entry.Score)
		}
	}
	return nil
}
