package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Answer staffing queries interactively",
	Long: `Start an interactive session that answers staffing queries against the
indexed corpus. Type "exit", "quit", or an empty line to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	fmt.Printf("Ready to answer staffing queries over %d employees.\n", p.directory.Count())
	fmt.Println(`Type "exit" or an empty line to leave.`)

	for {
		prompt := promptui.Prompt{
			Label: "query",
		}
		input, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return fmt.Errorf("prompt failed: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" || input == "exit" || input == "quit" {
			return nil
		}

		ans := p.answer.Answer(ctx, input)
		fmt.Printf("\n%s\n", ans.Text)
		if len(ans.Shortlist) > 0 {
			fmt.Printf("\nMatches (confidence %.2f):\n", ans.Confidence)
			for _, entry := range ans.Shortlist {
				fmt.Printf("  %d. %s - %s, %d years (score %.3f)\n",
					entry.Rank, entry.Employee.Name, strings.Join(entry.Employee.Skills, ", "),
					entry.Employee.ExperienceYears, entry.Score)
			}
		}
		fmt.Println()
	}
}
