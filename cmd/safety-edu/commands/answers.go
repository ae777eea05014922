package commands

import (
	"fmt"

	"github.com/safetyedu/safety-edu/internal/answers"
	"github.com/safetyedu/safety-edu/internal/config"
	"github.com/safetyedu/safety-edu/internal/db"
	"github.com/safetyedu/safety-edu/internal/tui"
	"github.com/spf13/cobra"
)

// NewAnswersCommand creates the answers command group
func NewAnswersCommand() *cobra.Command {
	var answersPath string

	cmd := &cobra.Command{
		Use:   "answers",
		Short: "Inspect the local answer bank",
	}
	cmd.PersistentFlags().StringVar(&answersPath, "answers", "", "Path to the answer bank (default $SAFETYEDU_ANSWERS or ./answers.json)")

	resolve := func() string {
		if answersPath != "" {
			return answersPath
		}
		return config.Load().AnswersPath
	}

	cmd.AddCommand(newAnswersStatsCommand(resolve))
	cmd.AddCommand(newAnswersFindCommand(resolve))

	return cmd
}

func newAnswersStatsCommand(path func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count answer bank entries per question type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.GetDB()
			if err != nil {
				return err
			}

			p := path()
			counts, err := answers.Stats(cmd.Context(), database, p)
			if err != nil {
				return err
			}

			console := tui.NewConsole(cmd.OutOrStdout())
			total := 0
			for _, c := range counts {
				console.Log("  %-12s %d", c.Type, c.Count)
				total += c.Count
			}
			console.Info("%d entries in %s", total, p)
			return nil
		},
	}
}

func newAnswersFindCommand(path func() string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <text>",
		Short: "Find answer bank entries whose question contains text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			database, err := db.GetDB()
			if err != nil {
				return err
			}

			records, err := answers.Search(cmd.Context(), database, path(), args[0], limit)
			if err != nil {
				return err
			}

			console := tui.NewConsole(cmd.OutOrStdout())
			for _, r := range records {
				console.Log("  %s [%s] %s answer: %s", r.ID, r.Type, answers.Preview(r.Content, answers.PreviewLength), answers.Format(r))
			}
			console.Info("%d found", len(records))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")

	return cmd
}
