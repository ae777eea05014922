package commands

import (
	"context"
	"fmt"

	"github.com/safetyedu/safety-edu/internal/answers"
	"github.com/safetyedu/safety-edu/internal/config"
	"github.com/safetyedu/safety-edu/internal/tui"
	"github.com/safetyedu/safety-edu/internal/workflow"
	"github.com/spf13/cobra"
)

// examSleep paces the exam between answers and before reading the grade
var examSleep workflow.Sleeper = workflow.Sleep

// NewExamCommand creates the exam command
func NewExamCommand() *cobra.Command {
	var (
		score       int
		answersPath string
	)

	cmd := &cobra.Command{
		Use:   "exam <username> <password> [<school-id>]",
		Short: "Answer and submit the assessment exam from the answer bank",
		Long: `Fetches the assessment paper, answers up to --score questions in paper order
from the local answer bank, submits the paper and prints the graded result.
Questions beyond the score cap are left unanswered. Each saved answer is
followed by a 5 to 10 second pause.`,
		Args: accountArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExam(cmd, args, score, answersPath)
		},
	}

	cmd.Flags().IntVar(&score, "score", workflow.MaxScore, "Number of questions to answer (0-100)")
	cmd.Flags().StringVar(&answersPath, "answers", "", "Path to the answer bank (default $SAFETYEDU_ANSWERS or ./answers.json)")

	return cmd
}

func runExam(cmd *cobra.Command, args []string, score int, answersPath string) error {
	if score < 0 || score > workflow.MaxScore {
		return fmt.Errorf("--score must be within [0, %d], got %d", workflow.MaxScore, score)
	}
	cfg := config.Load()
	if answersPath == "" {
		answersPath = cfg.AnswersPath
	}
	console := tui.NewConsole(cmd.OutOrStdout())

	bank, err := answers.Load(answersPath)
	if err != nil {
		return err
	}

	client, err := login(cmd.Context(), cfg, console, args)
	if err != nil {
		return err
	}

	console.Info("Loaded %d answers from %s", bank.Len(), answersPath)
	return runWorkflow(cmd, console, "Exam", func(ctx context.Context, events workflow.EventSink) error {
		exam := &workflow.Exam{
			API:      client,
			Bank:     bank,
			CourseID: cfg.AssessmentCourseID,
			Sleep:    examSleep,
			Events:   events,
		}
		_, err := exam.Run(ctx, score)
		return err
	})
}
