package commands

import (
	"github.com/safetyedu/safety-edu/internal/config"
	"github.com/safetyedu/safety-edu/internal/tui"
	"github.com/safetyedu/safety-edu/internal/workflow"
	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <username> <password> [<school-id>]",
		Short: "Show the study summary and the last exam result",
		Args:  accountArgs,
		RunE:  runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	console := tui.NewConsole(cmd.OutOrStdout())

	client, err := login(cmd.Context(), cfg, console, args)
	if err != nil {
		return err
	}

	report, err := workflow.Info(cmd.Context(), client, cfg.AssessmentCourseID)
	if err != nil {
		return err
	}

	console.Log("  Total study time: %s", report.Summary.Duration())
	console.Log("  Study sessions:   %d", report.Summary.CumulativeStudyCount)
	console.Log("  Courses studied:  %d", report.Summary.CumulativeStudyCourse)
	if report.LastResult == nil {
		console.Log("  No exam attempt yet")
		return nil
	}
	console.Log("  Last exam, time used: %s, total score: %s", report.LastResult.AnswerTimeStr, report.LastResult.StudentTotalScore)
	return nil
}
