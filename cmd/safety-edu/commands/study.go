package commands

import (
	"context"
	"fmt"

	"github.com/safetyedu/safety-edu/internal/config"
	"github.com/safetyedu/safety-edu/internal/tui"
	"github.com/safetyedu/safety-edu/internal/workflow"
	"github.com/spf13/cobra"
)

// NewStudyCommand creates the study command
func NewStudyCommand() *cobra.Command {
	var hours float64

	cmd := &cobra.Command{
		Use:   "study <username> <password> [<school-id>]",
		Short: "Accrue study time on every document of the assigned module",
		Long: `Enrolls in the first module assigned to the account and records a simulated
watch time for each of its document cells. Each cell gets a random duration
between hours*18 and hours*18+30 seconds.`,
		Args: accountArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudy(cmd, args, hours)
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 6, "Expected study time in hours")

	return cmd
}

func runStudy(cmd *cobra.Command, args []string, hours float64) error {
	if hours < 0 {
		return fmt.Errorf("--hours must not be negative, got %v", hours)
	}
	cfg := config.Load()
	console := tui.NewConsole(cmd.OutOrStdout())

	client, err := login(cmd.Context(), cfg, console, args)
	if err != nil {
		return err
	}

	console.Info("Starting study, expected study time %v hours", hours)
	return runWorkflow(cmd, console, "Study", func(ctx context.Context, events workflow.EventSink) error {
		study := &workflow.Study{API: client, Events: events}
		_, err := study.Run(ctx, hours)
		return err
	})
}
