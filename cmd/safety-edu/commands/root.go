package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is reported by the version command and --version
const Version = "v0.1.0"

var plainMode bool

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "safety-edu",
		Short: "Automate study time and the assessment exam on the safety education platform",
		Long: `safety-edu logs into the safety education platform and either accrues study time
on the assigned module, answers the assessment exam from a local answer bank,
or prints the account's study summary.

The default school and answer bank can be set in the environment or a .env file
(SAFETYEDU_SCHOOL_ID, SAFETYEDU_ANSWERS, SAFETYEDU_BASE_URL, SAFETYEDU_HTTP_TIMEOUT).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().BoolVar(&plainMode, "plain", false, "Print progress as plain lines instead of the live view")
	rootCmd.AddCommand(NewStudyCommand())
	rootCmd.AddCommand(NewExamCommand())
	rootCmd.AddCommand(NewInfoCommand())
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewAnswersCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCmd := NewRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
