package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/safetyedu/safety-edu/internal/api"
	"github.com/safetyedu/safety-edu/internal/config"
	"github.com/safetyedu/safety-edu/internal/schools"
	"github.com/safetyedu/safety-edu/internal/tui"
	"github.com/safetyedu/safety-edu/internal/workflow"
	"github.com/spf13/cobra"
)

// accountArgs accepts <username> <password> [<school-id>]
var accountArgs = cobra.RangeArgs(2, 3)

// login resolves the school from args (or the configured default), logs in
// and prints the account banner.
func login(ctx context.Context, cfg *config.Config, console *tui.Console, args []string) (*api.Client, error) {
	username, password := args[0], args[1]
	schoolID := cfg.SchoolID
	if len(args) > 2 && args[2] != "" {
		schoolID = args[2]
	}

	client, err := api.New(cfg.API())
	if err != nil {
		return nil, err
	}

	school, err := schools.NewResolver(client).Resolve(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	authed, err := client.Login(ctx, school.ID, username, password)
	if err != nil {
		return nil, err
	}

	user, err := authed.AuthInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account info: %w", err)
	}
	console.Warn("Logged in as %s (%s)", user.DisplayName, school.Name)

	return authed, nil
}

// runWorkflow runs fn behind the live progress view when stdout is a
// terminal, and prints its events through the console otherwise.
func runWorkflow(cmd *cobra.Command, console *tui.Console, title string, fn func(context.Context, workflow.EventSink) error) error {
	if plainMode || !isTerminal(cmd) {
		return fn(cmd.Context(), console)
	}
	return tui.Run(cmd.Context(), cmd.OutOrStdout(), title, fn)
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
