package commands

import (
	"github.com/safetyedu/safety-edu/internal/api"
	"github.com/safetyedu/safety-edu/internal/config"
	"github.com/safetyedu/safety-edu/internal/schools"
	"github.com/safetyedu/safety-edu/internal/tui"
	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <school-name>",
		Short: "Search the school directory by name",
		Long: `Lists every school whose name contains the given text, with the id to pass
as <school-id> to the other commands. Matching is case-sensitive.`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	console := tui.NewConsole(cmd.OutOrStdout())

	client, err := api.New(cfg.API())
	if err != nil {
		return err
	}

	matches, err := schools.NewResolver(client).Search(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	console.Info("Schools matching %q:", args[0])
	for _, s := range matches {
		console.Log("  ID: %-25s School: %s", s.ID, s.Name)
	}
	console.Info("%d found", len(matches))
	return nil
}
