package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/placemap/cmd/placemap/cmd/check"
	"github.com/agentstation/placemap/cmd/placemap/cmd/run"
)

// CreateRunCommand creates the run command with app dependencies.
func (a *App) CreateRunCommand() *cobra.Command {
	return run.NewCommand(a)
}

// CreateCheckCommand creates the check command with app dependencies.
func (a *App) CreateCheckCommand() *cobra.Command {
	return check.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("placemap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
