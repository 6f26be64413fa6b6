// Package check provides the check command, a dry run that always validates.
package check

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/placemap"
	"github.com/agentstation/placemap/cmd/application"
	"github.com/agentstation/placemap/cmd/placemap/cmd/run"
)

// NewCommand creates the check command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		GroupID: "core",
		Short:   "Validate inputs and outputs without writing anything",
		Long: `Check loads the input documents, converts them and validates both output
documents exactly as run would, but writes nothing. Use it to find features
that would be skipped and to make sure the configuration is complete.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := app.RunOptions()
			if err != nil {
				return err
			}
			opts = append(opts,
				placemap.WithDryRun(true),
				placemap.WithValidation(true),
			)
			return run.Execute(cmd, app, opts...)
		},
	}
}
