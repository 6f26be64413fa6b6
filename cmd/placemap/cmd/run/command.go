// Package run provides the run command, which performs a conversion.
package run

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/placemap"
	"github.com/agentstation/placemap/cmd/application"
	"github.com/agentstation/placemap/internal/cmd/output"
	"github.com/agentstation/placemap/pkg/logging"
)

// NewCommand creates the run command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "run",
		GroupID: "core",
		Short:   "Convert features into places",
		Long: `Run reads the configuration, features and prior linking documents,
converts every identifiable feature with a geometry into a place, and writes
the places and the updated placeKeyByFeatureKey linking to the output directory.

Features without an identity or without a geometry are skipped with a warning.
The run fails when there are no features at all or when every feature was skipped.`,
		Example: `  placemap run
  placemap run --features data/parcels.geojson --out build
  placemap run --format yaml --geometry=false --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := app.RunOptions()
			if err != nil {
				return err
			}
			opts = append(opts, placemap.WithDryRun(dryRun))
			return Execute(cmd, app, opts...)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "reconcile and validate without writing outputs")

	return cmd
}

// Execute runs a conversion with the application source and sink and prints
// the report. The report is printed even when some output failed.
func Execute(cmd *cobra.Command, app application.Application, opts ...placemap.Option) error {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())

	sink, err := app.Sink()
	if err != nil {
		return err
	}

	report, runErr := placemap.Run(ctx, app.Source(), sink, opts...)
	if report != nil {
		format := output.DetectFormat(app.OutputFormat())
		if err := output.FormatReport(cmd.OutOrStdout(), report, format); err != nil {
			return err
		}
	}
	return runErr
}
