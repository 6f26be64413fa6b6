package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/placemap/internal/cmd/output"
	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/logging"
)

// Execute runs the placemap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "placemap",
		Short:   "Convert GeoJSON features into places with stable keys",
		Version: a.version,
		Long: `Placemap converts GeoJSON-like features into place records.

Each feature is identified by its id, or by the property named in the
configuration, and keeps the same place key across runs through the
placeKeyByFeatureKey linking document written next to the places.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config-file", "", "application config file (default is $HOME/.placemap.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("output", "o", "", "report format: table, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Document flags, defaults come from the loaded configuration
	flags.String("config", a.config.ConfigPath, "configuration document (fidColumnName, nameColumnName, placeLinking)")
	flags.String("features", a.config.FeaturesPath, "features document")
	flags.String("linking", a.config.LinkingPath, "prior placeKeyByFeatureKey linking document")
	flags.String("out", a.config.OutputDir, "output directory")
	flags.String("format", a.config.Format, "output document format: json, yaml")
	flags.Bool("geometry", a.config.Geometry, "embed the bounding envelope of each feature geometry")
	flags.Bool("validate", a.config.Validate, "validate output documents before writing them")
	flags.Bool("strict-writes", a.config.StrictWrites, "fail the run when an output cannot be written")

	rootCmd.SetVersionTemplate("placemap {{.Version}}\n")
	if a.out != nil {
		rootCmd.SetOut(a.out)
	}

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	// An explicit config file replaces the configuration loaded at startup
	if configFile := mustGetString(cmd, "config-file"); configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "output"),
		mustGetString(cmd, "log-level"),
	)

	format, err := output.ParseFormat(a.config.Output)
	if err != nil {
		return errors.NewValidationError("output", a.config.Output, err.Error())
	}
	a.config.Output = string(format)

	// Document flags only override when given explicitly
	if flags.Changed("config") {
		a.config.ConfigPath = mustGetString(cmd, "config")
	}
	if flags.Changed("features") {
		a.config.FeaturesPath = mustGetString(cmd, "features")
	}
	if flags.Changed("linking") {
		a.config.LinkingPath = mustGetString(cmd, "linking")
	}
	if flags.Changed("out") {
		a.config.OutputDir = mustGetString(cmd, "out")
	}
	if flags.Changed("format") {
		a.config.Format = mustGetString(cmd, "format")
	}
	if flags.Changed("geometry") {
		a.config.Geometry = mustGetBool(cmd, "geometry")
	}
	if flags.Changed("validate") {
		a.config.Validate = mustGetBool(cmd, "validate")
	}
	if flags.Changed("strict-writes") {
		a.config.StrictWrites = mustGetBool(cmd, "strict-writes")
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.CreateRunCommand())
	rootCmd.AddCommand(a.CreateCheckCommand())
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
