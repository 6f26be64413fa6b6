// Package app provides the application context and dependency management
// for the placemap CLI. It centralizes configuration, logging and the
// construction of the sources and sinks a run works with.
package app

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/placemap"
	"github.com/agentstation/placemap/cmd/application"
	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/save"
	"github.com/agentstation/placemap/pkg/storage"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the placemap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Optional overrides, mostly for tests
	source storage.Source
	sink   storage.Sink
	out    io.Writer
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment and
// config files, which can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured report format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// Source returns the input documents configured for this invocation.
func (a *App) Source() storage.Source {
	if a.source != nil {
		return a.source
	}
	return storage.NewFileSource(a.config.ConfigPath, a.config.FeaturesPath, a.config.LinkingPath)
}

// Sink returns the output directory sink configured for this invocation.
func (a *App) Sink() (storage.Sink, error) {
	if a.sink != nil {
		return a.sink, nil
	}
	sink, err := storage.NewFileSink(save.WithPath(a.config.OutputDir))
	if err != nil {
		return nil, err
	}
	return sink, nil
}

// RunOptions translates the configuration into run options.
func (a *App) RunOptions() ([]placemap.Option, error) {
	format, err := save.ParseFormat(a.config.Format)
	if err != nil {
		return nil, &errors.ValidationError{
			Field:   "format",
			Value:   a.config.Format,
			Message: err.Error(),
		}
	}

	return []placemap.Option{
		placemap.WithFormat(format),
		placemap.WithGeometry(a.config.Geometry),
		placemap.WithValidation(a.config.Validate),
		placemap.WithStrictWrites(a.config.StrictWrites),
	}, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSource replaces the file source built from the configuration.
func WithSource(src storage.Source) Option {
	return func(a *App) error {
		a.source = src
		return nil
	}
}

// WithSink replaces the file sink built from the configuration.
func WithSink(sink storage.Sink) Option {
	return func(a *App) error {
		a.sink = sink
		return nil
	}
}

// WithWriter sends command output to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}
