// Package application provides the application interface for placemap commands.
//
// Commands accept this interface rather than the concrete App type, so they
// can be tested with Mock:
//
//	mock := &application.Mock{
//	    SourceFunc: func() storage.Source {
//	        return storage.NewMemorySource(cfg, feats, nil)
//	    },
//	    SinkFunc: func() (storage.Sink, error) {
//	        return sink, nil
//	    },
//	}
//	cmd := run.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/placemap"
	"github.com/agentstation/placemap/pkg/storage"
)

// Application provides what commands need from the application layer.
type Application interface {
	// Source returns the input documents of a run as configured by files,
	// environment and flags.
	Source() storage.Source

	// Sink returns where the output documents are written.
	Sink() (storage.Sink, error)

	// RunOptions returns the run options derived from the configuration.
	RunOptions() ([]placemap.Option, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured report format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
