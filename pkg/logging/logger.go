// Package logging provides structured logging for placemap using zerolog.
// Console output is used when stderr is a terminal, JSON otherwise, so batch
// runs under a scheduler produce machine-readable logs.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Int("features", 12).Msg("Loaded features")
//
//	ctx := logging.WithFeature(ctx, 3, "F1")
//	logging.FromContext(ctx).Warn().Msg("No geometry for feature")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is the global logger instance, configured from the
// environment until SetDefault replaces it.
var defaultLogger = NewLoggerFromConfig(EnvConfig())

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
