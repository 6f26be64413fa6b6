package placemap

import (
	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/reconciler"
	"github.com/agentstation/placemap/pkg/save"
)

// config holds the settings of one run.
type config struct {
	geometry     bool
	validate     bool
	strictWrites bool
	dryRun       bool
	format       save.Format
	keys         reconciler.KeyGenerator
	hooks        *hooks
}

func defaultConfig() *config {
	return &config{
		geometry:     true,
		validate:     true,
		strictWrites: true,
		format:       save.FormatJSON,
		hooks:        newHooks(),
	}
}

// Option is a function that configures a run
type Option func(*config) error

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithGeometry configures whether places carry the bounding envelope of their feature geometry
func WithGeometry(enabled bool) Option {
	return func(c *config) error {
		c.geometry = enabled
		return nil
	}
}

// WithValidation configures whether encoded outputs are checked before they are written
func WithValidation(enabled bool) Option {
	return func(c *config) error {
		c.validate = enabled
		return nil
	}
}

// WithStrictWrites configures whether write failures fail the run. When
// disabled, write failures are only logged.
func WithStrictWrites(enabled bool) Option {
	return func(c *config) error {
		c.strictWrites = enabled
		return nil
	}
}

// WithDryRun reconciles and validates without writing any output
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithFormat configures the encoding of the output documents
func WithFormat(format save.Format) Option {
	return func(c *config) error {
		if !format.IsValid() {
			return &errors.ValidationError{
				Field:   "format",
				Value:   format,
				Message: "unsupported output format",
			}
		}
		c.format = format
		return nil
	}
}

// WithKeyGenerator replaces the generator used for new place keys
func WithKeyGenerator(gen reconciler.KeyGenerator) Option {
	return func(c *config) error {
		if gen == nil {
			return &errors.ValidationError{
				Field:   "keys",
				Message: "cannot be nil",
			}
		}
		c.keys = gen
		return nil
	}
}

// WithPlaceAddedHook registers a callback for places whose key was generated in this run
func WithPlaceAddedHook(fn PlaceAddedHook) Option {
	return func(c *config) error {
		c.hooks.OnPlaceAdded(fn)
		return nil
	}
}

// WithPlaceRemovedHook registers a callback for prior links no longer backed by a feature
func WithPlaceRemovedHook(fn PlaceRemovedHook) Option {
	return func(c *config) error {
		c.hooks.OnPlaceRemoved(fn)
		return nil
	}
}

// WithFeatureOmittedHook registers a callback for skipped features
func WithFeatureOmittedHook(fn FeatureOmittedHook) Option {
	return func(c *config) error {
		c.hooks.OnFeatureOmitted(fn)
		return nil
	}
}
