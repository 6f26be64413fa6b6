package reconciler

import (
	"github.com/google/uuid"

	"github.com/agentstation/placemap/pkg/errors"
)

// KeyGenerator produces a fresh place key.
type KeyGenerator func() string

// options configures a reconciler.
type options struct {
	geometry bool
	keys     KeyGenerator
}

func defaultOptions() *options {
	return &options{
		geometry: true,
		keys:     uuid.NewString,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithGeometry controls whether the bounding envelope of each feature
// geometry is embedded in its place.
func WithGeometry(enabled bool) Option {
	return func(o *options) error {
		o.geometry = enabled
		return nil
	}
}

// WithKeyGenerator replaces the UUID v4 generator used for new place keys.
func WithKeyGenerator(gen KeyGenerator) Option {
	return func(o *options) error {
		if gen == nil {
			return &errors.ValidationError{
				Field:   "keys",
				Message: "cannot be nil",
			}
		}
		o.keys = gen
		return nil
	}
}
