// Package reconciler turns input features into place records. Every feature
// that can be identified and carries a geometry becomes one place; its key is
// taken from the prior identity linking when one exists, so keys stay stable
// across runs, and generated otherwise.
package reconciler

import (
	"context"
	"time"

	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/features"
	"github.com/agentstation/placemap/pkg/logging"
	"github.com/agentstation/placemap/pkg/places"
)

// Reconciler is the main interface for the feature-to-place transform.
type Reconciler interface {
	// Transform maps features onto places. prior may be nil on a first run.
	Transform(ctx context.Context, feats []features.Feature, cfg places.Config, prior places.Linking) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	geometry bool
	keys     KeyGenerator
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		geometry: options.geometry,
		keys:     options.keys,
	}, nil
}

// Transform implements Reconciler.
func (r *reconciler) Transform(ctx context.Context, feats []features.Feature, cfg places.Config, prior places.Linking) (*Result, error) {
	if len(feats) == 0 {
		return nil, errors.NewEmptyInputError("")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx = logging.WithOperation(ctx, "transform")
	logger := logging.FromContext(ctx)
	start := time.Now()

	result := newResult(len(feats))
	for i, feature := range feats {
		r.place(ctx, result, i, feature, cfg, prior)
	}

	result.Stats.Places = len(result.Places)
	result.Stats.Dropped = len(prior.Dropped(result.Linking))
	result.Stats.Duration = time.Since(start)

	if len(result.Places) == 0 {
		return nil, errors.NewNoPlacesError(result.Stats.Features, result.Stats.Omitted)
	}

	logger.Info().
		Int("features", result.Stats.Features).
		Int("places", result.Stats.Places).
		Int("reused", result.Stats.Reused).
		Int("generated", result.Stats.Generated).
		Int("omitted", result.Stats.Omitted).
		Int("dropped", result.Stats.Dropped).
		Msg("Transformed features to places")

	return result, nil
}

// place handles one feature, appending its place and linking entry to result
// or recording why it was omitted.
func (r *reconciler) place(ctx context.Context, result *Result, index int, feature features.Feature, cfg places.Config, prior places.Linking) {
	identity := feature.Identity(cfg.FIDColumnName)
	logger := logging.FromContext(logging.WithFeature(ctx, index, identity))

	if identity == "" {
		logger.Warn().
			Str("fid_column", cfg.FIDColumnName).
			Msg("No feature key found, feature will be omitted")
		result.omit(index, "", ReasonNoIdentity)
		return
	}

	nameDisplay := feature.Property(cfg.NameColumnName)
	if nameDisplay == "" {
		nameDisplay = identity
	}

	if !feature.HasGeometry() {
		logger.Warn().Msg("No geometry for feature, feature will be omitted")
		result.omit(index, identity, ReasonNoGeometry)
		return
	}

	key, dup := result.Linking[identity]
	if dup {
		logger.Warn().Str("place_key", key).Msg("Duplicate feature key, reusing place key")
		result.Stats.Duplicates++
	} else if reused, ok := prior.Lookup(identity); ok {
		key = reused
		result.Stats.Reused++
	} else {
		key = r.keys()
		result.Stats.Generated++
	}

	p := places.New(key, identity, nameDisplay, cfg.PlaceLinking)
	if r.geometry {
		env, err := features.Envelope(feature.Geometry)
		switch {
		case err == nil:
			p.Data.Geometry = env
		case errors.Is(err, features.ErrEmptyGeometry):
			logger.Warn().
				Str("geometry_type", feature.GeometryType()).
				Msg("Geometry has no coordinates, place created without geometry")
		default:
			logger.Warn().
				Err(err).
				Str("geometry_type", feature.GeometryType()).
				Msg("Geometry could not be read, place created without geometry")
			result.Stats.InvalidGeometries++
		}
	}

	result.Places = append(result.Places, p)
	result.Identities = append(result.Identities, identity)
	result.Linking[identity] = key

	logger.Debug().Str("place_key", key).Msg("Created place")
}
