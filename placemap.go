// Package placemap converts GeoJSON-like features into place records with
// stable keys.
//
// A run loads a configuration, a features document and the identity linking
// written by the previous run, reconciles features into places, and persists
// two documents: the updated linking and the places themselves. Keys of
// features seen before are reused from the linking, so repeated runs over the
// same features produce the same keys.
//
//	src := storage.NewFileSource("", "", "")
//	sink, _ := storage.NewFileSink()
//	report, err := placemap.Run(ctx, src, sink)
package placemap

import (
	"context"
	"fmt"

	"github.com/agentstation/utc"

	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/logging"
	"github.com/agentstation/placemap/pkg/reconciler"
	"github.com/agentstation/placemap/pkg/storage"
)

// Run performs one conversion from src to sink.
//
// Empty input, a run where every feature was omitted, and invalid
// configuration fail before anything is written. Once places exist, both
// outputs are attempted independently; the returned report is non-nil and
// the error joins the failures of the individual outputs.
func Run(ctx context.Context, src storage.Source, sink storage.Sink, opts ...Option) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := defaultConfig()
	if err := cfg.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	ctx = logging.WithOperation(ctx, "run")
	logger := logging.FromContext(ctx)

	// Step 1: Load inputs
	placeConfig, err := src.Config(ctx)
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}

	feats, err := src.Features(ctx)
	if err != nil {
		return nil, errors.WrapResource("load", "features", "", err)
	}
	if len(feats) == 0 {
		return nil, errors.NewEmptyInputError(describe(src))
	}

	prior, err := src.Linking(ctx)
	if err != nil {
		return nil, errors.WrapResource("load", "linking", "", err)
	}

	logger.Debug().
		Int("features", len(feats)).
		Int("prior_links", len(prior)).
		Msg("Loaded inputs")

	// Step 2: Reconcile features into places
	recOpts := []reconciler.Option{reconciler.WithGeometry(cfg.geometry)}
	if cfg.keys != nil {
		recOpts = append(recOpts, reconciler.WithKeyGenerator(cfg.keys))
	}
	rec, err := reconciler.New(recOpts...)
	if err != nil {
		return nil, err
	}

	result, err := rec.Transform(ctx, feats, placeConfig, prior)
	if err != nil {
		return nil, err
	}
	cfg.hooks.triggerResult(prior, result)

	report := &Report{
		GeneratedAt: utc.Now(),
		DryRun:      cfg.dryRun,
		Format:      cfg.format.String(),
		Stats:       result.Stats,
		Omissions:   result.Omissions,
	}

	// Step 3: Persist outputs
	err = persist(ctx, sink, cfg, report, result)

	if cfg.dryRun {
		logger.Info().Bool("dry_run", true).Msg("Dry run completed - no outputs written")
	} else {
		logger.Info().
			Int("places", result.Stats.Places).
			Int("written", report.Written()).
			Msg(result.Summary())
	}

	return report, err
}

// describe names a source for error messages.
func describe(src storage.Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return ""
}
