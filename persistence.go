package placemap

import (
	"context"

	"github.com/agentstation/placemap/internal/validation"
	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/logging"
	"github.com/agentstation/placemap/pkg/reconciler"
	"github.com/agentstation/placemap/pkg/save"
	"github.com/agentstation/placemap/pkg/storage"
)

// persist encodes, validates and writes every output. A failure on one
// output never prevents the next one from being attempted.
func persist(ctx context.Context, sink storage.Sink, cfg *config, report *Report, result *reconciler.Result) error {
	documents := map[storage.Output]any{
		storage.OutputLinking: result.Linking,
		storage.OutputPlaces:  result.Places,
	}

	var errs []error
	for _, out := range storage.Outputs {
		status, err := persistOne(logging.WithOutput(ctx, out.String()), sink, cfg, out, documents[out])
		report.Outputs = append(report.Outputs, status)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func persistOne(ctx context.Context, sink storage.Sink, cfg *config, out storage.Output, value any) (OutputStatus, error) {
	logger := logging.FromContext(ctx)
	status := OutputStatus{
		Output:   out,
		Location: sink.Location(out, cfg.format),
	}

	data, err := save.Encode(value, cfg.format)
	if err != nil {
		serr := errors.NewSerializationError(out.String(), cfg.format.String(), err.Error(), err)
		status.Error = serr.Error()
		logger.Error().Err(serr).Msg("Failed to encode output")
		return status, serr
	}
	status.Bytes = len(data)

	if cfg.validate {
		if err := validation.Payload(out, cfg.format, data); err != nil {
			status.Error = err.Error()
			logger.Error().Err(err).Msg("Output failed validation, not written")
			return status, err
		}
	}
	status.Validated = cfg.validate

	if cfg.dryRun {
		return status, nil
	}

	if err := sink.Write(ctx, out, cfg.format, data); err != nil {
		status.Error = err.Error()
		logger.Error().Err(err).Str("location", status.Location).Msg("Failed to write output")
		if cfg.strictWrites {
			return status, err
		}
		return status, nil
	}

	status.Written = true
	logger.Info().Str("location", status.Location).Msg("Output written")
	return status, nil
}
