package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/features"
	"github.com/agentstation/placemap/pkg/places"
	"github.com/agentstation/placemap/pkg/save"
	"github.com/agentstation/placemap/pkg/storage"
)

func TestMemorySource(t *testing.T) {
	prior := places.Linking{"F1": "k1"}
	src := storage.NewMemorySource(
		places.Config{FIDColumnName: "fid", NameColumnName: "name"},
		[]features.Feature{{ID: "F1"}},
		prior,
	)
	ctx := context.Background()

	cfg, err := src.Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fid", cfg.FIDColumnName)

	feats, err := src.Features(ctx)
	require.NoError(t, err)
	assert.Len(t, feats, 1)

	linking, err := src.Linking(ctx)
	require.NoError(t, err)
	linking["F2"] = "k2"
	assert.Equal(t, places.Linking{"F1": "k1"}, prior, "linking is returned as a copy")

	src.Cfg.NameColumnName = ""
	_, err = src.Config(ctx)
	assert.True(t, errors.IsValidationError(err))

	src.FeaturesErr = errors.New("boom")
	_, err = src.Features(ctx)
	assert.EqualError(t, err, "boom")
}

func TestMemorySink(t *testing.T) {
	sink := storage.NewMemorySink()
	ctx := context.Background()

	payload := []byte(`[]`)
	require.NoError(t, sink.Write(ctx, storage.OutputPlaces, save.FormatJSON, payload))
	payload[0] = 'x'

	data, ok := sink.Document(storage.OutputPlaces)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(data))

	sink.FailWrites(storage.OutputLinking, errors.New("disk full"))
	assert.EqualError(t, sink.Write(ctx, storage.OutputLinking, save.FormatJSON, []byte(`{}`)), "disk full")
	_, ok = sink.Document(storage.OutputLinking)
	assert.False(t, ok)
	assert.Equal(t, 1, sink.Len())

	assert.Equal(t, "memory://places.yaml", sink.Location(storage.OutputPlaces, save.FormatYAML))
}

func TestOutput(t *testing.T) {
	assert.Equal(t, "placeKeyByFeatureKey", storage.OutputLinking.Stem())
	assert.Equal(t, "places.json", storage.OutputPlaces.FileName(save.FormatJSON))
	assert.Equal(t, []storage.Output{storage.OutputLinking, storage.OutputPlaces}, storage.Outputs)
}
