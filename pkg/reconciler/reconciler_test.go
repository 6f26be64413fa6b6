package reconciler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/features"
	"github.com/agentstation/placemap/pkg/logging"
	"github.com/agentstation/placemap/pkg/places"
	"github.com/agentstation/placemap/pkg/reconciler"
)

var testConfig = places.Config{FIDColumnName: "fid", NameColumnName: "name"}

func point(x, y float64) json.RawMessage {
	return features.RawGeometry(orb.Point{x, y})
}

func feature(id string, props map[string]any) features.Feature {
	f := features.Feature{Geometry: point(1, 2), Properties: props}
	if id != "" {
		f.ID = id
	}
	return f
}

func newReconciler(t *testing.T, opts ...reconciler.Option) reconciler.Reconciler {
	t.Helper()
	r, err := reconciler.New(opts...)
	require.NoError(t, err)
	return r
}

// sequentialKeys returns a generator yielding key-1, key-2, ...
func sequentialKeys() reconciler.KeyGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("key-%d", n)
	}
}

func TestTransformSingleFeature(t *testing.T) {
	r := newReconciler(t, reconciler.WithGeometry(false))

	result, err := r.Transform(context.Background(), []features.Feature{
		feature("F1", map[string]any{"name": "Alpha"}),
	}, testConfig, places.Linking{})
	require.NoError(t, err)

	require.Len(t, result.Places, 1)
	require.Len(t, result.Linking, 1)

	key := result.Linking["F1"]
	parsed, err := uuid.Parse(key)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())

	assert.Equal(t, places.Place{
		Key:  key,
		Data: places.Data{NameDisplay: "Alpha", NameInternal: "place_F1"},
	}, result.Places[0])
	assert.Equal(t, 1, result.Stats.Generated)
	assert.Equal(t, 0, result.Stats.Reused)
}

func TestTransformNameFallsBackToIdentity(t *testing.T) {
	r := newReconciler(t)

	result, err := r.Transform(context.Background(), []features.Feature{
		feature("F1", map[string]any{}),
		feature("", map[string]any{"fid": "P2", "name": ""}),
	}, testConfig, nil)
	require.NoError(t, err)
	require.Len(t, result.Places, 2)

	assert.Equal(t, "F1", result.Places[0].Data.NameDisplay)
	assert.Equal(t, "place_F1", result.Places[0].Data.NameInternal)
	assert.Equal(t, "P2", result.Places[1].Data.NameDisplay)
	assert.Equal(t, "place_P2", result.Places[1].Data.NameInternal)
}

func TestTransformEmptyInput(t *testing.T) {
	r := newReconciler(t)

	for name, feats := range map[string][]features.Feature{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			result, err := r.Transform(context.Background(), feats, testConfig, nil)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.IsNoFeatures(err))

			var empty *errors.EmptyInputError
			assert.ErrorAs(t, err, &empty)
		})
	}
}

func TestTransformNoPlaces(t *testing.T) {
	r := newReconciler(t)

	t.Run("only feature is unidentifiable", func(t *testing.T) {
		result, err := r.Transform(context.Background(), []features.Feature{
			feature("", map[string]any{"name": "Alpha"}),
		}, testConfig, nil)
		assert.Nil(t, result)
		require.Error(t, err)
		assert.True(t, errors.IsNoPlaces(err))

		var noPlaces *errors.NoPlacesError
		require.ErrorAs(t, err, &noPlaces)
		assert.Equal(t, 1, noPlaces.Features)
		assert.Equal(t, 1, noPlaces.Omitted)
	})

	t.Run("every feature omitted", func(t *testing.T) {
		_, err := r.Transform(context.Background(), []features.Feature{
			{ID: "F1"},
			{Properties: map[string]any{}},
		}, testConfig, nil)
		assert.True(t, errors.IsNoPlaces(err))
	})
}

func TestTransformInvalidConfig(t *testing.T) {
	r := newReconciler(t)

	_, err := r.Transform(context.Background(), []features.Feature{feature("F1", nil)}, places.Config{NameColumnName: "name"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestTransformOmissionPolicy(t *testing.T) {
	r := newReconciler(t, reconciler.WithKeyGenerator(sequentialKeys()))
	log := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), log.Logger)

	feats := []features.Feature{
		feature("A", nil),
		{Properties: map[string]any{"name": "nobody"}},
		feature("B", nil),
		{ID: "C", Properties: map[string]any{}},
		feature("", map[string]any{"fid": "D"}),
	}

	result, err := r.Transform(ctx, feats, testConfig, places.Linking{"C": "kept-c"})
	require.NoError(t, err)

	var order []string
	for _, p := range result.Places {
		order = append(order, p.Data.NameInternal)
	}
	assert.Equal(t, []string{"place_A", "place_B", "place_D"}, order)
	assert.Equal(t, places.Linking{"A": "key-1", "B": "key-2", "D": "key-3"}, result.Linking)

	assert.Equal(t, []reconciler.Omission{
		{Index: 1, Reason: reconciler.ReasonNoIdentity},
		{Index: 3, Identity: "C", Reason: reconciler.ReasonNoGeometry},
	}, result.Omissions)
	assert.True(t, result.HasOmissions())

	assert.Equal(t, 5, result.Stats.Features)
	assert.Equal(t, 3, result.Stats.Places)
	assert.Equal(t, 2, result.Stats.Omitted)
	assert.Equal(t, 1, result.Stats.Dropped)

	assert.Equal(t, 1, log.CountContaining("No feature key found"))
	assert.Equal(t, 1, log.CountContaining("No geometry for feature"))
	log.AssertContains(t, `"feature_key":"C"`)
	log.AssertContains(t, `"feature_index":1`)
}

func TestTransformKeyStability(t *testing.T) {
	r := newReconciler(t)
	feats := []features.Feature{
		feature("F1", map[string]any{"name": "Alpha"}),
		feature("F2", map[string]any{"name": "Beta"}),
		feature("", map[string]any{"fid": 3, "name": "Gamma"}),
	}

	first, err := r.Transform(context.Background(), feats, testConfig, nil)
	require.NoError(t, err)

	second, err := r.Transform(context.Background(), feats, testConfig, first.Linking)
	require.NoError(t, err)

	assert.Equal(t, first.Linking, second.Linking)
	require.Len(t, second.Places, 3)
	for i := range first.Places {
		assert.Equal(t, first.Places[i].Key, second.Places[i].Key)
	}
	assert.Equal(t, 3, second.Stats.Reused)
	assert.Equal(t, 0, second.Stats.Generated)
}

func TestTransformPlaceKeyMatchesLinking(t *testing.T) {
	r := newReconciler(t)
	prior := places.Linking{"F2": "existing", "F3": "", "stale": "old"}

	result, err := r.Transform(context.Background(), []features.Feature{
		feature("F1", nil),
		feature("F2", nil),
		feature("F3", nil),
	}, testConfig, prior)
	require.NoError(t, err)

	require.Len(t, result.Identities, len(result.Places))
	for i, p := range result.Places {
		identity := result.Identities[i]
		assert.Equal(t, result.Linking[identity], p.Key)
		assert.Equal(t, "place_"+identity, p.Data.NameInternal)
	}
	assert.Equal(t, "existing", result.Linking["F2"])
	assert.NotEmpty(t, result.Linking["F3"], "an empty prior key is regenerated")
	assert.NotContains(t, result.Linking, "stale")
	assert.Equal(t, 1, result.Stats.Reused)
	assert.Equal(t, 2, result.Stats.Generated)
	assert.Equal(t, 1, result.Stats.Dropped)
}

func TestTransformGeneratedKeysAreUnique(t *testing.T) {
	const n = 10000
	r := newReconciler(t, reconciler.WithGeometry(false))
	logging.DisableLoggingForTest(t)

	feats := make([]features.Feature, n)
	for i := range feats {
		feats[i] = feature(fmt.Sprintf("F%d", i), nil)
	}

	result, err := r.Transform(context.Background(), feats, testConfig, nil)
	require.NoError(t, err)
	require.Len(t, result.Places, n)

	seen := make(map[string]struct{}, n)
	for _, p := range result.Places {
		parsed, err := uuid.Parse(p.Key)
		require.NoError(t, err)
		require.Equal(t, uuid.Version(4), parsed.Version())
		require.Equal(t, uuid.RFC4122, parsed.Variant())
		seen[p.Key] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestTransformPlaceLinking(t *testing.T) {
	r := newReconciler(t)
	cfg := testConfig
	cfg.PlaceLinking = &places.PlaceLinking{ApplicationKey: "app", ScopeKey: "scope"}

	result, err := r.Transform(context.Background(), []features.Feature{
		feature("F1", nil),
		feature("F2", nil),
	}, cfg, nil)
	require.NoError(t, err)

	for _, p := range result.Places {
		assert.Equal(t, "app", p.Data.ApplicationKey)
		assert.Equal(t, "scope", p.Data.ScopeKey)
	}
}

func TestTransformGeometry(t *testing.T) {
	line := features.Feature{
		ID:       "L",
		Geometry: features.RawGeometry(orb.LineString{{0, 0}, {2, 3}, {1, -1}}),
	}

	t.Run("envelope embedded", func(t *testing.T) {
		r := newReconciler(t)
		result, err := r.Transform(context.Background(), []features.Feature{line}, testConfig, nil)
		require.NoError(t, err)

		geometry := result.Places[0].Data.Geometry
		require.NotNil(t, geometry)
		assert.Equal(t, "Polygon", geometry.Type)
		assert.Equal(t, orb.Polygon{{{0, -1}, {2, -1}, {2, 3}, {0, 3}, {0, -1}}}, geometry.Coordinates)
	})

	t.Run("disabled", func(t *testing.T) {
		r := newReconciler(t, reconciler.WithGeometry(false))
		result, err := r.Transform(context.Background(), []features.Feature{line}, testConfig, nil)
		require.NoError(t, err)
		assert.Nil(t, result.Places[0].Data.Geometry)
	})

	t.Run("empty geometry keeps the place", func(t *testing.T) {
		r := newReconciler(t)
		log := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), log.Logger)

		empty := features.Feature{ID: "E", Geometry: json.RawMessage(`{"type":"MultiPoint","coordinates":[]}`)}
		result, err := r.Transform(ctx, []features.Feature{empty}, testConfig, nil)
		require.NoError(t, err)
		require.Len(t, result.Places, 1)
		assert.Nil(t, result.Places[0].Data.Geometry)
		log.AssertContains(t, "Geometry has no coordinates")
		assert.Zero(t, result.Stats.InvalidGeometries)
	})

	for name, raw := range map[string]string{
		"unknown type":        `{"type":"Unknown"}`,
		"empty object":        `{}`,
		"point without value": `{"type":"Point"}`,
		"not an object":       `"somewhere"`,
	} {
		t.Run(name+" keeps the place", func(t *testing.T) {
			r := newReconciler(t, reconciler.WithKeyGenerator(sequentialKeys()))
			log := logging.NewTestLogger(t)
			ctx := logging.WithLogger(context.Background(), log.Logger)

			result, err := r.Transform(ctx, []features.Feature{
				{ID: "F1", Geometry: point(1, 2)},
				{ID: "F2", Geometry: json.RawMessage(raw)},
			}, testConfig, nil)
			require.NoError(t, err)

			require.Len(t, result.Places, 2)
			assert.NotNil(t, result.Places[0].Data.Geometry)
			assert.Nil(t, result.Places[1].Data.Geometry)
			assert.Equal(t, "place_F2", result.Places[1].Data.NameInternal)
			assert.Equal(t, places.Linking{"F1": "key-1", "F2": "key-2"}, result.Linking)
			assert.Empty(t, result.Omissions)
		})
	}

	t.Run("unreadable geometry is ignored when disabled", func(t *testing.T) {
		r := newReconciler(t, reconciler.WithGeometry(false))
		result, err := r.Transform(context.Background(), []features.Feature{
			{ID: "F1", Geometry: json.RawMessage(`{"type":"Unknown"}`)},
		}, testConfig, nil)
		require.NoError(t, err)
		require.Len(t, result.Places, 1)
		assert.Zero(t, result.Stats.InvalidGeometries)
	})

	t.Run("unreadable geometry is counted", func(t *testing.T) {
		r := newReconciler(t)
		log := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), log.Logger)

		result, err := r.Transform(ctx, []features.Feature{
			{ID: "F1", Geometry: json.RawMessage(`{"type":"Unknown","coordinates":[1,2]}`)},
		}, testConfig, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Stats.InvalidGeometries)
		log.AssertContains(t, "Geometry could not be read")
		log.AssertContains(t, `"geometry_type":"Unknown"`)
	})
}

func TestTransformDuplicateIdentity(t *testing.T) {
	r := newReconciler(t, reconciler.WithKeyGenerator(sequentialKeys()))

	result, err := r.Transform(context.Background(), []features.Feature{
		feature("F1", map[string]any{"name": "first"}),
		feature("F1", map[string]any{"name": "second"}),
	}, testConfig, nil)
	require.NoError(t, err)

	require.Len(t, result.Places, 2)
	assert.Equal(t, "key-1", result.Places[0].Key)
	assert.Equal(t, "key-1", result.Places[1].Key)
	assert.Equal(t, places.Linking{"F1": "key-1"}, result.Linking)
	assert.Equal(t, 1, result.Stats.Duplicates)
	assert.Equal(t, 1, result.Stats.Generated)
}

func TestNewOptions(t *testing.T) {
	_, err := reconciler.New(reconciler.WithKeyGenerator(nil))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestResultSummary(t *testing.T) {
	r := newReconciler(t)
	result, err := r.Transform(context.Background(), []features.Feature{
		feature("F1", nil),
		{ID: "F2"},
	}, testConfig, places.Linking{"F1": "k1", "gone": "k0"})
	require.NoError(t, err)

	assert.Equal(t, "1 places from 2 features (1 reused, 0 generated), 1 omitted, 1 stale links dropped", result.Summary())
}
