package features_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/placemap/pkg/features"
)

func TestDecode(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		list, err := features.Decode([]byte(`[
			{"id": "F1", "geometry": {"type": "Point", "coordinates": [1, 2]}, "properties": {"name": "Alpha"}},
			{"geometry": null, "properties": {"fid": 12}}
		]`))
		require.NoError(t, err)
		require.Len(t, list, 2)

		assert.Equal(t, "F1", list[0].Identity("fid"))
		require.True(t, list[0].HasGeometry())
		assert.JSONEq(t, `{"type": "Point", "coordinates": [1, 2]}`, string(list[0].Geometry))
		assert.Equal(t, "Alpha", list[0].Property("name"))

		assert.False(t, list[1].HasGeometry())
		assert.Equal(t, "12", list[1].Identity("fid"))
	})

	t.Run("feature collection", func(t *testing.T) {
		list, err := features.Decode([]byte(`{
			"type": "FeatureCollection",
			"features": [
				{"type": "Feature", "id": 3, "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}, "properties": {}}
			]
		}`))
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "3", list[0].Identity("fid"))
		assert.Equal(t, "LineString", list[0].GeometryType())
	})

	t.Run("large numeric ids keep their digits", func(t *testing.T) {
		list, err := features.Decode([]byte(`[{"id": 9007199254740993, "properties": {}}]`))
		require.NoError(t, err)
		assert.Equal(t, "9007199254740993", list[0].Identity("fid"))
	})

	t.Run("empty inputs", func(t *testing.T) {
		for _, doc := range []string{"", "  ", "null", "[]", "{}", `{"type": "FeatureCollection"}`} {
			list, err := features.Decode([]byte(doc))
			require.NoError(t, err, doc)
			assert.Empty(t, list, doc)
		}
	})

	t.Run("geometries orb cannot read still decode", func(t *testing.T) {
		list, err := features.Decode([]byte(`[
			{"id": "F1", "geometry": {"type": "Point", "coordinates": [1, 2]}},
			{"id": "F2", "geometry": {"type": "Unknown"}},
			{"id": "F3", "geometry": {}},
			{"id": "F4", "geometry": {"type": "Point"}}
		]`))
		require.NoError(t, err)
		require.Len(t, list, 4)
		for _, f := range list {
			assert.True(t, f.HasGeometry(), f.Identity("fid"))
		}
	})

	t.Run("scalar document", func(t *testing.T) {
		_, err := features.Decode([]byte(`"features"`))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := features.Decode([]byte(`[{"id": "F1"`))
		assert.Error(t, err)
	})
}
