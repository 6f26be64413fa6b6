package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/placemap/internal/validation"
	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/places"
	"github.com/agentstation/placemap/pkg/save"
	"github.com/agentstation/placemap/pkg/storage"
)

func TestPayloadAcceptsEncodedOutputs(t *testing.T) {
	linking := places.Linking{"F1": "k1"}
	list := []places.Place{places.New("k1", "F1", "Alpha", &places.PlaceLinking{ApplicationKey: "app"})}

	for _, format := range []save.Format{save.FormatJSON, save.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := save.Encode(linking, format)
			require.NoError(t, err)
			assert.NoError(t, validation.Payload(storage.OutputLinking, format, data))

			data, err = save.Encode(list, format)
			require.NoError(t, err)
			assert.NoError(t, validation.Payload(storage.OutputPlaces, format, data))
		})
	}
}

func TestPayloadRejects(t *testing.T) {
	tests := []struct {
		name   string
		out    storage.Output
		format save.Format
		data   string
	}{
		{"empty", storage.OutputPlaces, save.FormatJSON, "  "},
		{"truncated json", storage.OutputLinking, save.FormatJSON, `{"F1": "k1"`},
		{"linking as sequence", storage.OutputLinking, save.FormatJSON, `["k1"]`},
		{"linking with empty key", storage.OutputLinking, save.FormatJSON, `{"F1": ""}`},
		{"linking with numeric key", storage.OutputLinking, save.FormatJSON, `{"F1": 1}`},
		{"places as mapping", storage.OutputPlaces, save.FormatJSON, `{"key": "k1"}`},
		{"place without key", storage.OutputPlaces, save.FormatJSON, `[{"data": {"nameInternal": "place_F1"}}]`},
		{"place without data", storage.OutputPlaces, save.FormatJSON, `[{"key": "k1"}]`},
		{"place without internal name", storage.OutputPlaces, save.FormatJSON, `[{"key": "k1", "data": {"nameDisplay": "Alpha"}}]`},
		{"broken yaml", storage.OutputLinking, save.FormatYAML, "F1: [k1"},
		{"yaml scalar", storage.OutputPlaces, save.FormatYAML, "places"},
		{"unknown format", storage.OutputPlaces, save.Format(9), `[]`},
		{"unknown output", storage.Output("other"), save.FormatJSON, `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Payload(tt.out, tt.format, []byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsSerialization(err))

			var serr *errors.SerializationError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.out.String(), serr.Output)
		})
	}
}

func TestPayloadEmptyPlaces(t *testing.T) {
	assert.NoError(t, validation.Payload(storage.OutputPlaces, save.FormatJSON, []byte(`[]`)))
	assert.NoError(t, validation.Payload(storage.OutputLinking, save.FormatJSON, []byte(`{}`)))
}
