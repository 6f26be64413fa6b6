// Package features models the input records of a conversion run: GeoJSON-like
// features with an optional id, an optional geometry and free-form properties.
package features

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature is a single input record describing one real-world entity.
type Feature struct {
	ID         any               `json:"id,omitempty"`
	Type       string            `json:"type,omitempty"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// HasGeometry reports whether the feature carries a geometry. The payload is
// not inspected: any value other than null, false, 0 or "" counts.
func (f Feature) HasGeometry() bool {
	return present(f.Geometry)
}

// GeometryType returns the "type" member of the geometry, or "" when it has none.
func (f Feature) GeometryType() string {
	var head geometryHead
	if err := json.Unmarshal(f.Geometry, &head); err != nil {
		return ""
	}
	return head.Type
}

// RawGeometry encodes g as a GeoJSON geometry payload for a Feature.
func RawGeometry(g orb.Geometry) json.RawMessage {
	data, err := json.Marshal(geojson.NewGeometry(g))
	if err != nil {
		return nil
	}
	return data
}

func present(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	default:
		return true
	}
}

// Identity returns the feature id, falling back to the property named by
// fidColumn. An empty result means the feature cannot be identified.
func (f Feature) Identity(fidColumn string) string {
	if id := Text(f.ID); id != "" {
		return id
	}
	return f.Property(fidColumn)
}

// Property returns the text form of a property, or "" when it is missing or
// has no scalar text form.
func (f Feature) Property(name string) string {
	if name == "" || f.Properties == nil {
		return ""
	}
	return Text(f.Properties[name])
}

// Text renders scalar values the way they appear in the source document.
// Numbers keep their decimal form; objects, arrays and null yield "".
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
