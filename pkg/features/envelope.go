package features

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/agentstation/placemap/pkg/errors"
)

// ErrEmptyGeometry is returned by Envelope for a geometry without positions.
var ErrEmptyGeometry = errors.New("geometry has no coordinates")

// geometryHead is the part of a geometry payload read before handing it to orb.
type geometryHead struct {
	Type        string            `json:"type"`
	Coordinates json.RawMessage   `json:"coordinates"`
	Geometries  []json.RawMessage `json:"geometries"`
}

// Envelope returns the minimal axis-aligned rectangle enclosing a raw GeoJSON
// geometry, as a polygon geometry without a bbox member.
//
// A geometry with no positions yields ErrEmptyGeometry. A payload that is not
// a geometry orb can read yields a ParseError.
func Envelope(raw json.RawMessage) (*geojson.Geometry, error) {
	if !present(raw) {
		return nil, ErrEmptyGeometry
	}

	bound, ok, err := boundOf(raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEmptyGeometry
	}

	return geojson.NewGeometry(bound.ToPolygon()), nil
}

// boundOf bounds one geometry. Members of a collection without positions are
// skipped so they do not pull the bound towards the origin.
func boundOf(raw json.RawMessage) (orb.Bound, bool, error) {
	var head geometryHead
	if err := json.Unmarshal(raw, &head); err != nil {
		return orb.Bound{}, false, errors.NewParseError("geojson", "", "invalid geometry", err)
	}

	if head.Type == "GeometryCollection" {
		var (
			bound orb.Bound
			found bool
		)
		for _, member := range head.Geometries {
			b, ok, err := boundOf(member)
			if err != nil {
				return orb.Bound{}, false, err
			}
			if !ok {
				continue
			}
			if found {
				bound = bound.Union(b)
			} else {
				bound, found = b, true
			}
		}
		return bound, found, nil
	}

	if !hasPositions(head.Coordinates) {
		return orb.Bound{}, false, nil
	}

	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return orb.Bound{}, false, errors.NewParseError("geojson", "", "invalid geometry", err)
	}
	if g.Geometry() == nil {
		return orb.Bound{}, false, nil
	}

	bound := g.Geometry().Bound()
	if bound.IsEmpty() {
		return orb.Bound{}, false, nil
	}
	return bound, true, nil
}

// hasPositions reports whether a coordinates member holds at least one
// position, at any nesting depth.
func hasPositions(coordinates json.RawMessage) bool {
	if len(coordinates) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(coordinates, &v); err != nil {
		return false
	}
	return containsPosition(v)
}

func containsPosition(v any) bool {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return false
	}
	if _, isNumber := list[0].(float64); isNumber {
		return len(list) >= 2
	}
	for _, item := range list {
		if containsPosition(item) {
			return true
		}
	}
	return false
}
