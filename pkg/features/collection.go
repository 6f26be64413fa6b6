package features

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Collection is the standard feature-collection shape of a features document.
type Collection struct {
	Type     string    `json:"type,omitempty"`
	Features []Feature `json:"features"`
}

// Decode reads a features document. The document is either a bare array of
// features or an object holding them under "features". An object without a
// "features" member, an empty document and null all decode to no features.
func Decode(data []byte) ([]Feature, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	switch trimmed[0] {
	case '[':
		var list []Feature
		if err := dec.Decode(&list); err != nil {
			return nil, fmt.Errorf("decoding feature array: %w", err)
		}
		return list, nil
	case '{':
		var collection Collection
		if err := dec.Decode(&collection); err != nil {
			return nil, fmt.Errorf("decoding feature collection: %w", err)
		}
		return collection.Features, nil
	default:
		return nil, fmt.Errorf("features document must be an array or an object, found %q", trimmed[0])
	}
}
