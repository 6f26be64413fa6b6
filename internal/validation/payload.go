// Package validation checks encoded output documents before they are written.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/save"
	"github.com/agentstation/placemap/pkg/storage"
)

// Payload checks that data is a well-formed document of the given format and
// has the shape expected for out: the linking document is a mapping of
// strings, the places document a sequence of place records. Failures are
// reported as *errors.SerializationError.
func Payload(out storage.Output, format save.Format, data []byte) error {
	fail := func(message string, err error) error {
		return errors.NewSerializationError(out.String(), format.String(), message, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return fail("document is empty", nil)
	}

	var doc any
	switch format {
	case save.FormatJSON:
		if !json.Valid(data) {
			return fail("not valid JSON", nil)
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return fail(err.Error(), err)
		}
	case save.FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fail(err.Error(), err)
		}
	default:
		return fail("unsupported format", nil)
	}

	var err error
	switch out {
	case storage.OutputLinking:
		err = linkingShape(doc)
	case storage.OutputPlaces:
		err = placesShape(doc)
	default:
		err = fmt.Errorf("unknown output %q", out)
	}
	if err != nil {
		return fail(err.Error(), err)
	}
	return nil
}

func linkingShape(doc any) error {
	m, ok := doc.(map[string]any)
	if !ok {
		return fmt.Errorf("expected a mapping, found %s", kind(doc))
	}
	for identity, key := range m {
		if s, ok := key.(string); !ok || s == "" {
			return fmt.Errorf("entry %q has no place key", identity)
		}
	}
	return nil
}

func placesShape(doc any) error {
	list, ok := doc.([]any)
	if !ok {
		return fmt.Errorf("expected a sequence, found %s", kind(doc))
	}
	for i, item := range list {
		place, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("place %d: expected a mapping, found %s", i, kind(item))
		}
		if key, _ := place["key"].(string); key == "" {
			return fmt.Errorf("place %d: missing key", i)
		}
		data, ok := place["data"].(map[string]any)
		if !ok {
			return fmt.Errorf("place %d: missing data", i)
		}
		if name, _ := data["nameInternal"].(string); name == "" {
			return fmt.Errorf("place %d: missing nameInternal", i)
		}
	}
	return nil
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "scalar"
	}
}
