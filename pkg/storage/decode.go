package storage

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/features"
	"github.com/agentstation/placemap/pkg/places"
)

// formatOf picks the document format from the file extension.
func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func decodeDocument(data []byte, format, name string, v any) error {
	var err error
	if format == "yaml" {
		err = yaml.Unmarshal(data, v)
	} else {
		err = json.Unmarshal(data, v)
	}
	return errors.WrapParse(format, name, err)
}

// DecodeConfig parses and validates a configuration document.
func DecodeConfig(data []byte, format, name string) (places.Config, error) {
	var cfg places.Config
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, errors.NewParseError(format, name, "configuration document is empty", nil)
	}
	if err := decodeDocument(data, format, name, &cfg); err != nil {
		return places.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return places.Config{}, err
	}
	return cfg, nil
}

// DecodeFeatures parses a features document. YAML documents are converted
// to JSON first so both go through the same GeoJSON decoding.
func DecodeFeatures(data []byte, format, name string) ([]features.Feature, error) {
	if format == "yaml" && len(bytes.TrimSpace(data)) > 0 {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, errors.WrapParse(format, name, err)
		}
		data = converted
	}

	list, err := features.Decode(data)
	if err != nil {
		return nil, errors.WrapParse(format, name, err)
	}
	return list, nil
}

// DecodeLinking parses an identity linking document. An empty document is an
// empty linking.
func DecodeLinking(data []byte, format, name string) (places.Linking, error) {
	linking := places.Linking{}
	if len(bytes.TrimSpace(data)) == 0 {
		return linking, nil
	}
	if err := decodeDocument(data, format, name, &linking); err != nil {
		return nil, err
	}
	if linking == nil {
		linking = places.Linking{}
	}
	return linking, nil
}
