// Package save describes how output documents are encoded and where they go.
package save

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/placemap/pkg/constants"
)

// Format is the encoding of an output document.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Extension returns the file extension, with the leading dot, for the format.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// ParseFormat converts a format name to a Format. An empty name selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatJSON, fmt.Errorf("invalid format %q: must be one of: json, yaml", s)
	}
}

// Encode serializes v in the given format. JSON is pretty-printed with tab
// indentation; values with a MarshalJSON method keep that shape in YAML too.
func Encode(v any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", constants.JSONIndent)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	case FormatYAML:
		return yaml.MarshalWithOptions(v,
			yaml.Indent(constants.YAMLIndent),
			yaml.IndentSequence(false),
			yaml.UseJSONMarshaler(),
		)
	default:
		return nil, fmt.Errorf("unsupported format %d", f)
	}
}

// Options is the configuration for save.
type Options struct {
	path   string
	format Format
}

// Path returns the output directory for the save options.
func (s *Options) Path() string {
	return s.path
}

// Format returns the format for the save options.
func (s *Options) Format() Format {
	return s.format
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		path:   constants.DefaultOutputDir,
		format: FormatJSON,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithFormat for custom output format.
func WithFormat(f Format) Option {
	return func(s *Options) {
		s.format = f
	}
}

// WithPath sets the directory output documents are written to.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
	}
}
