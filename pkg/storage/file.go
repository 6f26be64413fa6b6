package storage

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentstation/placemap/pkg/constants"
	"github.com/agentstation/placemap/pkg/errors"
	"github.com/agentstation/placemap/pkg/features"
	"github.com/agentstation/placemap/pkg/logging"
	"github.com/agentstation/placemap/pkg/places"
	"github.com/agentstation/placemap/pkg/save"
)

// Compile-time interface checks.
var (
	_ Source = (*FileSource)(nil)
	_ Sink   = (*FileSink)(nil)
)

// FileSource reads the input documents from disk. Documents ending in .yaml
// or .yml are parsed as YAML, everything else as JSON.
type FileSource struct {
	ConfigPath   string
	FeaturesPath string
	LinkingPath  string
}

// NewFileSource creates a source for the given paths. Empty paths fall back
// to the default input locations.
func NewFileSource(configPath, featuresPath, linkingPath string) *FileSource {
	return &FileSource{
		ConfigPath:   orDefault(configPath, constants.DefaultConfigPath),
		FeaturesPath: orDefault(featuresPath, constants.DefaultFeaturesPath),
		LinkingPath:  orDefault(linkingPath, constants.DefaultLinkingPath),
	}
}

// String returns the features path, which names the source in errors.
func (s *FileSource) String() string {
	return s.FeaturesPath
}

// Config implements Source.
func (s *FileSource) Config(ctx context.Context) (places.Config, error) {
	data, err := readFile(ctx, s.ConfigPath)
	if err != nil {
		return places.Config{}, err
	}
	return DecodeConfig(data, formatOf(s.ConfigPath), s.ConfigPath)
}

// Features implements Source.
func (s *FileSource) Features(ctx context.Context) ([]features.Feature, error) {
	data, err := readFile(ctx, s.FeaturesPath)
	if err != nil {
		return nil, err
	}
	return DecodeFeatures(data, formatOf(s.FeaturesPath), s.FeaturesPath)
}

// Linking implements Source. A missing linking file is a first run.
func (s *FileSource) Linking(ctx context.Context) (places.Linking, error) {
	data, err := readFile(ctx, s.LinkingPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logging.FromContext(ctx).Debug().
				Str("path", s.LinkingPath).
				Msg("No prior linking file, starting with an empty linking")
			return places.Linking{}, nil
		}
		return nil, err
	}
	return DecodeLinking(data, formatOf(s.LinkingPath), s.LinkingPath)
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	logging.FromContext(ctx).Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Msg("Read input document")
	return data, nil
}

// FileSink writes output documents into a directory, creating it on demand.
type FileSink struct {
	dir string
}

// NewFileSink creates a sink writing to the save options path.
func NewFileSink(opts ...save.Option) (*FileSink, error) {
	options := save.Defaults().Apply(opts...)
	if options.Path() == "" {
		return nil, &errors.ConfigError{
			Component: "storage",
			Message:   "no output directory configured",
		}
	}
	return &FileSink{dir: options.Path()}, nil
}

// Dir returns the output directory.
func (s *FileSink) Dir() string {
	return s.dir
}

// Location implements Sink.
func (s *FileSink) Location(out Output, format save.Format) string {
	return filepath.Join(s.dir, out.FileName(format))
}

// Write implements Sink.
func (s *FileSink) Write(ctx context.Context, out Output, format save.Format, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", s.dir, err)
	}

	path := s.Location(out, format)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
