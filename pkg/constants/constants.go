// Package constants provides shared constants used throughout the placemap codebase.
// This includes default input and output locations, file permissions and the
// fixed pieces of the place record format.
package constants

// Default input locations, relative to the working directory
const (
	// DefaultConfigPath is the configuration document describing feature columns
	DefaultConfigPath = "inputs/config.json"

	// DefaultFeaturesPath is the features document (array or FeatureCollection)
	DefaultFeaturesPath = "inputs/features.json"

	// DefaultLinkingPath is the linking produced by the previous run
	DefaultLinkingPath = "inputs/placeKeyByFeatureKey.json"
)

// Output locations
const (
	// DefaultOutputDir is the directory both output documents are written to
	DefaultOutputDir = "outputs"

	// LinkingFileStem is the file name, without extension, of the linking output
	LinkingFileStem = "placeKeyByFeatureKey"

	// PlacesFileStem is the file name, without extension, of the places output
	PlacesFileStem = "places"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Place record format
const (
	// NameInternalPrefix prefixes the feature identity in a place's nameInternal
	NameInternalPrefix = "place_"

	// JSONIndent is the indentation of pretty-printed JSON output documents
	JSONIndent = "\t"

	// YAMLIndent is the indentation width of YAML output documents
	YAMLIndent = 2
)

// EnvPrefix prefixes every environment variable read by the CLI configuration
const EnvPrefix = "PLACEMAP"
