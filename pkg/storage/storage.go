// Package storage provides the input sources and output sinks of a
// conversion run. File-backed implementations read and write the documents
// on disk; in-memory implementations serve tests and embedding callers.
package storage

import (
	"context"

	"github.com/agentstation/placemap/pkg/constants"
	"github.com/agentstation/placemap/pkg/features"
	"github.com/agentstation/placemap/pkg/places"
	"github.com/agentstation/placemap/pkg/save"
)

// Output names one of the documents a run produces.
type Output string

// Output documents.
const (
	OutputLinking Output = "linking"
	OutputPlaces  Output = "places"
)

// Outputs lists every output document in write order.
var Outputs = []Output{OutputLinking, OutputPlaces}

// String returns the output name.
func (o Output) String() string {
	return string(o)
}

// Stem returns the file name of the output without extension.
func (o Output) Stem() string {
	switch o {
	case OutputLinking:
		return constants.LinkingFileStem
	case OutputPlaces:
		return constants.PlacesFileStem
	default:
		return string(o)
	}
}

// FileName returns the file name of the output in the given format.
func (o Output) FileName(f save.Format) string {
	return o.Stem() + f.Extension()
}

// Source supplies the inputs of a run.
type Source interface {
	// Config loads and validates the configuration document.
	Config(ctx context.Context) (places.Config, error)

	// Features loads the features document. No features is not an error here.
	Features(ctx context.Context) ([]features.Feature, error)

	// Linking loads the prior identity linking. A first run yields an empty linking.
	Linking(ctx context.Context) (places.Linking, error)
}

// Sink persists the outputs of a run. Writes of different outputs are
// independent of each other.
type Sink interface {
	// Write stores an encoded output document.
	Write(ctx context.Context, out Output, format save.Format, data []byte) error

	// Location describes where an output document is written.
	Location(out Output, format save.Format) string
}
