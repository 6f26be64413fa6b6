package storage

import (
	"context"
	"maps"
	"sync"

	"github.com/agentstation/placemap/pkg/features"
	"github.com/agentstation/placemap/pkg/places"
	"github.com/agentstation/placemap/pkg/save"
)

// Compile-time interface checks.
var (
	_ Source = (*MemorySource)(nil)
	_ Sink   = (*MemorySink)(nil)
)

// MemorySource serves inputs held in memory. A non-nil error field makes the
// corresponding load fail.
type MemorySource struct {
	Cfg   places.Config
	Feats []features.Feature
	Prior places.Linking

	ConfigErr   error
	FeaturesErr error
	LinkingErr  error
}

// NewMemorySource creates a source over the given inputs.
func NewMemorySource(cfg places.Config, feats []features.Feature, prior places.Linking) *MemorySource {
	return &MemorySource{Cfg: cfg, Feats: feats, Prior: prior}
}

// String names the source in errors.
func (s *MemorySource) String() string {
	return "memory"
}

// Config implements Source.
func (s *MemorySource) Config(_ context.Context) (places.Config, error) {
	if s.ConfigErr != nil {
		return places.Config{}, s.ConfigErr
	}
	if err := s.Cfg.Validate(); err != nil {
		return places.Config{}, err
	}
	return s.Cfg, nil
}

// Features implements Source.
func (s *MemorySource) Features(_ context.Context) ([]features.Feature, error) {
	if s.FeaturesErr != nil {
		return nil, s.FeaturesErr
	}
	return s.Feats, nil
}

// Linking implements Source. The returned linking is a copy.
func (s *MemorySource) Linking(_ context.Context) (places.Linking, error) {
	if s.LinkingErr != nil {
		return nil, s.LinkingErr
	}
	linking := places.Linking{}
	maps.Copy(linking, s.Prior)
	return linking, nil
}

// MemorySink keeps written documents in memory.
type MemorySink struct {
	mu        sync.RWMutex
	documents map[Output][]byte
	failures  map[Output]error
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		documents: make(map[Output][]byte),
		failures:  make(map[Output]error),
	}
}

// FailWrites makes every write of out return err.
func (s *MemorySink) FailWrites(out Output, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[out] = err
}

// Location implements Sink.
func (s *MemorySink) Location(out Output, format save.Format) string {
	return "memory://" + out.FileName(format)
}

// Write implements Sink.
func (s *MemorySink) Write(ctx context.Context, out Output, _ save.Format, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures[out]; err != nil {
		return err
	}
	s.documents[out] = append([]byte(nil), data...)
	return nil
}

// Document returns the last document written for out.
func (s *MemorySink) Document(out Output) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.documents[out]
	return data, ok
}

// Len returns the number of documents stored.
func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}
