package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/placemap"
	"github.com/agentstation/placemap/pkg/storage"
)

// Compile-time interface check.
var _ Application = (*Mock)(nil)

// Mock provides a mock implementation of Application for testing.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	SourceFunc       func() storage.Source
	SinkFunc         func() (storage.Sink, error)
	RunOptionsFunc   func() ([]placemap.Option, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Source returns a source using the mock function or an empty memory source.
func (m *Mock) Source() storage.Source {
	if m.SourceFunc != nil {
		return m.SourceFunc()
	}
	return &storage.MemorySource{}
}

// Sink returns a sink using the mock function or a fresh memory sink.
func (m *Mock) Sink() (storage.Sink, error) {
	if m.SinkFunc != nil {
		return m.SinkFunc()
	}
	return storage.NewMemorySink(), nil
}

// RunOptions returns run options using the mock function or none.
func (m *Mock) RunOptions() ([]placemap.Option, error) {
	if m.RunOptionsFunc != nil {
		return m.RunOptionsFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
