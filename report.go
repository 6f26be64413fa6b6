package placemap

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/placemap/pkg/reconciler"
	"github.com/agentstation/placemap/pkg/storage"
)

// OutputStatus describes what happened to one output document.
type OutputStatus struct {
	Output    storage.Output `json:"output" yaml:"output"`
	Location  string         `json:"location" yaml:"location"`
	Bytes     int            `json:"bytes" yaml:"bytes"`
	Validated bool           `json:"validated" yaml:"validated"`
	Written   bool           `json:"written" yaml:"written"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report summarizes a run.
type Report struct {
	GeneratedAt utc.Time              `json:"generated_at" yaml:"generated_at"`
	DryRun      bool                  `json:"dry_run" yaml:"dry_run"`
	Format      string                `json:"format" yaml:"format"`
	Stats       reconciler.Stats      `json:"stats" yaml:"stats"`
	Omissions   []reconciler.Omission `json:"omissions,omitempty" yaml:"omissions,omitempty"`
	Outputs     []OutputStatus        `json:"outputs" yaml:"outputs"`
}

// Written returns the number of output documents persisted.
func (r *Report) Written() int {
	n := 0
	for _, out := range r.Outputs {
		if out.Written {
			n++
		}
	}
	return n
}

// Failed returns the output documents that were not written because of an error.
func (r *Report) Failed() []OutputStatus {
	var failed []OutputStatus
	for _, out := range r.Outputs {
		if out.Error != "" {
			failed = append(failed, out)
		}
	}
	return failed
}
