package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/placemap/pkg/places"
)

// Reason explains why a feature produced no place.
type Reason string

// Omission reasons.
const (
	ReasonNoIdentity Reason = "no_identity"
	ReasonNoGeometry Reason = "no_geometry"
)

// String returns the reason as text.
func (r Reason) String() string {
	return string(r)
}

// Omission records a feature that was skipped.
type Omission struct {
	Index    int    `json:"index" yaml:"index"`
	Identity string `json:"identity,omitempty" yaml:"identity,omitempty"`
	Reason   Reason `json:"reason" yaml:"reason"`
}

// Result represents the outcome of a transform.
type Result struct {
	// Places in input order of the surviving features.
	Places []places.Place

	// Identities holds the feature identity of each place, index for index.
	Identities []string

	// Linking covers exactly the identities that produced a place.
	Linking places.Linking

	// Omissions lists skipped features in input order.
	Omissions []Omission

	Stats Stats
}

// Stats counts what happened to the features of a run.
type Stats struct {
	Features          int           `json:"features" yaml:"features"`
	Places            int           `json:"places" yaml:"places"`
	Reused            int           `json:"reused" yaml:"reused"`
	Generated         int           `json:"generated" yaml:"generated"`
	Duplicates        int           `json:"duplicates" yaml:"duplicates"`
	Omitted           int           `json:"omitted" yaml:"omitted"`
	Dropped           int           `json:"dropped" yaml:"dropped"`
	InvalidGeometries int           `json:"invalid_geometries" yaml:"invalid_geometries"`
	Duration          time.Duration `json:"duration" yaml:"duration"`
}

// HasOmissions returns true if any feature was skipped.
func (r *Result) HasOmissions() bool {
	return len(r.Omissions) > 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Stats
	summary := fmt.Sprintf("%d places from %d features (%d reused, %d generated)", s.Places, s.Features, s.Reused, s.Generated)
	if s.Omitted > 0 {
		summary += fmt.Sprintf(", %d omitted", s.Omitted)
	}
	if s.Dropped > 0 {
		summary += fmt.Sprintf(", %d stale links dropped", s.Dropped)
	}
	return summary
}

func newResult(features int) *Result {
	return &Result{
		Places:     make([]places.Place, 0, features),
		Identities: make([]string, 0, features),
		Linking:    make(places.Linking, features),
		Stats:      Stats{Features: features},
	}
}

func (r *Result) omit(index int, identity string, reason Reason) {
	r.Omissions = append(r.Omissions, Omission{Index: index, Identity: identity, Reason: reason})
	r.Stats.Omitted++
}
