package placemap

import (
	"sync"

	"github.com/agentstation/placemap/pkg/places"
	"github.com/agentstation/placemap/pkg/reconciler"
)

// Hook function types for run events
type (
	// PlaceAddedHook is called for a place whose identity had no prior key
	PlaceAddedHook func(identity string, place places.Place)

	// PlaceRemovedHook is called for a prior link whose feature is gone
	PlaceRemovedHook func(identity, key string)

	// FeatureOmittedHook is called for a feature that produced no place
	FeatureOmittedHook func(omission reconciler.Omission)
)

// hooks manages event callbacks for a run
type hooks struct {
	mu               sync.RWMutex
	onPlaceAdded     []PlaceAddedHook
	onPlaceRemoved   []PlaceRemovedHook
	onFeatureOmitted []FeatureOmittedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnPlaceAdded registers a callback for added places
func (h *hooks) OnPlaceAdded(fn PlaceAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPlaceAdded = append(h.onPlaceAdded, fn)
}

// OnPlaceRemoved registers a callback for removed places
func (h *hooks) OnPlaceRemoved(fn PlaceRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPlaceRemoved = append(h.onPlaceRemoved, fn)
}

// OnFeatureOmitted registers a callback for omitted features
func (h *hooks) OnFeatureOmitted(fn FeatureOmittedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFeatureOmitted = append(h.onFeatureOmitted, fn)
}

// triggerResult compares the prior linking with the result and fires hooks
// in input order, then removals in identity order.
func (h *hooks) triggerResult(prior places.Linking, result *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.onPlaceAdded) > 0 {
		seen := make(map[string]bool, len(result.Places))
		for i, place := range result.Places {
			identity := result.Identities[i]
			if _, ok := prior.Lookup(identity); ok || seen[identity] {
				continue
			}
			seen[identity] = true
			for _, fn := range h.onPlaceAdded {
				fn(identity, place)
			}
		}
	}

	for _, omission := range result.Omissions {
		for _, fn := range h.onFeatureOmitted {
			fn(omission)
		}
	}

	for _, identity := range prior.Dropped(result.Linking) {
		for _, fn := range h.onPlaceRemoved {
			fn(identity, prior[identity])
		}
	}
}
