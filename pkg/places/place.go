package places

import (
	"github.com/paulmach/orb/geojson"

	"github.com/agentstation/placemap/pkg/constants"
)

// Place is one reconciled entity with a stable key.
type Place struct {
	Key  string `json:"key" yaml:"key"`
	Data Data   `json:"data" yaml:"data"`
}

// Data is the metadata of a place. Linking fields come first so that the
// encoded document matches the configuration order.
type Data struct {
	ApplicationKey string            `json:"applicationKey,omitempty" yaml:"applicationKey,omitempty"`
	ScopeKey       string            `json:"scopeKey,omitempty" yaml:"scopeKey,omitempty"`
	NameDisplay    string            `json:"nameDisplay" yaml:"nameDisplay"`
	NameInternal   string            `json:"nameInternal" yaml:"nameInternal"`
	Geometry       *geojson.Geometry `json:"geometry,omitempty" yaml:"geometry,omitempty"`
}

// New builds a place for the feature identity. linking may be nil.
func New(key, identity, nameDisplay string, linking *PlaceLinking) Place {
	p := Place{
		Key: key,
		Data: Data{
			NameDisplay:  nameDisplay,
			NameInternal: NameInternal(identity),
		},
	}
	if linking != nil {
		p.Data.ApplicationKey = linking.ApplicationKey
		p.Data.ScopeKey = linking.ScopeKey
	}
	return p
}

// NameInternal derives the internal name of the place for a feature identity.
func NameInternal(identity string) string {
	return constants.NameInternalPrefix + identity
}
