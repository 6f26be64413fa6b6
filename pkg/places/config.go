// Package places defines the records produced by a conversion run and the
// configuration that controls how features map onto them.
package places

import (
	"strings"

	"github.com/agentstation/placemap/pkg/errors"
)

// Config describes which feature properties carry identity and display name,
// and the linking fields stamped onto every place.
type Config struct {
	FIDColumnName  string        `json:"fidColumnName" yaml:"fidColumnName"`
	NameColumnName string        `json:"nameColumnName" yaml:"nameColumnName"`
	PlaceLinking   *PlaceLinking `json:"placeLinking,omitempty" yaml:"placeLinking,omitempty"`
}

// PlaceLinking ties produced places to an application and scope.
type PlaceLinking struct {
	ApplicationKey string `json:"applicationKey" yaml:"applicationKey"`
	ScopeKey       string `json:"scopeKey" yaml:"scopeKey"`
}

// Validate checks that the configuration names both property columns. An
// empty placeLinking is accepted and stamps nothing.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewValidationError("config", nil, "configuration is required")
	}
	if strings.TrimSpace(c.FIDColumnName) == "" {
		return errors.NewValidationError("fidColumnName", c.FIDColumnName, "must name the feature identity property")
	}
	if strings.TrimSpace(c.NameColumnName) == "" {
		return errors.NewValidationError("nameColumnName", c.NameColumnName, "must name the display name property")
	}
	return nil
}
