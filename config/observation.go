package config

import (
	"fmt"

	"github.com/rbrederode/odt/core/model"
)

// ObservationConfig controls how observations are stamped at submission.
type ObservationConfig struct {
	// InitialState is the lifecycle state name assigned to every submitted
	// observation.
	InitialState string `json:"initial_state"`
}

// SetDefaults applies sane defaults.
func (c *ObservationConfig) SetDefaults() {
	if c.InitialState == "" {
		c.InitialState = "EMPTY"
	}
}

// Validate checks that the state name is known.
func (c ObservationConfig) Validate() error {
	if _, ok := model.ParseObsState(c.InitialState); !ok {
		return fmt.Errorf("observation: unknown initial_state %q", c.InitialState)
	}
	return nil
}

// State returns the parsed initial state.
func (c ObservationConfig) State() model.ObsState {
	s, _ := model.ParseObsState(c.InitialState)
	return s
}
