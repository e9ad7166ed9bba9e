package events

import (
	"time"

	"github.com/rbrederode/odt/core/model"
)

// ObservationSubmitted is published after an observation document has been
// assembled and its scheduling blocks reserved.
type ObservationSubmitted struct {
	Observation model.Observation
	Blocks      int
	Skipped     int
}

// Kind routes the event on external notifiers.
func (ObservationSubmitted) Kind() string { return "observation_submitted" }

// BlocksExpired is emitted after a retention pass over the scheduling ledger.
type BlocksExpired struct {
	Expired int
	Cutoff  time.Time
}

func (BlocksExpired) Kind() string { return "blocks_expired" }
