package model

import (
	"strings"
	"time"
)

// ObsState is the lifecycle state of an observation. The values mirror the
// observing state machine of the wider telescope control system; this engine
// only ever assigns the configured initial state, the executor owns all
// transitions thereafter.
type ObsState int

const (
	ObsEmpty ObsState = iota
	ObsResourcing
	ObsIdle
	ObsConfiguring
	ObsReady
	ObsScanning
	ObsAborting
	ObsAborted
	ObsResetting
	ObsFault
	ObsRestarting
)

var obsStateNames = [...]string{
	"EMPTY", "RESOURCING", "IDLE", "CONFIGURING", "READY", "SCANNING",
	"ABORTING", "ABORTED", "RESETTING", "FAULT", "RESTARTING",
}

func (s ObsState) String() string {
	if s < 0 || int(s) >= len(obsStateNames) {
		return "UNKNOWN"
	}
	return obsStateNames[s]
}

// ParseObsState maps a state name (case-insensitive) to its ObsState.
func ParseObsState(name string) (ObsState, bool) {
	up := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range obsStateNames {
		if n == up {
			return ObsState(i), true
		}
	}
	return ObsEmpty, false
}

// MarshalText stores the state by name.
func (s ObsState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts a state name; unknown names map to EMPTY.
func (s *ObsState) UnmarshalText(b []byte) error {
	v, _ := ParseObsState(string(b))
	*s = v
	return nil
}

// Observation is the aggregate root assembled at submission time.
type Observation struct {
	ObsID         string         `json:"obs_id"`
	DishID        string         `json:"dish_id"`
	BlockStart    time.Time      `json:"scheduling_block_start"`
	BlockEnd      time.Time      `json:"scheduling_block_end"`
	ObsState      ObsState       `json:"obs_state"`
	Targets       []Target       `json:"targets"`
	TargetConfigs []TargetConfig `json:"target_configs"`
	Created       time.Time      `json:"created"`
	User          string         `json:"user"`
}

// ODTID derives the deterministic observation identifier:
// "ODT-" + scheduling block start at minute precision in UTC + "-" + the
// first whitespace token of the dish id. Unique per (dish, minute) pair.
func ODTID(blockStart time.Time, dishID string) string {
	dish := dishID
	if fields := strings.Fields(dishID); len(fields) > 0 {
		dish = fields[0]
	}
	return "ODT-" + blockStart.UTC().Format("2006-01-02T15:04") + "Z-" + dish
}

// SchedulingBlockEntry reserves one discrete block of observing capacity for
// a dish. Entries are only ever appended or expired, never mutated.
type SchedulingBlockEntry struct {
	DishID     string    `json:"dish_id"`
	BlockStart time.Time `json:"block_start"`
}
