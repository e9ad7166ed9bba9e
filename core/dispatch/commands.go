package dispatch

import (
	"time"

	"github.com/rbrederode/odt/core/assemble"
	"github.com/rbrederode/odt/core/store"
)

// Command is a mutating engine operation. Commands are executed one at a
// time by the Manager, which is the only writer of the record store.
type Command interface {
	isCommand()
}

// SubmitObservation assembles the staged targets into an observation for the
// given dish and window and reserves its scheduling blocks.
type SubmitObservation struct {
	DishID string
	User   string
	Start  time.Time
	End    time.Time
}

// AddTarget stages a target built from two independently-scoped field sets.
type AddTarget struct {
	TargetFields []assemble.Field
	ConfigFields []assemble.Field
}

// DeleteTarget clears a single staged row.
type DeleteTarget struct {
	Ref store.RowRef
}

// ExpireBlocks runs a retention pass over the scheduling-block ledger.
type ExpireBlocks struct {
	Now time.Time
}

func (SubmitObservation) isCommand() {}
func (AddTarget) isCommand()         {}
func (DeleteTarget) isCommand()      {}
func (ExpireBlocks) isCommand()      {}
