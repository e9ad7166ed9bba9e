package events

import (
	"github.com/rbrederode/odt/core/model"
	"github.com/rbrederode/odt/core/store"
)

// TargetStaged is published when a target row lands in the staging area.
type TargetStaged struct {
	Target model.Target
	Ref    store.RowRef
}

func (TargetStaged) Kind() string { return "target_staged" }

// TargetDeleted is published when a staged target row is cleared.
type TargetDeleted struct {
	Ref store.RowRef
}

func (TargetDeleted) Kind() string { return "target_deleted" }
