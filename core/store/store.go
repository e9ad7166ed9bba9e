// Package store defines the record-store contract the engine persists
// through. A collection is an ordered sequence of row slots: documents are
// appended, cleared in place (leaving an empty slot) and compacted. The store
// never promises row-level locking; callers serialize writes themselves.
package store

import "encoding/json"

// RowRef identifies one row slot within a collection.
type RowRef string

// Record is one row slot. A nil Doc marks a cleared slot that compaction will
// remove.
type Record struct {
	Ref RowRef
	Doc json.RawMessage
}

// Empty reports whether the slot has been cleared.
func (r Record) Empty() bool { return len(r.Doc) == 0 }

// RecordStore is the append-only list storage consumed by the assembler and
// the scheduling-block ledger.
type RecordStore interface {
	// Append adds a document at the end of the collection and returns its row.
	Append(collection string, doc json.RawMessage) (RowRef, error)
	// ListAll returns every row slot of the collection in order, cleared
	// slots included.
	ListAll(collection string) ([]Record, error)
	// Clear empties the referenced row, leaving a gap.
	Clear(collection string, ref RowRef) error
	// Compact removes cleared slots, preserving the order of the rest.
	Compact(collection string) error
}

// Collections used by the engine.
const (
	CollectionStaged       = "staged_targets"
	CollectionObservations = "observations"
	CollectionBlocks       = "scheduling_blocks"
)
