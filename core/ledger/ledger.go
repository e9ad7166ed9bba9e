// Package ledger manages the shared scheduling-block ledger: it converts an
// observation's time span into discrete allocation entries, appends them
// without disturbing unrelated rows, and expires entries older than the
// retention window.
package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/rbrederode/odt/core/logger"
	"github.com/rbrederode/odt/core/model"
	"github.com/rbrederode/odt/core/store"
)

// ValidationError reports an invalid time span or block size. It is fatal to
// the enclosing operation: no writes take effect.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// countEpsilon keeps an exact multiple of the block size from rounding up to
// one block too many.
const countEpsilon = 1e-9

// BlocksConsumed returns how many discrete blocks of blockMinutes the span
// [start, end) consumes. Any positive duration consumes at least one block.
func BlocksConsumed(start, end time.Time, blockMinutes int) (int, error) {
	if !end.After(start) {
		return 0, &ValidationError{Reason: fmt.Sprintf("end %v not after start %v", end, start)}
	}
	if blockMinutes <= 0 {
		return 0, &ValidationError{Reason: fmt.Sprintf("block size %d minutes not positive", blockMinutes)}
	}
	ratio := float64(end.Sub(start).Milliseconds()) / float64(time.Duration(blockMinutes)*time.Minute/time.Millisecond)
	n := int(math.Ceil(ratio - countEpsilon))
	if n < 1 {
		n = 1
	}
	return n, nil
}

// Entries materializes one SchedulingBlockEntry per consumed block, starting
// at start and spaced by the block size.
func Entries(dishID string, start time.Time, count, blockMinutes int) []model.SchedulingBlockEntry {
	blockDur := time.Duration(blockMinutes) * time.Minute
	out := make([]model.SchedulingBlockEntry, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, model.SchedulingBlockEntry{
			DishID:     dishID,
			BlockStart: start.Add(time.Duration(i) * blockDur),
		})
	}
	return out
}

// Ledger owns the scheduling-block collection of a record store.
type Ledger struct {
	store        store.RecordStore
	log          logger.Logger
	blockMinutes int
	retention    time.Duration
}

// New validates the externally supplied block size and retention window.
func New(st store.RecordStore, log logger.Logger, blockMinutes int, retention time.Duration) (*Ledger, error) {
	if st == nil || log == nil {
		return nil, fmt.Errorf("ledger: nil store or logger")
	}
	if blockMinutes <= 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("block size %d minutes not positive", blockMinutes)}
	}
	if retention <= 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("retention %v not positive", retention)}
	}
	return &Ledger{store: st, log: log, blockMinutes: blockMinutes, retention: retention}, nil
}

// BlockMinutes returns the configured block size.
func (l *Ledger) BlockMinutes() int { return l.blockMinutes }

// Reserve converts the span into block entries and appends them. It returns
// the number of blocks reserved. The ledger tail is re-read at call time, not
// cached, so entries appended since the last read are preserved; callers must
// serialize concurrent reservations.
func (l *Ledger) Reserve(dishID string, start, end time.Time) (int, error) {
	count, err := BlocksConsumed(start, end, l.blockMinutes)
	if err != nil {
		return 0, err
	}
	entries := Entries(dishID, start, count, l.blockMinutes)

	rows, err := l.store.ListAll(store.CollectionBlocks)
	if err != nil {
		return 0, fmt.Errorf("ledger: read tail: %w", err)
	}
	next := tailIndex(rows) + 1

	for _, e := range entries {
		doc, err := json.Marshal(e)
		if err != nil {
			return 0, fmt.Errorf("ledger: marshal entry: %w", err)
		}
		if _, err := l.store.Append(store.CollectionBlocks, doc); err != nil {
			return 0, fmt.Errorf("ledger: append entry: %w", err)
		}
	}
	l.log.Debugw("reserved scheduling blocks", map[string]any{
		"dish_id": dishID, "blocks": count, "from_row": next,
	})
	return count, nil
}

// ExpireCompact removes every entry whose block start is older than the
// retention window and compacts the remainder contiguously, preserving order.
// Running it twice with the same now yields the same ledger as running it
// once.
func (l *Ledger) ExpireCompact(now time.Time) (expired, remaining int, err error) {
	cutoff := now.Add(-l.retention)
	rows, err := l.store.ListAll(store.CollectionBlocks)
	if err != nil {
		return 0, 0, fmt.Errorf("ledger: list: %w", err)
	}
	for _, r := range rows {
		if r.Empty() {
			continue
		}
		var e model.SchedulingBlockEntry
		if err := json.Unmarshal(r.Doc, &e); err != nil {
			l.log.Warnf("ledger: skipping unreadable entry %s: %v", r.Ref, err)
			remaining++
			continue
		}
		if e.BlockStart.Before(cutoff) {
			if err := l.store.Clear(store.CollectionBlocks, r.Ref); err != nil {
				return expired, remaining, fmt.Errorf("ledger: clear %s: %w", r.Ref, err)
			}
			expired++
		} else {
			remaining++
		}
	}
	if err := l.store.Compact(store.CollectionBlocks); err != nil {
		return expired, remaining, fmt.Errorf("ledger: compact: %w", err)
	}
	return expired, remaining, nil
}

// tailIndex scans backward for the last non-empty row and returns its index,
// or -1 for an empty ledger.
func tailIndex(rows []store.Record) int {
	for i := len(rows) - 1; i >= 0; i-- {
		if !rows[i].Empty() {
			return i
		}
	}
	return -1
}
