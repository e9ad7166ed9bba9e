package ledger

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rbrederode/odt/core/model"
	"github.com/rbrederode/odt/core/store"
	"github.com/rbrederode/odt/infra/logger"
)

var t0 = time.Date(2026, 2, 2, 18, 0, 0, 0, time.UTC)

func TestBlocksConsumed(t *testing.T) {
	cases := []struct {
		dur     time.Duration
		minutes int
		want    int
	}{
		{70 * time.Minute, 30, 3},
		{60 * time.Minute, 30, 2},
		{30 * time.Minute, 30, 1},
		{1 * time.Millisecond, 30, 1},
		{24 * time.Hour, 60, 24},
		{90*time.Minute + time.Second, 30, 4},
	}
	for _, c := range cases {
		got, err := BlocksConsumed(t0, t0.Add(c.dur), c.minutes)
		if err != nil {
			t.Fatalf("BlocksConsumed(%v, %d): %v", c.dur, c.minutes, err)
		}
		if got != c.want {
			t.Fatalf("BlocksConsumed(%v, %d) = %d, want %d", c.dur, c.minutes, got, c.want)
		}
	}
}

func TestBlocksConsumedValidation(t *testing.T) {
	var ve *ValidationError
	if _, err := BlocksConsumed(t0, t0, 30); !errors.As(err, &ve) {
		t.Fatalf("end==start: %v", err)
	}
	if _, err := BlocksConsumed(t0, t0.Add(-time.Minute), 30); !errors.As(err, &ve) {
		t.Fatalf("end<start: %v", err)
	}
	if _, err := BlocksConsumed(t0, t0.Add(time.Hour), 0); !errors.As(err, &ve) {
		t.Fatalf("zero block: %v", err)
	}
	if _, err := BlocksConsumed(t0, t0.Add(time.Hour), -5); !errors.As(err, &ve) {
		t.Fatalf("negative block: %v", err)
	}
}

func TestEntriesSpacing(t *testing.T) {
	entries := Entries("DSH-001", t0, 3, 30)
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}
	for i, e := range entries {
		want := t0.Add(time.Duration(i) * 30 * time.Minute)
		if !e.BlockStart.Equal(want) {
			t.Fatalf("entry %d starts at %v, want %v", i, e.BlockStart, want)
		}
		if e.DishID != "DSH-001" {
			t.Fatalf("entry %d dish %q", i, e.DishID)
		}
	}
}

func newLedger(t *testing.T, st store.RecordStore) *Ledger {
	t.Helper()
	l, err := New(st, logger.NopLogger{}, 30, 5*24*time.Hour)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	return l
}

func listEntries(t *testing.T, st store.RecordStore) []model.SchedulingBlockEntry {
	t.Helper()
	rows, err := st.ListAll(store.CollectionBlocks)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var out []model.SchedulingBlockEntry
	for _, r := range rows {
		if r.Empty() {
			continue
		}
		var e model.SchedulingBlockEntry
		if err := json.Unmarshal(r.Doc, &e); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		out = append(out, e)
	}
	return out
}

func TestReservePreservesExistingEntries(t *testing.T) {
	st := store.NewMemoryStore()
	l := newLedger(t, st)

	if _, err := l.Reserve("DSH-001", t0, t0.Add(time.Hour)); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if _, err := l.Reserve("DSH-002", t0.Add(time.Hour), t0.Add(time.Hour+70*time.Minute)); err != nil {
		t.Fatalf("second reserve: %v", err)
	}

	entries := listEntries(t, st)
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}
	for _, e := range entries[:2] {
		if e.DishID != "DSH-001" {
			t.Fatalf("first submission clobbered: %+v", e)
		}
	}
	for _, e := range entries[2:] {
		if e.DishID != "DSH-002" {
			t.Fatalf("second submission misplaced: %+v", e)
		}
	}
}

func TestReserveRejectsBadSpan(t *testing.T) {
	st := store.NewMemoryStore()
	l := newLedger(t, st)
	if _, err := l.Reserve("DSH-001", t0, t0); err == nil {
		t.Fatalf("expected validation error")
	}
	if entries := listEntries(t, st); len(entries) != 0 {
		t.Fatalf("failed reserve wrote %d entries", len(entries))
	}
}

func TestExpireCompact(t *testing.T) {
	st := store.NewMemoryStore()
	l := newLedger(t, st)

	old := t0.Add(-6 * 24 * time.Hour)
	if _, err := l.Reserve("DSH-001", old, old.Add(time.Hour)); err != nil {
		t.Fatalf("old reserve: %v", err)
	}
	if _, err := l.Reserve("DSH-002", t0, t0.Add(time.Hour)); err != nil {
		t.Fatalf("fresh reserve: %v", err)
	}

	expired, remaining, err := l.ExpireCompact(t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if expired != 2 || remaining != 2 {
		t.Fatalf("expired %d remaining %d", expired, remaining)
	}

	entries := listEntries(t, st)
	if len(entries) != 2 {
		t.Fatalf("got %d entries after compaction", len(entries))
	}
	for i, e := range entries {
		if e.DishID != "DSH-002" {
			t.Fatalf("entry %d: %+v", i, e)
		}
	}

	// Gap-free: the raw rows contain no cleared slots after compaction.
	rows, _ := st.ListAll(store.CollectionBlocks)
	for i, r := range rows {
		if r.Empty() {
			t.Fatalf("row %d still empty after compaction", i)
		}
	}
}

func TestExpireCompactIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	l := newLedger(t, st)

	old := t0.Add(-10 * 24 * time.Hour)
	_, _ = l.Reserve("DSH-001", old, old.Add(2*time.Hour))
	_, _ = l.Reserve("DSH-002", t0, t0.Add(30*time.Minute))

	now := t0.Add(time.Minute)
	if _, _, err := l.ExpireCompact(now); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	first := listEntries(t, st)

	expired, _, err := l.ExpireCompact(now)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if expired != 0 {
		t.Fatalf("second pass expired %d", expired)
	}
	second := listEntries(t, st)
	if len(first) != len(second) {
		t.Fatalf("ledger changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("entry %d changed: %+v vs %+v", i, first[i], second[i])
		}
	}
}
