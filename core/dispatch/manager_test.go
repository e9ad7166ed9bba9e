package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rbrederode/odt/core/assemble"
	"github.com/rbrederode/odt/core/events"
	"github.com/rbrederode/odt/core/ledger"
	"github.com/rbrederode/odt/core/metrics"
	"github.com/rbrederode/odt/core/model"
	"github.com/rbrederode/odt/core/store"
	"github.com/rbrederode/odt/infra/logger"
	"github.com/rbrederode/odt/internal/eventbus"
)

var (
	blockStart = time.Date(2026, 2, 2, 18, 30, 0, 0, time.UTC)
	blockEnd   = blockStart.Add(70 * time.Minute)
)

type captureSink struct {
	submissions []metrics.SubmissionRecord
	expiries    []metrics.ExpiryRecord
	staging     []metrics.StagingRecord
}

func (c *captureSink) RecordSubmission(r metrics.SubmissionRecord) error {
	c.submissions = append(c.submissions, r)
	return nil
}

func (c *captureSink) RecordExpiry(r metrics.ExpiryRecord) error {
	c.expiries = append(c.expiries, r)
	return nil
}

func (c *captureSink) RecordStaging(r metrics.StagingRecord) error {
	c.staging = append(c.staging, r)
	return nil
}

type captureNotifier struct {
	events []string
}

func (c *captureNotifier) Notify(_ context.Context, event, _ string) {
	c.events = append(c.events, event)
}

func newManager(t *testing.T) (*Manager, store.RecordStore, *captureSink, *captureNotifier, *eventbus.Bus) {
	t.Helper()
	st := store.NewMemoryStore()
	log := logger.NopLogger{}
	a, err := assemble.New(st, log, model.ObsEmpty, nil)
	if err != nil {
		t.Fatalf("assembler: %v", err)
	}
	l, err := ledger.New(st, log, 30, 5*24*time.Hour)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	sink := &captureSink{}
	notifier := &captureNotifier{}
	bus := eventbus.New()
	m, err := NewManager(a, l, st, sink, bus, notifier, log)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m, st, sink, notifier, bus
}

func stage(t *testing.T, m *Manager, skycoord string) store.RowRef {
	t.Helper()
	_, ref, err := m.AddTarget(context.Background(), AddTarget{
		TargetFields: []assemble.Field{{Label: "SkyCoord", Value: skycoord}},
		ConfigFields: []assemble.Field{{Label: "Center Freq", Value: 1420.4}},
	})
	if err != nil {
		t.Fatalf("add target: %v", err)
	}
	return ref
}

func TestSubmitEndToEnd(t *testing.T) {
	m, st, sink, notifier, bus := newManager(t)
	sub := bus.Subscribe(8)

	stage(t, m, "ra: 10.684, dec: 41.269")
	stage(t, m, "ra: 187.7, dec: -12.39")

	res, err := m.Submit(context.Background(), SubmitObservation{
		DishID: "DSH-001 Alston", User: "ops", Start: blockStart, End: blockEnd,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	// 70 minutes over 30-minute blocks consumes 3.
	if res.Blocks != 3 {
		t.Fatalf("blocks %d", res.Blocks)
	}
	if len(res.Observation.Targets) != 2 || res.Skipped != 0 {
		t.Fatalf("result %+v", res)
	}

	blocks, _ := st.ListAll(store.CollectionBlocks)
	if len(blocks) != 3 {
		t.Fatalf("ledger rows %d", len(blocks))
	}
	if len(sink.submissions) != 1 || sink.submissions[0].Blocks != 3 {
		t.Fatalf("sink %+v", sink.submissions)
	}
	if len(notifier.events) != 1 || notifier.events[0] != "observation_submitted" {
		t.Fatalf("notifier %v", notifier.events)
	}

	// Two staging events plus the submission on the bus.
	var kinds []string
	for i := 0; i < 3; i++ {
		select {
		case ev := <-sub:
			kinds = append(kinds, ev.(eventbus.Keyed).Kind())
		case <-time.After(time.Second):
			t.Fatalf("bus events %v", kinds)
		}
	}
	if kinds[2] != "observation_submitted" {
		t.Fatalf("kinds %v", kinds)
	}
}

func TestSubmitInvalidWindowWritesNothing(t *testing.T) {
	m, st, sink, _, _ := newManager(t)
	stage(t, m, "ra: 10.684, dec: 41.269")

	_, err := m.Submit(context.Background(), SubmitObservation{
		DishID: "DSH-001", User: "ops", Start: blockEnd, End: blockStart,
	})
	var verr *ledger.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v", err)
	}

	staged, _ := st.ListAll(store.CollectionStaged)
	if len(staged) != 1 {
		t.Fatalf("staged rows %d", len(staged))
	}
	obsRows, _ := st.ListAll(store.CollectionObservations)
	if len(obsRows) != 0 {
		t.Fatalf("observations %d", len(obsRows))
	}
	if len(sink.submissions) != 0 {
		t.Fatalf("sink %+v", sink.submissions)
	}
}

func TestSubmitRequiresDishID(t *testing.T) {
	m, _, _, _, _ := newManager(t)
	if _, err := m.Submit(context.Background(), SubmitObservation{Start: blockStart, End: blockEnd}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDeleteTarget(t *testing.T) {
	m, st, sink, _, bus := newManager(t)
	sub := bus.Subscribe(8)
	ref := stage(t, m, "ra: 10.684, dec: 41.269")

	if err := m.DeleteTarget(context.Background(), DeleteTarget{Ref: ref}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, _ := st.ListAll(store.CollectionStaged)
	if len(rows) != 1 || !rows[0].Empty() {
		t.Fatalf("rows %+v", rows)
	}
	if len(sink.staging) != 2 || sink.staging[1].Action != "deleted" {
		t.Fatalf("staging records %+v", sink.staging)
	}
	<-sub
	ev := <-sub
	if _, ok := ev.(events.TargetDeleted); !ok {
		t.Fatalf("event %T", ev)
	}

	// Deleting the same row again fails.
	if err := m.DeleteTarget(context.Background(), DeleteTarget{Ref: ref}); err == nil {
		t.Fatalf("expected error on double delete")
	}
}

func TestExpireIdempotent(t *testing.T) {
	m, _, sink, notifier, _ := newManager(t)
	stage(t, m, "ra: 10.684, dec: 41.269")
	if _, err := m.Submit(context.Background(), SubmitObservation{
		DishID: "DSH-001", User: "ops", Start: blockStart, End: blockEnd,
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	now := blockStart.Add(6 * 24 * time.Hour)
	expired, remaining, err := m.Expire(context.Background(), ExpireBlocks{Now: now})
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if expired != 3 || remaining != 0 {
		t.Fatalf("expired %d remaining %d", expired, remaining)
	}
	if len(sink.expiries) != 1 || notifier.events[len(notifier.events)-1] != "blocks_expired" {
		t.Fatalf("observability %+v %v", sink.expiries, notifier.events)
	}

	expired, _, err = m.Expire(context.Background(), ExpireBlocks{Now: now})
	if err != nil || expired != 0 {
		t.Fatalf("second pass expired %d err %v", expired, err)
	}
	// No new records for a pass that cleared nothing.
	if len(sink.expiries) != 1 {
		t.Fatalf("expiries %+v", sink.expiries)
	}
}

func TestRunExecutesCommands(t *testing.T) {
	m, st, _, _, _ := newManager(t)
	cmds := make(chan Command, 3)
	cmds <- AddTarget{
		TargetFields: []assemble.Field{{Label: "Solar System", Value: "sun"}},
		ConfigFields: []assemble.Field{{Label: "Center Freq", Value: 1420.4}},
	}
	cmds <- SubmitObservation{DishID: "DSH-001", User: "ops", Start: blockStart, End: blockEnd}
	close(cmds)

	done := make(chan struct{})
	go func() {
		m.Run(context.Background(), cmds)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("run did not drain")
	}

	obsRows, _ := st.ListAll(store.CollectionObservations)
	if len(obsRows) != 1 {
		t.Fatalf("observations %d", len(obsRows))
	}
}
