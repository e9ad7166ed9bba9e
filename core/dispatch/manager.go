// Package dispatch serializes all mutating engine operations. The record
// store has no locking of its own, so the Manager is the single writer:
// every submit, staging change and retention pass runs under its mutex.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rbrederode/odt/core/assemble"
	"github.com/rbrederode/odt/core/events"
	"github.com/rbrederode/odt/core/ledger"
	"github.com/rbrederode/odt/core/logger"
	"github.com/rbrederode/odt/core/metrics"
	"github.com/rbrederode/odt/core/model"
	"github.com/rbrederode/odt/core/store"
	"github.com/rbrederode/odt/internal/eventbus"
)

// Notifier pushes a human-readable notification about an engine event.
// Implementations must not block the caller on delivery.
type Notifier interface {
	Notify(ctx context.Context, event, message string)
}

// SubmitResult is the outcome of a successful submission.
type SubmitResult struct {
	Observation model.Observation
	Blocks      int
	Skipped     int
}

// Manager executes commands against the engine core. The zero value is not
// usable; construct with NewManager.
type Manager struct {
	mu        sync.Mutex
	assembler *assemble.Assembler
	ledger    *ledger.Ledger
	store     store.RecordStore
	sink      metrics.Sink
	bus       *eventbus.Bus
	notifier  Notifier
	log       logger.Logger
	clock     func() time.Time
}

// NewManager wires the engine core together. sink, bus and notifier may be
// nil; absent observability never blocks assembly.
func NewManager(a *assemble.Assembler, l *ledger.Ledger, st store.RecordStore,
	sink metrics.Sink, bus *eventbus.Bus, notifier Notifier, log logger.Logger) (*Manager, error) {
	if a == nil || l == nil || st == nil || log == nil {
		return nil, fmt.Errorf("dispatch: assembler, ledger, store and logger are required")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Manager{
		assembler: a,
		ledger:    l,
		store:     st,
		sink:      sink,
		bus:       bus,
		notifier:  notifier,
		log:       log,
		clock:     time.Now,
	}, nil
}

// Submit assembles the staged targets into an observation and reserves its
// scheduling blocks. The window is validated before anything is written, so
// an invalid span leaves both the staging area and the ledger untouched.
func (m *Manager) Submit(ctx context.Context, cmd SubmitObservation) (SubmitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cmd.DishID == "" {
		return SubmitResult{}, fmt.Errorf("dispatch: submit requires a dish id")
	}
	if _, err := ledger.BlocksConsumed(cmd.Start, cmd.End, m.ledger.BlockMinutes()); err != nil {
		return SubmitResult{}, err
	}

	obs, skipped, err := m.assembler.Submit(cmd.DishID, cmd.User, cmd.Start, cmd.End)
	if err != nil {
		return SubmitResult{}, err
	}
	blocks, err := m.ledger.Reserve(cmd.DishID, cmd.Start, cmd.End)
	if err != nil {
		return SubmitResult{}, err
	}

	res := SubmitResult{Observation: obs, Blocks: blocks, Skipped: skipped}
	if err := m.sink.RecordSubmission(metrics.SubmissionRecord{
		ObsID:    obs.ObsID,
		DishID:   obs.DishID,
		State:    obs.ObsState.String(),
		Targets:  len(obs.Targets),
		Skipped:  skipped,
		Blocks:   blocks,
		Duration: cmd.End.Sub(cmd.Start),
		Time:     m.clock(),
	}); err != nil {
		m.log.Warnf("dispatch: record submission: %v", err)
	}
	if m.bus != nil {
		m.bus.Publish(events.ObservationSubmitted{Observation: obs, Blocks: blocks, Skipped: skipped})
	}
	if m.notifier != nil {
		m.notifier.Notify(ctx, "observation_submitted",
			fmt.Sprintf("%s assembled with %d targets over %d blocks", obs.ObsID, len(obs.Targets), blocks))
	}
	m.log.Infof("submitted %s: %d targets, %d blocks, %d rows skipped",
		obs.ObsID, len(obs.Targets), blocks, skipped)
	return res, nil
}

// AddTarget stages one target row.
func (m *Manager) AddTarget(ctx context.Context, cmd AddTarget) (model.Target, store.RowRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tgt, ref, err := m.assembler.AddTarget(cmd.TargetFields, cmd.ConfigFields)
	if err != nil {
		return model.Target{}, "", err
	}
	if sr, ok := m.sink.(metrics.StagingRecorder); ok {
		if err := sr.RecordStaging(metrics.StagingRecord{Action: "staged", Ref: string(ref), Time: m.clock()}); err != nil {
			m.log.Warnf("dispatch: record staging: %v", err)
		}
	}
	if m.bus != nil {
		m.bus.Publish(events.TargetStaged{Target: tgt, Ref: ref})
	}
	return tgt, ref, nil
}

// DeleteTarget clears one staged row. Clearing an already-cleared or unknown
// row is an error surfaced to the caller.
func (m *Manager) DeleteTarget(ctx context.Context, cmd DeleteTarget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(store.CollectionStaged, cmd.Ref); err != nil {
		return fmt.Errorf("dispatch: delete staged row %s: %w", cmd.Ref, err)
	}
	if sr, ok := m.sink.(metrics.StagingRecorder); ok {
		if err := sr.RecordStaging(metrics.StagingRecord{Action: "deleted", Ref: string(cmd.Ref), Time: m.clock()}); err != nil {
			m.log.Warnf("dispatch: record staging: %v", err)
		}
	}
	if m.bus != nil {
		m.bus.Publish(events.TargetDeleted{Ref: cmd.Ref})
	}
	return nil
}

// Expire runs a retention pass over the ledger. A zero Now uses the wall
// clock.
func (m *Manager) Expire(ctx context.Context, cmd ExpireBlocks) (expired, remaining int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := cmd.Now
	if now.IsZero() {
		now = m.clock()
	}
	expired, remaining, err = m.ledger.ExpireCompact(now)
	if err != nil {
		return expired, remaining, err
	}
	if expired > 0 {
		if err := m.sink.RecordExpiry(metrics.ExpiryRecord{Expired: expired, Cutoff: now, Time: m.clock()}); err != nil {
			m.log.Warnf("dispatch: record expiry: %v", err)
		}
		if m.bus != nil {
			m.bus.Publish(events.BlocksExpired{Expired: expired, Cutoff: now})
		}
		if m.notifier != nil {
			m.notifier.Notify(ctx, "blocks_expired",
				fmt.Sprintf("%d scheduling blocks cleared, %d remain", expired, remaining))
		}
	}
	return expired, remaining, nil
}

// Run consumes commands from the channel until it closes or the context is
// canceled. Command failures are logged, never fatal to the loop.
func (m *Manager) Run(ctx context.Context, cmds <-chan Command) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-cmds:
			if !ok {
				return
			}
			m.execute(ctx, cmd)
		}
	}
}

func (m *Manager) execute(ctx context.Context, cmd Command) {
	var err error
	switch c := cmd.(type) {
	case SubmitObservation:
		_, err = m.Submit(ctx, c)
	case AddTarget:
		_, _, err = m.AddTarget(ctx, c)
	case DeleteTarget:
		err = m.DeleteTarget(ctx, c)
	case ExpireBlocks:
		_, _, err = m.Expire(ctx, c)
	default:
		err = fmt.Errorf("dispatch: unknown command %T", cmd)
	}
	if err != nil {
		m.log.Errorf("dispatch: %T failed: %v", cmd, err)
	}
}
