package assemble

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rbrederode/odt/core/logger"
	"github.com/rbrederode/odt/core/model"
	"github.com/rbrederode/odt/core/store"
)

// mhzToHz scales operator-entered frequency and rate fields to Hz.
const mhzToHz = 1e6

// Assembler builds Target and Observation documents and stages them in the
// record store. All methods are synchronous; callers serialize access.
type Assembler struct {
	store        store.RecordStore
	log          logger.Logger
	initialState model.ObsState
	clock        func() time.Time
}

// New creates an Assembler. initialState is the configured lifecycle value
// stamped on every submitted observation; the external executor owns all
// later transitions.
func New(st store.RecordStore, log logger.Logger, initialState model.ObsState, clock func() time.Time) (*Assembler, error) {
	if st == nil || log == nil {
		return nil, fmt.Errorf("assemble: nil store or logger")
	}
	if clock == nil {
		clock = time.Now
	}
	return &Assembler{store: st, log: log, initialState: initialState, clock: clock}, nil
}

// AddTarget builds a Target from the target field set and a TargetConfig from
// the independently-scoped config field set, nests the config under the
// target, and appends the pair as one staged row. It returns the staged
// target and its row reference so the caller can clear the input fields that
// produced it.
func (a *Assembler) AddTarget(targetFields, configFields []Field) (model.Target, store.RowRef, error) {
	tgt := ClassifyTarget(Normalize(targetFields))
	cfg := BuildTargetConfig(Normalize(configFields))
	tgt.Config = &cfg

	doc, err := json.Marshal(tgt)
	if err != nil {
		return model.Target{}, "", fmt.Errorf("assemble: marshal target: %w", err)
	}
	ref, err := a.store.Append(store.CollectionStaged, doc)
	if err != nil {
		return model.Target{}, "", fmt.Errorf("assemble: stage target: %w", err)
	}
	a.log.Debugw("staged target", map[string]any{"row": string(ref), "pointing": tgt.Pointing.String()})
	return tgt, ref, nil
}

// Submit reads all staged rows in row order, assigns tgt_idx in that order,
// stamps targets and configs with the derived observation id, scales the
// frequency fields from MHz to Hz, and appends the assembled Observation.
// Rows that fail to parse are skipped with a warning; one bad row never
// aborts the submission. Staged rows are cleared only after the observation
// has been appended, so a failed submission leaves no partial writes.
// It returns the observation and the number of skipped rows.
func (a *Assembler) Submit(dishID, user string, blockStart, blockEnd time.Time) (model.Observation, int, error) {
	rows, err := a.store.ListAll(store.CollectionStaged)
	if err != nil {
		return model.Observation{}, 0, fmt.Errorf("assemble: read staged rows: %w", err)
	}

	obs := model.Observation{
		ObsID:      model.ODTID(blockStart, dishID),
		DishID:     dishID,
		BlockStart: blockStart,
		BlockEnd:   blockEnd,
		ObsState:   a.initialState,
		Created:    a.clock(),
		User:       user,
	}

	skipped := 0
	idx := 0
	for _, r := range rows {
		if r.Empty() {
			continue
		}
		var tgt model.Target
		if err := json.Unmarshal(r.Doc, &tgt); err != nil {
			a.log.Warnf("assemble: skipping unreadable staged row %s: %v", r.Ref, err)
			skipped++
			continue
		}
		cfg := model.TargetConfig{TgtIdx: idx}
		if tgt.Config != nil {
			cfg = *tgt.Config
		}
		tgt.Config = nil
		tgt.TgtIdx = idx
		tgt.ObsID = obs.ObsID
		cfg.TgtIdx = idx
		cfg.ObsID = obs.ObsID
		cfg.CenterFreq *= mhzToHz
		cfg.Bandwidth *= mhzToHz
		cfg.SampleRate *= mhzToHz

		obs.Targets = append(obs.Targets, tgt)
		obs.TargetConfigs = append(obs.TargetConfigs, cfg)
		idx++
	}

	doc, err := json.Marshal(obs)
	if err != nil {
		return model.Observation{}, skipped, fmt.Errorf("assemble: marshal observation: %w", err)
	}
	if _, err := a.store.Append(store.CollectionObservations, doc); err != nil {
		return model.Observation{}, skipped, fmt.Errorf("assemble: append observation: %w", err)
	}

	for _, r := range rows {
		if r.Empty() {
			continue
		}
		if err := a.store.Clear(store.CollectionStaged, r.Ref); err != nil {
			a.log.Warnf("assemble: clear staged row %s: %v", r.Ref, err)
		}
	}
	if err := a.store.Compact(store.CollectionStaged); err != nil {
		a.log.Warnf("assemble: compact staged rows: %v", err)
	}

	a.log.Infof("assembled observation %s with %d targets (%d rows skipped)", obs.ObsID, len(obs.Targets), skipped)
	return obs, skipped, nil
}
