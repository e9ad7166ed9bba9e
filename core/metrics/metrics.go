package metrics

import "time"

// SubmissionRecord captures an assembled observation for observability.
type SubmissionRecord struct {
	ObsID    string
	DishID   string
	State    string
	Targets  int
	Skipped  int
	Blocks   int
	Duration time.Duration
	Time     time.Time
}

// Sink records engine activity for observability purposes.
type Sink interface {
	RecordSubmission(rec SubmissionRecord) error
	RecordExpiry(rec ExpiryRecord) error
}

// StagingRecord captures a target row entering or leaving the staging area.
type StagingRecord struct {
	Action string
	Ref    string
	Time   time.Time
}

// StagingRecorder is implemented by sinks able to record staging activity.
type StagingRecorder interface {
	RecordStaging(rec StagingRecord) error
}

// ExpiryRecord captures a ledger retention pass.
type ExpiryRecord struct {
	Expired int
	Cutoff  time.Time
	Time    time.Time
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSubmission(SubmissionRecord) error { return nil }
func (NopSink) RecordExpiry(ExpiryRecord) error         { return nil }
func (NopSink) RecordStaging(StagingRecord) error       { return nil }
