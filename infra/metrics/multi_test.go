package metrics

import (
	"testing"

	coremetrics "github.com/rbrederode/odt/core/metrics"
)

type recordSink struct {
	count int
}

func (r *recordSink) RecordSubmission(coremetrics.SubmissionRecord) error {
	r.count++
	return nil
}

func (r *recordSink) RecordExpiry(coremetrics.ExpiryRecord) error {
	r.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordSubmission(coremetrics.SubmissionRecord{}); err != nil {
		t.Fatalf("record submission: %v", err)
	}
	if err := m.RecordExpiry(coremetrics.ExpiryRecord{}); err != nil {
		t.Fatalf("record expiry: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("records not forwarded")
	}
}

func TestMultiSinkSkipsUnsupportedStaging(t *testing.T) {
	s := &recordSink{}
	m := NewMultiSink(s)
	// recordSink does not implement StagingRecorder; the record is skipped.
	if err := m.RecordStaging(coremetrics.StagingRecord{Action: "staged"}); err != nil {
		t.Fatalf("record staging: %v", err)
	}
	if s.count != 0 {
		t.Fatalf("unexpected forward: %d", s.count)
	}
}
