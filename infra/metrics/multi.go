package metrics

import coremetrics "github.com/rbrederode/odt/core/metrics"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSubmission forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordSubmission(rec coremetrics.SubmissionRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordSubmission(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordStaging forwards staging records to sinks that support them.
func (m *MultiSink) RecordStaging(rec coremetrics.StagingRecord) error {
	for _, s := range m.Sinks {
		if sr, ok := s.(coremetrics.StagingRecorder); ok {
			if err := sr.RecordStaging(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordExpiry forwards retention records to all sinks.
func (m *MultiSink) RecordExpiry(rec coremetrics.ExpiryRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordExpiry(rec); err != nil {
			return err
		}
	}
	return nil
}
