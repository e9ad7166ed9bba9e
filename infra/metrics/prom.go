package metrics

import (
	coremetrics "github.com/rbrederode/odt/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records engine activity in Prometheus metrics.
type PromSink struct {
	submissions *prometheus.CounterVec
	targets     *prometheus.CounterVec
	skipped     prometheus.Counter
	blocks      *prometheus.CounterVec
	staging     *prometheus.CounterVec
	expired     prometheus.Counter
}

// NewPromSink registers engine metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartServer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "odt_observations_submitted_total",
		Help: "Total number of observation documents assembled",
	}, []string{"dish_id", "state"})
	targets := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "odt_observation_targets_total",
		Help: "Total number of targets bound into observations",
	}, []string{"dish_id"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "odt_staged_rows_skipped_total",
		Help: "Total number of malformed staged rows skipped during assembly",
	})
	blocks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "odt_scheduling_blocks_reserved_total",
		Help: "Total number of scheduling blocks written to the ledger",
	}, []string{"dish_id"})
	staging := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "odt_staging_rows_total",
		Help: "Total number of staging row operations",
	}, []string{"action"})
	expired := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "odt_scheduling_blocks_expired_total",
		Help: "Total number of scheduling blocks cleared by retention",
	})

	collectors := []prometheus.Collector{submissions, targets, skipped, blocks, staging, expired}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			collectors[i] = are.ExistingCollector
		}
	}
	return &PromSink{
		submissions: collectors[0].(*prometheus.CounterVec),
		targets:     collectors[1].(*prometheus.CounterVec),
		skipped:     collectors[2].(prometheus.Counter),
		blocks:      collectors[3].(*prometheus.CounterVec),
		staging:     collectors[4].(*prometheus.CounterVec),
		expired:     collectors[5].(prometheus.Counter),
	}, nil
}

// RecordSubmission increments the submission counters.
func (s *PromSink) RecordSubmission(rec coremetrics.SubmissionRecord) error {
	s.submissions.WithLabelValues(rec.DishID, rec.State).Inc()
	s.targets.WithLabelValues(rec.DishID).Add(float64(rec.Targets))
	s.skipped.Add(float64(rec.Skipped))
	s.blocks.WithLabelValues(rec.DishID).Add(float64(rec.Blocks))
	return nil
}

// RecordStaging counts staging row operations by action.
func (s *PromSink) RecordStaging(rec coremetrics.StagingRecord) error {
	s.staging.WithLabelValues(rec.Action).Inc()
	return nil
}

// RecordExpiry adds cleared blocks to the expiry counter.
func (s *PromSink) RecordExpiry(rec coremetrics.ExpiryRecord) error {
	s.expired.Add(float64(rec.Expired))
	return nil
}
