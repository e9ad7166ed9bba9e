package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/rbrederode/odt/core/metrics"
	"github.com/rbrederode/odt/infra/logger"
)

// InfluxSink writes engine activity to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails, so a dead metrics backend never blocks
// observation assembly.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSubmission writes an assembled observation as a point.
func (s *InfluxSink) RecordSubmission(rec coremetrics.SubmissionRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("observation_submitted").
		AddTag("obs_id", rec.ObsID).
		AddTag("dish_id", rec.DishID).
		AddTag("state", rec.State).
		AddField("targets", rec.Targets).
		AddField("skipped", rec.Skipped).
		AddField("blocks", rec.Blocks).
		AddField("duration_s", rec.Duration.Seconds()).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordStaging writes a staging row operation.
func (s *InfluxSink) RecordStaging(rec coremetrics.StagingRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("staging_row").
		AddTag("action", rec.Action).
		AddField("ref", rec.Ref).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordExpiry writes the outcome of a retention pass.
func (s *InfluxSink) RecordExpiry(rec coremetrics.ExpiryRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("blocks_expired").
		AddField("expired", rec.Expired).
		AddField("cutoff", rec.Cutoff.Format(time.RFC3339)).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
