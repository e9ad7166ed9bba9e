package mqtt

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rbrederode/odt/core/events"
	"github.com/rbrederode/odt/core/model"
	"github.com/rbrederode/odt/internal/eventbus"
)

func TestNotifierPublishesKeyedEvents(t *testing.T) {
	bus := eventbus.New()
	pub := NewMockPublisher()
	n, err := NewNotifier(bus, pub, "odt")
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.Run(ctx)
		close(done)
	}()

	// Give the notifier a beat to subscribe before publishing.
	time.Sleep(10 * time.Millisecond)
	bus.Publish(events.ObservationSubmitted{
		Observation: model.Observation{ObsID: "ODT-2026-02-02T18:30Z-DSH-001"},
		Blocks:      3,
	})
	bus.Publish("not keyed, dropped silently")

	deadline := time.After(time.Second)
	for len(pub.Messages("odt/events/observation_submitted")) == 0 {
		select {
		case <-deadline:
			t.Fatalf("no message published")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	msgs := pub.Messages("odt/events/observation_submitted")
	if len(msgs) != 1 {
		t.Fatalf("messages %d", len(msgs))
	}
	var got events.ObservationSubmitted
	if err := json.Unmarshal(msgs[0], &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Observation.ObsID != "ODT-2026-02-02T18:30Z-DSH-001" || got.Blocks != 3 {
		t.Fatalf("payload %+v", got)
	}
	if len(pub.Topics()) != 1 {
		t.Fatalf("topics %v", pub.Topics())
	}
}

func TestNotifierStopsOnBusClose(t *testing.T) {
	bus := eventbus.New()
	n, err := NewNotifier(bus, NewMockPublisher(), "")
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	done := make(chan struct{})
	go func() {
		n.Run(context.Background())
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	bus.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("notifier did not stop")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Enabled: true}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing broker")
	}
	cfg.Broker = "tcp://localhost:1883"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
