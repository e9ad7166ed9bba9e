package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rbrederode/odt/infra/logger"
	"github.com/rbrederode/odt/internal/eventbus"
)

// Notifier forwards bus events to the MQTT broker. Each event lands on
// <prefix>/events/<kind> as a JSON document.
type Notifier struct {
	bus    *eventbus.Bus
	pub    Publisher
	log    logger.Logger
	prefix string
}

// NewNotifier creates a notifier publishing through pub.
func NewNotifier(bus *eventbus.Bus, pub Publisher, prefix string) (*Notifier, error) {
	if bus == nil || pub == nil {
		return nil, fmt.Errorf("mqtt: notifier requires a bus and a publisher")
	}
	if prefix == "" {
		prefix = "odt"
	}
	return &Notifier{
		bus:    bus,
		pub:    pub,
		log:    logger.New("mqtt-notifier"),
		prefix: prefix,
	}, nil
}

// Run consumes bus events until the context is canceled or the bus closes.
// Publish failures are logged; the loop keeps going.
func (n *Notifier) Run(ctx context.Context) {
	ch := n.bus.Subscribe(32)
	defer n.bus.Unsubscribe(ch)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			keyed, ok := ev.(eventbus.Keyed)
			if !ok {
				continue
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				n.log.Errorf("marshal %s event: %v", keyed.Kind(), err)
				continue
			}
			topic := fmt.Sprintf("%s/events/%s", n.prefix, keyed.Kind())
			if err := n.pub.Publish(topic, payload); err != nil {
				n.log.Warnf("publish to %s failed: %v", topic, err)
			}
		}
	}
}
