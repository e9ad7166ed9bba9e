// Package app wires the engine together from configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rbrederode/odt/config"
	"github.com/rbrederode/odt/core/assemble"
	"github.com/rbrederode/odt/core/dispatch"
	"github.com/rbrederode/odt/core/ledger"
	coremetrics "github.com/rbrederode/odt/core/metrics"
	"github.com/rbrederode/odt/core/store"
	"github.com/rbrederode/odt/infra/logger"
	"github.com/rbrederode/odt/infra/metrics"
	"github.com/rbrederode/odt/infra/mqtt"
	"github.com/rbrederode/odt/infra/webhook"
	"github.com/rbrederode/odt/internal/eventbus"
)

// Service orchestrates the dispatch manager and its notifiers.
type Service struct {
	Manager *dispatch.Manager
	Store   store.RecordStore

	cfg       *config.Config
	bus       *eventbus.Bus
	notifier  *mqtt.Notifier
	publisher mqtt.Publisher
	log       logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	logg := logger.New("service")

	st := store.NewMemoryStore()
	asm, err := assemble.New(st, logger.New("assemble"), cfg.Observation.State(), nil)
	if err != nil {
		return nil, fmt.Errorf("assembler: %w", err)
	}
	led, err := ledger.New(st, logger.New("ledger"), cfg.Scheduling.BlockMinutes, cfg.Scheduling.Retention())
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.Sink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	var notifier dispatch.Notifier
	if cfg.Webhook.Enabled {
		notifier = webhook.New(cfg.Webhook)
	}

	mgr, err := dispatch.NewManager(asm, led, st, sink, bus, notifier, logg)
	if err != nil {
		return nil, fmt.Errorf("manager: %w", err)
	}

	svc := &Service{Manager: mgr, Store: st, cfg: cfg, bus: bus, log: logg}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		mn, err := mqtt.NewNotifier(bus, pub, cfg.MQTT.TopicPrefix)
		if err != nil {
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		svc.publisher = pub
		svc.notifier = mn
	}
	return svc, nil
}

// Run starts the service and blocks until the context is cancelled. It owns
// the retention ticker, the Prometheus endpoint and the MQTT notifier loop.
func (s *Service) Run(ctx context.Context) error {
	cmds := make(chan dispatch.Command, 16)
	go s.Manager.Run(ctx, cmds)
	if s.notifier != nil {
		go s.notifier.Run(ctx)
	}
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	go s.expiryLoop(ctx, cmds)
	<-ctx.Done()
	return nil
}

func (s *Service) expiryLoop(ctx context.Context, cmds chan<- dispatch.Command) {
	ticker := time.NewTicker(s.cfg.Scheduling.ExpiryInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case cmds <- dispatch.ExpireBlocks{}:
			default:
				s.log.Warnf("command queue full, skipping retention pass")
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Disconnect()
	}
	s.bus.Close()
	return nil
}
