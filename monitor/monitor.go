// Package monitor watches the backend's health endpoint and publishes
// reachability transitions so the UI can show whether the backend is up
// without ever blocking on it.
package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"clinassist/client"
	"clinassist/pubsub"
)

// DefaultInterval is the poll period when none is configured.
const DefaultInterval = 15 * time.Second

// Notice is one reachability observation.
type Notice struct {
	Reachable bool
	Detail    string
}

// Monitor polls the backend and publishes a Notice on every state
// transition, plus one for the first observation.
type Monitor struct {
	client   *client.Client
	broker   *pubsub.Broker[Notice]
	interval time.Duration
	log      *zap.Logger
}

// New creates a Monitor. A non-positive interval falls back to
// DefaultInterval; a nil logger disables diagnostics.
func New(c *client.Client, interval time.Duration, log *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Monitor{
		client:   c,
		broker:   pubsub.NewBroker[Notice](),
		interval: interval,
		log:      log,
	}
}

// Broker exposes the notice stream for subscription.
func (m *Monitor) Broker() *pubsub.Broker[Notice] {
	return m.broker
}

// Run polls until ctx is done, then closes the broker. Call it in its own
// goroutine.
func (m *Monitor) Run(ctx context.Context) {
	defer m.broker.Close()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	var seen, last bool
	for {
		reachable, detail := m.probe(ctx)
		if !seen || reachable != last {
			seen, last = true, reachable
			t := pubsub.RecoveredEvent
			if !reachable {
				t = pubsub.DegradedEvent
			}
			m.broker.Publish(t, Notice{Reachable: reachable, Detail: detail})
			m.log.Info("backend reachability changed",
				zap.Bool("reachable", reachable),
				zap.String("detail", detail))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitor) probe(ctx context.Context) (bool, string) {
	probeCtx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	report, err := m.client.Health(probeCtx)
	if err != nil {
		return false, "backend unreachable"
	}

	loaded := 0
	for _, idx := range report.Indexes {
		if idx.Loaded {
			loaded++
		}
	}
	return true, fmt.Sprintf("%s, %d/%d indexes loaded", report.Status, loaded, report.TotalDomains)
}
